package transcoder

// StreamName is the delivery stream every envelope targets.
const StreamName = "MVS-stream"

// Record is the single record of a delivery envelope.
type Record struct {
	Data     string `json:"data"`
	RecordID string `json:"record_id,omitempty"`
}

// Envelope is the payload shape expected by the ingestion stream.
type Envelope struct {
	StreamName string `json:"stream_name"`
	Record     Record `json:"record"`
}

// Envelope processes m and wraps the encoded text for the delivery stream.
// recordID is attached to the record when non-empty.
func (t *Transcoder) Envelope(m Message, recordID string) (Envelope, error) {
	res, err := t.Process(m)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		StreamName: StreamName,
		Record: Record{
			Data:     res.Encoded,
			RecordID: recordID,
		},
	}, nil
}
