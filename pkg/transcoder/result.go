package transcoder

import (
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
)

// Result is the outcome of the forward pipeline.
type Result struct {
	OriginalSize     int
	CompressedSize   int
	EncodedSize      int
	CompressionRatio float64
	Compressed       []byte
	Encoded          string
	ProcessedAt      time.Time
}

// Timestamp renders ProcessedAt the way it is persisted.
func (r Result) Timestamp() string {
	return r.ProcessedAt.UTC().Format(TimestampLayout)
}

// Recovered is the outcome of the reverse pipeline.
type Recovered struct {
	DecodedSize int
	Text        string
}

// ResultMetadata is the metadata block of a persisted result.
type ResultMetadata struct {
	OriginalSize        int     `json:"original_size"`
	CompressedSize      int     `json:"compressed_size"`
	EncodedSize         int     `json:"encoded_size"`
	CompressionRatio    float64 `json:"compression_ratio"`
	ProcessingTimestamp string  `json:"processing_timestamp"`
}

// ResultDocument is the file layout written by WriteResult.
type ResultDocument struct {
	Metadata    ResultMetadata `json:"metadata"`
	EncodedData string         `json:"encoded_data"`
}

// Document converts r into its persisted form. The compressed bytes are not
// part of it.
func (r Result) Document() ResultDocument {
	return ResultDocument{
		Metadata: ResultMetadata{
			OriginalSize:        r.OriginalSize,
			CompressedSize:      r.CompressedSize,
			EncodedSize:         r.EncodedSize,
			CompressionRatio:    r.CompressionRatio,
			ProcessingTimestamp: r.Timestamp(),
		},
		EncodedData: r.Encoded,
	}
}

// WriteResult writes r's document to path, replacing any existing file.
func WriteResult(r Result, path string) error {
	return writeJSONFile(path, r.Document())
}

// WriteEnvelope writes env to path, replacing any existing file.
func WriteEnvelope(env Envelope, path string) error {
	return writeJSONFile(path, env)
}

// MarshalIndent renders v with two-space indentation.
func MarshalIndent(v any) ([]byte, error) {
	return jsonAPI.MarshalIndent(v, "", "  ")
}

func writeJSONFile(path string, v any) error {
	data, err := MarshalIndent(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	resolved, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("resolve path %s: %w", path, err)
	}

	f, err := os.Create(resolved)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}
