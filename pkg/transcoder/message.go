package transcoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	homedir "github.com/mitchellh/go-homedir"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Message is either structured JSON or plain text.
type Message struct {
	raw  json.RawMessage
	text string
}

// TextMessage wraps s as a text message. It is serialized unchanged.
func TextMessage(s string) Message {
	return Message{text: s}
}

// IsStructured reports whether m holds a JSON value rather than text.
func (m Message) IsStructured() bool {
	return m.raw != nil
}

// ParseMessage parses data as a JSON document. A top-level JSON string
// becomes a text message holding the decoded string; any other value is kept
// as structured JSON with its key order intact.
func ParseMessage(data []byte) (Message, error) {
	m, err := decodeMessage(data)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrJSONParse, err)
	}
	return m, nil
}

func decodeMessage(data []byte) (Message, error) {
	if !utf8.Valid(data) {
		return Message{}, errors.New("input is not valid UTF-8")
	}

	var v any
	if err := jsonAPI.Unmarshal(data, &v); err != nil {
		return Message{}, err
	}
	if s, ok := v.(string); ok {
		return TextMessage(s), nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return Message{}, err
	}
	return Message{raw: buf.Bytes()}, nil
}

// LoadMessage reads and parses the JSON document at path. A leading ~ is
// expanded to the home directory.
func LoadMessage(path string) (Message, error) {
	resolved, err := homedir.Expand(path)
	if err != nil {
		return Message{}, fmt.Errorf("resolve path %s: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Message{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Message{}, fmt.Errorf("read %s: %w", path, err)
	}

	m, err := decodeMessage(data)
	if err != nil {
		return Message{}, fmt.Errorf("%w in file %s: %v", ErrJSONParse, path, err)
	}
	return m, nil
}

// Serialize returns the canonical text of m: compact JSON for structured
// messages, the text itself otherwise.
func Serialize(m Message) string {
	if m.raw != nil {
		return string(m.raw)
	}
	return m.text
}
