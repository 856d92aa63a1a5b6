package transcoder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		want       string
		structured bool
	}{
		{"key order kept", `{"b": 1, "a": 2}`, `{"b":1,"a":2}`, true},
		{"whitespace removed", "{\n  \"list\": [ 1, 2 ]\n}", `{"list":[1,2]}`, true},
		{"number text kept", `{"f":1.0,"e":1e3}`, `{"f":1.0,"e":1e3}`, true},
		{"string value is text", `"hello world"`, "hello world", false},
		{"escaped string decoded", `"a\"b"`, `a"b`, false},
		{"array", `[1, "x"]`, `[1,"x"]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMessage([]byte(tt.in))
			require.NoError(t, err)
			require.Equal(t, tt.structured, m.IsStructured())
			require.Equal(t, tt.want, Serialize(m))
		})
	}
}

func TestSerialize_TextIsNotValidated(t *testing.T) {
	require.Equal(t, "{not json", Serialize(TextMessage("{not json")))
}

func TestParseMessage_Invalid(t *testing.T) {
	for _, in := range []string{"", "{", `{"a":}`, `{"a":1} trailing`, "\xff"} {
		_, err := ParseMessage([]byte(in))
		require.ErrorIs(t, err, ErrJSONParse, "input %q", in)
	}
}

func TestLoadMessage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ssid":"test","rssi":-65}`), 0644))

	m, err := LoadMessage(path)
	require.NoError(t, err)
	require.Equal(t, `{"ssid":"test","rssi":-65}`, Serialize(m))
}

func TestLoadMessage_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := LoadMessage(path)
	require.ErrorIs(t, err, ErrFileNotFound)
	require.Contains(t, err.Error(), path)
}

func TestLoadMessage_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ssid":`), 0644))

	_, err := LoadMessage(path)
	require.ErrorIs(t, err, ErrJSONParse)
	require.Contains(t, err.Error(), path)
}
