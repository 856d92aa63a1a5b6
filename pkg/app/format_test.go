package app

import (
	"bytes"
	"testing"

	"github.com/hokaccha/go-prettyjson"
	"github.com/stretchr/testify/require"
)

func newTestApp(out *bytes.Buffer) *App {
	f := prettyjson.NewFormatter()
	f.Indent = 2
	f.DisabledColor = true
	return &App{
		OutWriter:    out,
		ErrWriter:    out,
		ColorableOut: out,
		Formatter:    f,
	}
}

func TestIsJSON(t *testing.T) {
	require.True(t, IsJSON([]byte(`{"a":1}`)))
	require.True(t, IsJSON([]byte(`"x"`)))
	require.False(t, IsJSON([]byte(`hello`)))
}

func TestFormatValue_KeepsKeyOrder(t *testing.T) {
	a := newTestApp(&bytes.Buffer{})

	got := a.FormatValue([]byte(`{"z":1,"a":[true,null]}`))
	require.Equal(t, "{\n  \"z\": 1,\n  \"a\": [\n    true,\n    null\n  ]\n}", string(got))
}

func TestFormatValue_NotJSON(t *testing.T) {
	a := newTestApp(&bytes.Buffer{})
	require.Equal(t, "plain text", string(a.FormatValue([]byte("plain text"))))
}

func TestFormatValue_Color(t *testing.T) {
	a := newTestApp(&bytes.Buffer{})
	a.Color = true

	got := a.FormatValue([]byte(`{"b":1,"a":2}`))
	require.Contains(t, string(got), `"a": 2`)
	require.Contains(t, string(got), `"b": 1`)
}

func TestPrintValue(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(&out)

	a.PrintValue([]byte(`{"a":1}`))
	require.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
}
