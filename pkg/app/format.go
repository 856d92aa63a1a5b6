package app

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// IsJSON returns true if data is valid JSON.
func IsJSON(data []byte) bool {
	return json.Valid(data)
}

// FormatValue pretty-prints JSON data with two-space indentation. Key order
// is kept unless colors are enabled. Data that is not JSON is returned as is.
func (a *App) FormatValue(data []byte) []byte {
	if !IsJSON(data) {
		return data
	}
	if a.Color {
		if b, err := a.Formatter.Format(data); err == nil {
			return b
		}
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return data
	}
	return buf.Bytes()
}

// PrintValue writes data formatted by FormatValue, followed by a newline.
func (a *App) PrintValue(data []byte) {
	_, _ = a.ColorableOut.Write(a.FormatValue(data))
	fmt.Fprintln(a.ColorableOut)
}
