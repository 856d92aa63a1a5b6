package transcoder

import (
	"errors"
	"fmt"
)

// Error kinds returned by the transcoder. Callers match them with errors.Is.
var (
	ErrFileNotFound  = errors.New("file not found")
	ErrJSONParse     = errors.New("invalid JSON")
	ErrDecode        = errors.New("invalid base64")
	ErrDecompression = errors.New("decompression failed")

	// ErrEncoding is reported when a gzip stream inflates to bytes that are
	// not UTF-8. It also matches ErrDecompression.
	ErrEncoding = fmt.Errorf("%w: payload is not valid UTF-8", ErrDecompression)
)
