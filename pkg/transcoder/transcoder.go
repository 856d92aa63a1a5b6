package transcoder

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"

	"github.com/wifiscan/msgproc/pkg/logger"
)

// DefaultLevel balances ratio and speed.
const DefaultLevel = 6

// TimestampLayout renders processing times as ISO-8601 UTC with microseconds.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Config is fixed at construction.
type Config struct {
	Level int
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() Config {
	return Config{Level: DefaultLevel}
}

// Option customizes a Transcoder.
type Option func(*Transcoder)

// WithClock overrides the source of processing timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Transcoder) {
		t.now = now
	}
}

// WithLogger attaches a logger for pipeline stage events.
func WithLogger(l logger.Logger) Option {
	return func(t *Transcoder) {
		t.log = l
	}
}

// Transcoder compresses and encodes messages for the delivery stream, and
// reverses the process. It holds no mutable state after New returns.
type Transcoder struct {
	level int
	now   func() time.Time
	log   logger.Logger
}

// New validates cfg and returns a Transcoder.
func New(cfg Config, opts ...Option) (*Transcoder, error) {
	if cfg.Level < gzip.BestSpeed || cfg.Level > gzip.BestCompression {
		return nil, fmt.Errorf("compression level %d out of range [%d, %d]", cfg.Level, gzip.BestSpeed, gzip.BestCompression)
	}
	t := &Transcoder{
		level: cfg.Level,
		now:   time.Now,
		log:   logger.NopLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Level returns the configured gzip level.
func (t *Transcoder) Level() int {
	return t.level
}

// Compress gzips the UTF-8 bytes of text.
func (t *Transcoder) Compress(text string) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, t.level)
	if err != nil {
		return nil, fmt.Errorf("create gzip writer: %w", err)
	}
	if _, err := zw.Write([]byte(text)); err != nil {
		zw.Close()
		return nil, fmt.Errorf("write compressed data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close gzip writer: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates a gzip stream and returns its text.
func (t *Transcoder) Decompress(data []byte) (string, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	if !utf8.Valid(raw) {
		return "", ErrEncoding
	}
	return string(raw), nil
}

// EncodeBase64 encodes data with the standard padded alphabet.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes standard padded base64. Surrounding whitespace is
// ignored; anything else outside the alphabet is an error.
func DecodeBase64(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return data, nil
}

// Ratio is the percentage size reduction from original to compressed bytes,
// rounded to two decimals. It is 0 for empty input and negative when
// compression grows the payload.
func Ratio(originalSize, compressedSize int) float64 {
	if originalSize == 0 {
		return 0
	}
	r := (1 - float64(compressedSize)/float64(originalSize)) * 100
	return math.Round(r*100) / 100
}

// Process runs the forward pipeline: serialize, compress, encode.
func (t *Transcoder) Process(m Message) (Result, error) {
	text := Serialize(m)
	originalSize := len(text)

	compressed, err := t.Compress(text)
	if err != nil {
		return Result{}, err
	}
	encoded := EncodeBase64(compressed)

	res := Result{
		OriginalSize:     originalSize,
		CompressedSize:   len(compressed),
		EncodedSize:      len(encoded),
		CompressionRatio: Ratio(originalSize, len(compressed)),
		Compressed:       compressed,
		Encoded:          encoded,
		ProcessedAt:      t.now().UTC(),
	}

	t.log.Debugw("message processed",
		"original_size", res.OriginalSize,
		"compressed_size", res.CompressedSize,
		"encoded_size", res.EncodedSize,
		"compression_ratio", res.CompressionRatio,
		"level", t.level,
	)
	return res, nil
}

// Recover runs the reverse pipeline: decode, decompress.
func (t *Transcoder) Recover(encoded string) (Recovered, error) {
	decoded, err := DecodeBase64(encoded)
	if err != nil {
		return Recovered{}, err
	}
	text, err := t.Decompress(decoded)
	if err != nil {
		return Recovered{}, err
	}

	t.log.Debugw("message recovered",
		"decoded_size", len(decoded),
		"decompressed_size", len(text),
	)
	return Recovered{
		DecodedSize: len(decoded),
		Text:        text,
	}, nil
}
