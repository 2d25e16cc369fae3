package description

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinBase64Length is the payload length that must be exceeded before a
// bracket-free payload is treated as base64.
const DefaultMinBase64Length = 50

var delimiterRunPattern = regexp.MustCompile(`\*{2,}`)

// Decoder turns a raw payload into plain text. The zero value skips base64
// detection and only normalises emphasis delimiters.
type Decoder struct {
	Enabled         bool
	MinBase64Length int
}

// DefaultDecoder returns a decoder with base64 detection enabled.
func DefaultDecoder() Decoder {
	return Decoder{Enabled: true, MinBase64Length: DefaultMinBase64Length}
}

// Decode returns the payload as plain text with doubled emphasis delimiters
// collapsed. When the payload looks encoded but cannot be decoded, the
// original payload is used and the decode error is returned alongside it so
// callers can log the fallback. The returned text is always usable.
func (d Decoder) Decode(raw string) (string, error) {
	if raw == "" {
		return raw, nil
	}

	text := raw
	var decodeErr error
	if d.Enabled && d.looksEncoded(raw) {
		decoded, err := DecodeBase64(raw)
		if err != nil {
			decodeErr = err
		} else {
			text = decoded
		}
	}

	return NormalizeDelimiters(text), decodeErr
}

func (d Decoder) looksEncoded(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return len(trimmed) > d.MinBase64Length && !strings.ContainsAny(trimmed, "[]")
}

// DecodeBase64 decodes standard base64 (padded or not, line wrapping allowed)
// and requires the result to be printable UTF-8 text.
func DecodeBase64(raw string) (string, error) {
	compact := strings.TrimSpace(raw)
	data, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(compact, "="))
	}
	if err != nil {
		return "", wrapDecodeError(err)
	}
	if !utf8.Valid(data) {
		return "", wrapDecodeError(errors.New("decoded bytes are not valid utf-8"))
	}
	text := string(data)
	if hasBinaryControls(text) {
		return "", wrapDecodeError(errors.New("decoded bytes contain control characters"))
	}
	return text, nil
}

// NormalizeDelimiters collapses runs of asterisks into a single delimiter.
func NormalizeDelimiters(text string) string {
	if !strings.Contains(text, "**") {
		return text
	}
	return delimiterRunPattern.ReplaceAllString(text, "*")
}

func hasBinaryControls(text string) bool {
	for _, r := range text {
		switch r {
		case '\n', '\r', '\t':
			continue
		}
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
