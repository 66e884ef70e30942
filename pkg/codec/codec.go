// Package codec converts binary credential material (salts, password
// hashes) to and from the base64 text form used in credential files.
package codec

import (
	"encoding/base64"
	"errors"
)

// ErrDecode is returned for malformed base64 input and for input that
// decodes to zero bytes. The two cases are deliberately not
// distinguished: no valid stored field is empty, so callers treat both
// as an invalid record.
var ErrDecode = errors.New("codec: invalid encoded data")

// Encode returns the standard padded base64 encoding of raw, with no
// line wrapping. A zero-length input encodes to the empty string.
func Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode reverses Encode. The working buffer is sized from the input
// text length, which only bounds the decoded size; the returned slice
// is trimmed to what the decoder actually produced.
func Decode(text string) ([]byte, error) {
	buf := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(buf, []byte(text))
	if err != nil || n <= 0 {
		return nil, ErrDecode
	}
	return buf[:n], nil
}
