// Package locator finds an embedded ZIP archive inside an opaque container blob.
package locator

import "bytes"

// Signature is the local file header magic that starts every ZIP archive.
var Signature = []byte{0x50, 0x4B, 0x03, 0x04}

// Locate returns the offset of the first archive signature in data.
// The second result is false when no signature is present, which is a valid
// outcome rather than an error. Bytes after the signature are not validated.
func Locate(data []byte) (int, bool) {
	idx := bytes.Index(data, Signature)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}
