package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"image/png"
)

// SHA256Hex returns the hex-encoded SHA-256 digest of data.
// Both PDF documents and rendered page images are identified by it.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
