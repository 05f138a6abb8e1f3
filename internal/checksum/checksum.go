// Package checksum provides content digests for exported documents.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Verify reports whether sum matches the digest of data. Comparison is
// case-insensitive on the hex encoding.
func Verify(data []byte, sum string) bool {
	return strings.EqualFold(Sum(data), sum)
}
