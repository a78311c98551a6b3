package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentDigest returns a short hex digest of data, used to correlate log
// lines about an upload without logging its content.
func ContentDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
