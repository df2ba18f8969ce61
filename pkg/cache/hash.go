package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ArtifactKey builds the cache key for a converted artifact from the
// source path and a hash of the source content. Including the content
// hash invalidates the entry whenever the canvas changes.
func ArtifactKey(path, contentHash, format string) string {
	return "artifact:" + format + ":" + Hash([]byte(path+"\x00"+contentHash))
}
