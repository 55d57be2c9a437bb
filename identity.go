package spv

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSource computes the content identity of shader source text:
// a SHA-256 digest rendered as 64 lowercase hex characters.
//
// The hash covers source text only. Stage, optimization level and target
// environment do not contribute, so recompiling identical source with
// different flags never looks like a new shader to a source-level cache.
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
