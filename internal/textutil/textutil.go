package textutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContainsJapanese reports whether s contains kana (U+3040 to U+30FF).
// Kanji alone does not count.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if r >= '\u3040' && r <= '\u30ff' {
			return true
		}
	}
	return false
}

// Hash computes a SHA-256 hex hash of a string for deduplication.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Truncate shortens s to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
