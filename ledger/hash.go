package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// hashHexLen is the length of a hex-encoded SHA-256 digest. No hash can
// carry more leading zero characters than it has characters, so this is
// also the highest satisfiable difficulty.
const hashHexLen = sha256.Size * 2

// sha256Hex returns the hex-encoded SHA-256 digest of data.
func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// checkDifficulty rejects difficulty values outside [0, hashHexLen].
// Anything above hashHexLen makes the proof-of-work predicate
// unsatisfiable and a nonce search for it would never terminate.
func checkDifficulty(difficulty int) error {
	if difficulty < 0 {
		return fmt.Errorf("difficulty %d is negative", difficulty)
	}
	if difficulty > hashHexLen {
		return fmt.Errorf("difficulty %d exceeds the %d hex characters of a hash", difficulty, hashHexLen)
	}
	return nil
}

// MeetsDifficulty reports whether hash carries at least difficulty leading
// zero characters in its hexadecimal form. Mining searches for a nonce
// satisfying exactly this predicate. Verify deliberately does not re-check
// it, so callers wanting that guarantee can apply it per block.
func MeetsDifficulty(hash string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	return strings.HasPrefix(hash, strings.Repeat("0", difficulty))
}
