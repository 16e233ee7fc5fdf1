// Package codes generates and validates redemption codes.
package codes

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// Length is the fixed redemption-code length. The gating policy keys on it
// to recognize redemption attempts.
const Length = 8

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// Generate produces a code of Length characters drawn uniformly from
// uppercase letters and digits. Uniqueness is not checked here; it is
// enforced by the repository's constraint and callers retry on collision.
func Generate() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}

// Validate reports whether code is exactly Length uppercase letters or
// digits. It is case-sensitive and used before any repository lookup.
func Validate(code string) bool {
	return codePattern.MatchString(code)
}
