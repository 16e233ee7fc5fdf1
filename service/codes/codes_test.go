package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShape(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code := Generate()
		assert.Len(t, code, Length)
		assert.True(t, Validate(code), "generated code must validate: %q", code)
		seen[code] = struct{}{}
	}
	// 1000 draws from a 36^8 space should not collide.
	assert.Greater(t, len(seen), 990)
}

func TestValidate(t *testing.T) {
	valid := []string{"ABC123XY", "00000000", "ZZZZZZZZ"}
	for _, code := range valid {
		assert.True(t, Validate(code), code)
	}

	invalid := []string{
		"",
		"ABC123X",   // too short
		"ABC123XYZ", // too long
		"abc123xy",  // lowercase
		"ABC 23XY",  // space
		"ABC-23XY",  // punctuation
		"АВС123ХУ",  // cyrillic lookalikes
	}
	for _, code := range invalid {
		assert.False(t, Validate(code), code)
	}
}
