package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"filegate/storage"
)

func channels(n int) []storage.Channel {
	chs := make([]storage.Channel, n)
	for i := range chs {
		chs[i] = storage.Channel{ChatID: int64(-1001000000000 - i)}
	}
	return chs
}

func allMissing(chs []storage.Channel) []storage.Channel { return chs }

func noneMissing([]storage.Channel) []storage.Channel { return nil }

func TestEvaluateExemptBypassesEverything(t *testing.T) {
	d := Evaluate(true, "ABC123XY", true, channels(2), allMissing)
	assert.Equal(t, ActionPass, d.Action)
	assert.Empty(t, d.Missing)
}

func TestEvaluateOnlyCodeShapedTextIsGated(t *testing.T) {
	cases := []struct {
		name        string
		text        string
		isPlainText bool
	}{
		{"short text", "ABC123", true},
		{"long text", "ABC123XYZ", true},
		{"callback event", "ABC123XY", false},
		{"empty", "", true},
		{"two emoji, eight bytes", "😀😀", true},
		{"nine characters, multibyte", "ПРИВЕТ123", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Evaluate(false, tc.text, tc.isPlainText, channels(1), allMissing)
			assert.Equal(t, ActionPass, d.Action)
		})
	}
}

func TestEvaluateLengthTriggersEvenForInvalidCharacters(t *testing.T) {
	// Format validation belongs to the redemption handler; gating keys on
	// length alone so the prompt also covers typos.
	d := Evaluate(false, "abc123xy", true, channels(1), allMissing)
	assert.Equal(t, ActionPrompt, d.Action)
}

func TestEvaluateMeasuresCharactersNotBytes(t *testing.T) {
	// Length is a character count. Multibyte text of eight characters is
	// still a redemption attempt even though it spans more than eight
	// bytes; see the shape table above for the inverse case.
	d := Evaluate(false, "ПРИВЕТ12", true, channels(1), allMissing)
	assert.Equal(t, ActionPrompt, d.Action)
}

func TestEvaluateNoChannelsConfigured(t *testing.T) {
	d := Evaluate(false, "ABC123XY", true, nil, allMissing)
	assert.Equal(t, ActionPass, d.Action)
}

func TestEvaluateSubscribedUserPasses(t *testing.T) {
	d := Evaluate(false, "ABC123XY", true, channels(3), noneMissing)
	assert.Equal(t, ActionPass, d.Action)
}

func TestEvaluatePromptCarriesExactlyTheMissingChannels(t *testing.T) {
	chs := channels(3)
	d := Evaluate(false, "ABC123XY", true, chs, func(in []storage.Channel) []storage.Channel {
		return in[1:2]
	})
	assert.Equal(t, ActionPrompt, d.Action)
	assert.Equal(t, chs[1:2], d.Missing)
}
