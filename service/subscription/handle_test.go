package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHandle(t *testing.T) {
	cases := []struct {
		in     string
		handle string
		ok     bool
	}{
		{"@mychannel", "mychannel", true},
		{"mychannel", "mychannel", true},
		{"https://t.me/mychannel", "mychannel", true},
		{"http://t.me/mychannel", "mychannel", true},
		{"t.me/mychannel", "mychannel", true},
		{"telegram.me/mychannel", "mychannel", true},
		{"https://t.me/my_channel_42", "my_channel_42", true},

		{"", "", false},
		{"abc", "", false},                  // bare handles need 5+ chars
		{"https://example.com/chan", "", false},
		{"two words", "", false},
		{"канал", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			handle, ok := ExtractHandle(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.handle, handle)
		})
	}
}
