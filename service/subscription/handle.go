package subscription

import (
	"regexp"
	"strings"
)

var (
	inviteLinkPattern = regexp.MustCompile(`(?:https?://)?(?:t\.me|telegram\.me)/([a-zA-Z0-9_]+)`)
	bareHandlePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{5,}$`)
)

// ExtractHandle pulls a bare channel handle out of user input: a handle
// with or without a leading "@", or a t.me/telegram.me invite URL.
func ExtractHandle(text string) (string, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), "@", "")

	if m := inviteLinkPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if bareHandlePattern.MatchString(text) {
		return text, true
	}
	return "", false
}
