package format

import "testing"

func TestEscapeMarkdownV1(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"my_file.txt", `my\_file.txt`},
		{"a*b[c]`d`", "a\\*b\\[c]\\`d\\`"},
	}
	for _, tc := range cases {
		got, err := EscapeMarkdown(tc.in, MarkdownV1, "")
		if err != nil {
			t.Fatalf("EscapeMarkdown(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	got, err := EscapeMarkdown("a.b-c!d", MarkdownV2, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != `a\.b\-c\!d` {
		t.Errorf("got %q", got)
	}
}

func TestEscapeMarkdownUnsupportedVersion(t *testing.T) {
	if _, err := EscapeMarkdown("x", 3, ""); err == nil {
		t.Fatal("expected error for unknown version")
	}
}
