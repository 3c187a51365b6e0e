package tui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactlyten", 10, "exactlyten"},
		{"this is too long", 8, "this is…"},
		{"abc", 1, "a"},
		{"abc", 0, "abc"},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.n); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}

func TestSelectionAt(t *testing.T) {
	chain := []string{"/a", "/a/b", "/a/b/c"}
	if got := selectionAt(chain, 1); got != "/a/b" {
		t.Errorf("selectionAt(chain, 1) = %q, want /a/b", got)
	}
	if got := selectionAt(chain, -1); got != "" {
		t.Errorf("selectionAt(chain, -1) = %q, want empty", got)
	}
	if got := selectionAt(chain, 5); got != "" {
		t.Errorf("selectionAt(chain, 5) = %q, want empty", got)
	}
	if got := selectionAt(nil, 0); got != "" {
		t.Errorf("selectionAt(nil, 0) = %q, want empty", got)
	}
}
