package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"a longer title", 8, "a lon..."},
		{"abcdef", 3, "abc"},
		{"unbounded", 0, "unbounded"},
		{"añoñoño", 5, "añ..."},
	}
	for _, tc := range tests {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	guid := "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	got := truncateMiddle(guid, 13)
	if len([]rune(got)) != 13 {
		t.Fatalf("truncateMiddle length = %d, want 13 (%q)", len([]rune(got)), got)
	}
	if got[:6] != "3f2504" || got[len(got)-6:] != "2c3301" {
		t.Fatalf("truncateMiddle = %q, want both ends kept", got)
	}
	if truncateMiddle("short", 13) != "short" {
		t.Fatal("short values must pass through")
	}
}

func TestFit(t *testing.T) {
	if got := fit("abc", 6); got != "abc   " {
		t.Fatalf("fit pad = %q", got)
	}
	if got := fit("abcdefgh", 6); got != "abc..." {
		t.Fatalf("fit cut = %q", got)
	}
}

func TestOrDash(t *testing.T) {
	if orDash("  ") != "-" || orDash("x") != "x" {
		t.Fatal("orDash mismatch")
	}
}

func TestScrollStart(t *testing.T) {
	tests := []struct{ sel, visible, want int }{
		{0, 10, 0},
		{9, 10, 0},
		{10, 10, 1},
		{25, 10, 16},
		{3, 0, 0},
	}
	for _, tc := range tests {
		if got := scrollStart(tc.sel, tc.visible); got != tc.want {
			t.Errorf("scrollStart(%d, %d) = %d, want %d", tc.sel, tc.visible, got, tc.want)
		}
	}
}
