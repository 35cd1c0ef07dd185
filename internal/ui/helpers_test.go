package ui

import (
	"testing"
	"time"
)

func TestHumanSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tc := range cases {
		if got := humanSize(tc.in); got != tc.want {
			t.Errorf("humanSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHumanTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want string
	}{
		{"2025-06-01T11:59:40Z", "just now"},
		{"2025-06-01T11:30:00Z", "30m ago"},
		{"2025-06-01T06:00:00Z", "6h ago"},
		{"2025-05-28T12:00:00Z", "4d ago"},
		{"not a timestamp", "not a timestamp"},
	}
	for _, tc := range cases {
		if got := humanTime(tc.in, now); got != tc.want {
			t.Errorf("humanTime(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 7, "this i…"},
		{"x", 0, ""},
		{"xy", 1, "…"},
		{"héllo wörld", 6, "héllo…"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestVisibleRange(t *testing.T) {
	cases := []struct {
		name                string
		sel, total, visible int
		wantStart, wantEnd  int
	}{
		{"fits entirely", 3, 5, 10, 0, 5},
		{"selection at top", 0, 100, 10, 0, 10},
		{"selection centered", 50, 100, 10, 45, 55},
		{"selection at bottom", 99, 100, 10, 90, 100},
		{"empty list", 0, 0, 10, 0, 0},
	}
	for _, tc := range cases {
		start, end := visibleRange(tc.sel, tc.total, tc.visible)
		if start != tc.wantStart || end != tc.wantEnd {
			t.Errorf("%s: visibleRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tc.name, tc.sel, tc.total, tc.visible, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestThemeLookup(t *testing.T) {
	if got := themeByName("Slate"); got.Name != "Slate" {
		t.Fatalf("themeByName(Slate) = %q", got.Name)
	}
	if got := themeByName("Nope"); got.Name != themes[0].Name {
		t.Fatalf("unknown theme = %q, want fallback %q", got.Name, themes[0].Name)
	}

	seen := map[string]bool{}
	name := themes[0].Name
	for range themes {
		seen[name] = true
		name = nextTheme(name).Name
	}
	if len(seen) != len(themes) {
		t.Fatalf("nextTheme cycled %d themes, want %d", len(seen), len(themes))
	}
	if name != themes[0].Name {
		t.Fatalf("nextTheme did not wrap around, ended at %q", name)
	}
}
