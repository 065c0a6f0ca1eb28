package grapheme

import (
	"reflect"
	"testing"
)

const family = "\U0001F468\u200d\U0001F469\u200d\U0001F467\u200d\U0001F466"

func TestSplitAndCount_MultiRuneGraphemes(t *testing.T) {
	text := "a" + "e\u0301" + family + "b"
	got := Split(text)
	if len(got) != 4 {
		t.Fatalf("split len=%d, want %d", len(got), 4)
	}
	if got[1] != "e\u0301" {
		t.Fatalf("split[1]=%q, want %q", got[1], "e\u0301")
	}
	if got[2] != family {
		t.Fatalf("split[2]=%q, want family emoji", got[2])
	}
	if c := Count(text); c != 4 {
		t.Fatalf("count=%d, want %d", c, 4)
	}
	if w := ClusterWidth(family); w != 2 {
		t.Fatalf("family width=%d, want 2", w)
	}
}

func TestWidth(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"日本", 4},
		{"e\u0301", 1},
		{"a\tb", 3},
	}
	for _, tc := range cases {
		if got := Width(tc.in); got != tc.want {
			t.Fatalf("Width(%q)=%d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		tail  string
		want  string
	}{
		{"hello world", 8, "...", "hello..."},
		{"hello", 8, "...", "hello"},
		{"日本語", 5, "", "日本"},
		{"hello", 2, "...", "he"},
		{"hello", 0, "", ""},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.width, tc.tail); got != tc.want {
			t.Fatalf("Truncate(%q, %d)=%q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  []string
	}{
		{"the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"a\n\nb", 5, []string{"a", "", "b"}},
		{"", 5, []string{""}},
	}
	for _, tc := range cases {
		got := Wrap(tc.in, tc.width)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Wrap(%q, %d)=%q, want %q", tc.in, tc.width, got, tc.want)
		}
		for _, line := range got {
			if Width(line) > tc.width {
				t.Fatalf("line %q wider than %d", line, tc.width)
			}
		}
	}
	if got := Wrap("x", 0); got != nil {
		t.Fatalf("Wrap at width 0=%q, want nil", got)
	}
}

func TestPad(t *testing.T) {
	if got, want := Pad("ab", 4), "ab  "; got != want {
		t.Fatalf("Pad=%q, want %q", got, want)
	}
	if got, want := Pad("abcdef", 4), "abcdef"; got != want {
		t.Fatalf("Pad=%q, want %q", got, want)
	}
}

func TestClassifiers(t *testing.T) {
	if !IsSpace("\t") {
		t.Fatalf("tab should be space")
	}
	if IsSpace("a") {
		t.Fatalf("letter should not be space")
	}
}
