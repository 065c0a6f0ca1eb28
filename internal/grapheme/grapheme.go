// Package grapheme measures and cuts text in terminal cells without
// splitting grapheme clusters.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len([]rune(text)))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// ClusterWidth returns the cells one cluster occupies: 0, 1 or 2.
func ClusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w > 2 {
		w = 2
	}
	if w == 0 && cluster != "" && !isZeroWidth(cluster) {
		w = 1
	}
	return w
}

func isZeroWidth(cluster string) bool {
	for _, r := range cluster {
		if !unicode.Is(unicode.Mn, r) && r != '\u200d' {
			return false
		}
	}
	return true
}

// Width returns the cells text occupies.
func Width(text string) int {
	n := 0
	for _, c := range Split(text) {
		n += ClusterWidth(c)
	}
	return n
}

// Truncate cuts text to at most width cells. When text is cut, tail is
// appended within the width.
func Truncate(text string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	tw := Width(tail)
	if tw > width {
		tail, tw = "", 0
	}
	var sb strings.Builder
	used := 0
	for _, c := range Split(text) {
		w := ClusterWidth(c)
		if used+w > width-tw {
			break
		}
		sb.WriteString(c)
		used += w
	}
	sb.WriteString(tail)
	return sb.String()
}

// Pad appends spaces to text until it is width cells wide.
func Pad(text string, width int) string {
	if w := Width(text); w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return text
}

// Wrap breaks text into lines of at most width cells, preferring breaks
// after whitespace. Words longer than width are cut between clusters.
// Newlines in text always break.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapParagraph(para, width)...)
	}
	return out
}

func wrapParagraph(text string, width int) []string {
	clusters := Split(text)
	if len(clusters) == 0 {
		return []string{""}
	}
	var (
		out       []string
		line      []string
		lineWidth int
		breakAt   = -1 // index in line after the last space
	)
	flush := func(n int) {
		out = append(out, strings.TrimRightFunc(strings.Join(line[:n], ""), unicode.IsSpace))
		rest := append([]string(nil), line[n:]...)
		line = rest
		lineWidth = 0
		for _, c := range line {
			lineWidth += ClusterWidth(c)
		}
		breakAt = -1
	}
	for _, c := range clusters {
		w := ClusterWidth(c)
		if lineWidth+w > width && len(line) > 0 {
			if IsSpace(c) {
				flush(len(line))
				continue
			}
			if breakAt > 0 {
				flush(breakAt)
			}
			if lineWidth+w > width && len(line) > 0 {
				flush(len(line))
			}
		}
		if len(line) == 0 && IsSpace(c) && len(out) > 0 {
			continue
		}
		line = append(line, c)
		lineWidth += w
		if IsSpace(c) {
			breakAt = len(line)
		}
	}
	if len(line) > 0 {
		out = append(out, strings.TrimRightFunc(strings.Join(line, ""), unicode.IsSpace))
	}
	return out
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
