package buffer

// Category classifies a message. Categories are totally ordered by severity:
// Informational < Live < Warning < Error.
type Category uint8

const (
	CategoryInformational Category = iota
	CategoryLive
	CategoryWarning
	CategoryError
)

func (c Category) String() string {
	switch c {
	case CategoryInformational:
		return "informational"
	case CategoryLive:
		return "live"
	case CategoryWarning:
		return "warning"
	case CategoryError:
		return "error"
	}
	return "unknown"
}

// MoreSevere reports whether c ranks above o.
func (c Category) MoreSevere(o Category) bool { return c > o }

// Message is a diagnostic anchored to one line.
type Message struct {
	Line        int
	Category    Category
	Summary     string
	Description string
}

type BundleID uint64

// Bundle groups every message reported on one line. The ID is stable for the
// lifetime of the bundle and never reused within a buffer.
type Bundle struct {
	ID       BundleID
	Messages []Message
}

// Principal returns the most severe category in the bundle.
func (bn *Bundle) Principal() Category {
	var out Category
	for i, m := range bn.Messages {
		if i == 0 || m.Category.MoreSevere(out) {
			out = m.Category
		}
	}
	return out
}

// Counts returns the number of messages per category.
func (bn *Bundle) Counts() map[Category]int {
	out := make(map[Category]int, 4)
	for _, m := range bn.Messages {
		out[m.Category]++
	}
	return out
}

func (bn *Bundle) has(msg Message) bool {
	for _, m := range bn.Messages {
		if m == msg {
			return true
		}
	}
	return false
}

// Messages returns the bundle attached to line.
func (b *Buffer) Messages(ln int) (*Bundle, bool) {
	if ln < 0 || ln >= len(b.lines) || b.lines[ln].bundle == nil {
		return nil, false
	}
	return b.lines[ln].bundle, true
}

// Insert adds msg to the bundle of its line, creating the bundle when the
// line has none. Inserting a message identical to one already in the bundle
// leaves the bundle unchanged. ok is false when the line does not exist.
func (b *Buffer) Insert(msg Message) (*Bundle, bool) {
	if msg.Line < 0 || msg.Line >= len(b.lines) {
		return nil, false
	}
	l := &b.lines[msg.Line]
	if l.bundle == nil {
		l.bundle = &Bundle{ID: b.nextBundleID}
		b.nextBundleID++
	}
	if !l.bundle.has(msg) {
		l.bundle.Messages = append(l.bundle.Messages, msg)
	}
	return l.bundle, true
}

// RemoveMessages drops the bundle attached to line, if any.
func (b *Buffer) RemoveMessages(ln int) {
	if ln < 0 || ln >= len(b.lines) {
		return
	}
	b.lines[ln].bundle = nil
}

// EvictedBundleIDsFromLastEdit returns the ids of the bundles whose lines
// were removed by the most recent Replace call.
func (b *Buffer) EvictedBundleIDsFromLastEdit() []BundleID {
	return append([]BundleID(nil), b.lastEvicted...)
}

// BundleLines returns the line of every bundle currently attached, keyed by id.
func (b *Buffer) BundleLines() map[BundleID]int {
	out := make(map[BundleID]int)
	for i, l := range b.lines {
		if l.bundle != nil {
			out[l.bundle.ID] = i
		}
	}
	return out
}
