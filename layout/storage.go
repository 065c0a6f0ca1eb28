package layout

import "github.com/iw2rmb/marginalia/buffer"

// Storage is the text storage shared by every engine laying out the same
// document.
type Storage struct {
	buf     *buffer.Buffer
	engines []*Engine
}

func NewStorage(buf *buffer.Buffer) *Storage {
	if buf == nil {
		panic("layout: NewStorage requires a buffer")
	}
	return &Storage{buf: buf}
}

func (s *Storage) Buffer() *buffer.Buffer { return s.buf }

// Replace applies an edit to the buffer and lets every attached engine
// process it. Edits requested while any engine is inside a layout pass are
// refused.
func (s *Storage) Replace(r buffer.CharRange, text string) (buffer.Edit, bool) {
	for _, e := range s.engines {
		if e.inPass {
			e.refuse("replace characters")
			return buffer.Edit{}, false
		}
	}
	ed, ok := s.buf.Replace(r, text)
	if !ok {
		return buffer.Edit{}, false
	}
	for _, e := range s.engines {
		e.processEditing(ed)
	}
	return ed, true
}

func (s *Storage) attach(e *Engine) {
	s.engines = append(s.engines, e)
}
