package tui

import (
	"sort"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/sched"
)

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
		return m, m.queue.Cmd()
	case sched.TurnMsg:
		if n := m.queue.RunTurn(); n > 0 {
			m.log.Printf("[TUI] turn %d ran %d tasks, %d pending", m.queue.Turns(), n, m.queue.Len())
		}
		if m.dmg.dirty() {
			m.refresh()
		}
		return m, m.queue.Cmd()
	case ReportMsg:
		for _, r := range msg.Messages {
			m.reg.Report(r)
		}
		m.refresh()
		return m, m.queue.Cmd()
	case RetractMsg:
		m.reg.Retract(msg.Lines)
		m.refresh()
		return m, m.queue.Cmd()
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.sync.AdjustScroll(float64(m.viewport.YOffset), float64(m.viewport.Height))
		return m, cmd
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	if key.Matches(msg, km.Quit) {
		return m, tea.Quit
	}

	old := m.Selection()
	switch {
	case key.Matches(msg, km.Left):
		m.moveCaret(m.caret-1, false)
	case key.Matches(msg, km.Right):
		m.moveCaret(m.caret+1, false)
	case key.Matches(msg, km.ShiftLeft):
		m.moveCaret(m.caret-1, true)
	case key.Matches(msg, km.ShiftRight):
		m.moveCaret(m.caret+1, true)
	case key.Matches(msg, km.Up):
		m.moveLines(-1)
	case key.Matches(msg, km.Down):
		m.moveLines(1)
	case key.Matches(msg, km.PageUp):
		m.moveLines(-max(m.viewport.Height, 1))
	case key.Matches(msg, km.PageDown):
		m.moveLines(max(m.viewport.Height, 1))
	case key.Matches(msg, km.Home):
		pos, _ := m.buf.PosFromOffset(m.caret)
		m.moveCaret(m.buf.OffsetFromPos(buffer.Pos{Row: pos.Row}), false)
	case key.Matches(msg, km.End):
		pos, _ := m.buf.PosFromOffset(m.caret)
		m.moveCaret(m.buf.OffsetFromPos(buffer.Pos{Row: pos.Row, Col: len(m.buf.LineRunes(pos.Row))}), false)

	case key.Matches(msg, km.Backspace):
		if m.Selection().IsEmpty() && m.caret > 0 {
			m.anchor = m.caret - 1
		}
		m.replaceSelection("")
	case key.Matches(msg, km.Delete):
		if m.Selection().IsEmpty() && m.caret < m.buf.Length() {
			m.anchor = m.caret + 1
		}
		m.replaceSelection("")
	case key.Matches(msg, km.Enter):
		m.replaceSelection("\n")

	case key.Matches(msg, km.Toggle):
		m.toggleDecoration()
	case key.Matches(msg, km.Next):
		m.nextDecoration()
	case key.Matches(msg, km.Retract):
		line := m.caretLine()
		m.reg.Retract(buffer.LineRange{First: line, Last: line})

	default:
		switch {
		case msg.Type == tea.KeyTab:
			m.replaceSelection("\t")
		case msg.Type == tea.KeySpace:
			m.replaceSelection(" ")
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
			m.replaceSelection(string(msg.Runes))
		}
	}

	if sel := m.Selection(); sel != old {
		m.highlight.SelectionDidChange(old, sel)
	}
	m.refresh()
	return m, m.queue.Cmd()
}

func (m *Model) moveCaret(off int, extend bool) {
	off = max(0, min(off, m.buf.Length()))
	m.caret = off
	if !extend {
		m.anchor = off
	}
}

func (m *Model) moveLines(delta int) {
	pos, ok := m.buf.PosFromOffset(m.caret)
	if !ok {
		return
	}
	row := max(0, min(pos.Row+delta, m.buf.LineCount()-1))
	col := min(pos.Col, len(m.buf.LineRunes(row)))
	m.moveCaret(m.buf.OffsetFromPos(buffer.Pos{Row: row, Col: col}), false)
}

func (m *Model) replaceSelection(text string) {
	r := m.Selection()
	if _, ok := m.st.Replace(r, text); !ok {
		m.anchor = m.caret
		return
	}
	m.caret = r.Location + utf8.RuneCountInString(text)
	m.anchor = m.caret
}

func (m *Model) toggleDecoration() {
	bundle, ok := m.buf.Messages(m.caretLine())
	if !ok {
		m.reg.CollapseAll()
		return
	}
	if v, ok := m.reg.View(bundle.ID); ok && v.Unfolded() {
		m.reg.CollapseAll()
		return
	}
	m.reg.Unfold(bundle.ID)
}

func (m *Model) nextDecoration() {
	byID := m.buf.BundleLines()
	if len(byID) == 0 {
		return
	}
	lines := make([]int, 0, len(byID))
	for _, l := range byID {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	cur := m.caretLine()
	target := lines[0]
	for _, l := range lines {
		if l > cur {
			target = l
			break
		}
	}
	info, ok := m.buf.Lookup(target)
	if !ok {
		return
	}
	m.moveCaret(info.Range.Location, false)
}
