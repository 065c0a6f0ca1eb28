package layout

import (
	"math"

	"github.com/iw2rmb/marginalia/geom"
)

// pass lays out every invalid line top to bottom. Valid lines whose top
// moved are laid out again so the delegate sees their new position.
func (e *Engine) pass() {
	dirty := false
	for i := range e.lines {
		if !e.lines[i].valid {
			dirty = true
			break
		}
	}
	if !dirty {
		return
	}

	e.inPass = true
	defer func() { e.inPass = false }()
	e.passCount++

	y := 0.0
	for i := range e.lines {
		l := &e.lines[i]
		if !l.valid || l.top != y {
			e.layoutLine(i, y)
		}
		y += l.height
	}
}

func (e *Engine) layoutLine(line int, y float64) {
	buf := e.st.buf
	runes := buf.LineRunes(line)
	info, _ := buf.Lookup(line)
	start := info.Range.Location
	hasNewline := line < buf.LineCount()-1

	pad := e.container.LineFragmentPadding
	adv := e.font.Advance
	lh := e.font.LineHeight

	var frags []Fragment
	pos := 0
	fy := y
	for {
		cand := e.candidateRect(fy, lh)
		rect := cand
		if e.delegate != nil {
			rect = e.delegate.ProposeLineFragmentRect(cand, start+pos, e.opt.Direction)
		}
		h := rect.Height()
		if h <= 0 {
			h = lh
			rect.Size.Height = h
		}

		capacity := Capacity(rect.Width()-2*pad, adv)
		cells, n := 0, 0
		for pos+n < len(runes) {
			w := RuneCells(runes[pos+n])
			if n > 0 && cells+w > capacity {
				break
			}
			cells += w
			n++
		}

		f := Fragment{
			Rect:  rect.Offset(0, -y),
			Cells: cells,
		}
		f.Chars.Location = start + pos
		f.Chars.Length = n
		pos += n
		last := pos >= len(runes)
		if last && hasNewline {
			f.Chars.Length++
		}

		usedW := pad + float64(cells)*adv
		usedX := rect.MinX()
		if e.opt.Direction == RightToLeft {
			usedX = rect.MaxX() - usedW
		}
		f.UsedRect = geom.R(usedX, fy-y, usedW, h)

		frags = append(frags, f)
		fy += h
		if last {
			break
		}
	}

	l := &e.lines[line]
	l.fragments = frags
	l.top = y
	l.height = fy - y
	l.valid = true
}

// candidateRect is the widest fragment the container allows at y.
func (e *Engine) candidateRect(y, h float64) geom.Rect {
	x0, x1 := 0.0, e.container.Width
	for _, ex := range e.container.Exclusions {
		if ex.MaxY() <= y || ex.MinY() >= y+h {
			continue
		}
		if ex.MinX() <= 0 {
			x0 = math.Max(x0, ex.MaxX())
		} else {
			x1 = math.Min(x1, ex.MinX())
		}
	}
	if x1 < x0 {
		x1 = x0
	}
	return geom.R(x0, y, x1-x0, h)
}
