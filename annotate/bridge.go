package annotate

import "github.com/iw2rmb/marginalia/layout"

// EditBridge reacts to edits processed by the layout engine.
type EditBridge struct {
	reg     *Registry
	sched   Scheduler
	gutters []GutterInvalidator
}

var _ layout.EditObserver = (*EditBridge)(nil)

func NewEditBridge(reg *Registry, gutters ...GutterInvalidator) *EditBridge {
	if reg == nil {
		panic("annotate: NewEditBridge requires a registry")
	}
	b := &EditBridge{reg: reg, sched: reg.sched}
	for _, g := range gutters {
		if g != nil {
			b.gutters = append(b.gutters, g)
		}
	}
	return b
}

// DidProcessEditing runs after the engine applied an edit. Gutter redraw is
// deferred because it may generate glyphs; decorations of lines the edit
// removed are torn down immediately so the redraw never sees them.
func (b *EditBridge) DidProcessEditing(res layout.EditResult) {
	r := res.InvalidatedRange
	b.sched.Defer(func() {
		for _, g := range b.gutters {
			g.InvalidateGutter(r)
		}
	})

	evicted := b.reg.lines.EvictedBundleIDsFromLastEdit()
	if len(evicted) == 0 {
		return
	}
	b.reg.opt.Logger.Printf("[ANNOTATE] edit evicted %d bundle(s)", len(evicted))
	b.reg.RemoveMessageViews(evicted...)
}
