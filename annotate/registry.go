package annotate

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/geom"
)

// State is the resolution state of one decoration.
type State int

const (
	StateNoAnchor State = iota
	StatePending
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateNoAnchor:
		return "no-anchor"
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	}
	return "unknown"
}

// Anchor is the full-width rect of a decorated line's first fragment,
// recorded before any inline reservation.
type Anchor struct {
	LineFragmentRect geom.Rect
}

type placement struct {
	top   Constraint
	right Constraint
}

type entry struct {
	view      View
	anchor    Anchor
	state     State
	geometry  *Geometry
	color     lipgloss.Color
	principal buffer.Category
	line      int
	handles   *placement
}

// Decoration is a read-only snapshot of one registry entry.
type Decoration struct {
	ID        buffer.BundleID
	Line      int
	State     State
	Anchor    Anchor
	Geometry  *Geometry
	Color     lipgloss.Color
	Principal buffer.Category
	Placed    bool
	Top       float64
	Right     float64
	Unfolded  bool
}

// Registry owns every decoration entry and its view, keyed by bundle id.
type Registry struct {
	lines   LineMap
	engine  LayoutEngine
	query   GeometryQuery
	sched   Scheduler
	surface Surface
	palette Palette
	opt     Options

	mirrors []LayoutEngine
	gutters []GutterInvalidator

	entries map[buffer.BundleID]*entry
}

// NewRegistry panics when a collaborator is missing.
func NewRegistry(lines LineMap, engine LayoutEngine, sched Scheduler, surface Surface, palette Palette, opt Options) *Registry {
	switch {
	case lines == nil:
		panic("annotate: NewRegistry requires a line map")
	case engine == nil:
		panic("annotate: NewRegistry requires a layout engine")
	case sched == nil:
		panic("annotate: NewRegistry requires a scheduler")
	case surface == nil:
		panic("annotate: NewRegistry requires a surface")
	case palette == nil:
		panic("annotate: NewRegistry requires a palette")
	}
	return &Registry{
		lines:   lines,
		engine:  engine,
		query:   NewGeometryQuery(lines, engine),
		sched:   sched,
		surface: surface,
		palette: palette,
		opt:     normalizeOptions(opt),
		entries: make(map[buffer.BundleID]*entry),
	}
}

func (r *Registry) Options() Options { return r.opt }

// AddMirror registers a secondary engine whose layout must follow
// decoration changes.
func (r *Registry) AddMirror(e LayoutEngine) {
	if e != nil {
		r.mirrors = append(r.mirrors, e)
	}
}

func (r *Registry) AddGutter(g GutterInvalidator) {
	if g != nil {
		r.gutters = append(r.gutters, g)
	}
}

// Report adds msg to its line's bundle and creates the bundle's decoration.
// Reporting onto a missing line is a no-op. A message merged into a bundle
// that already has a decoration keeps the decoration's creation-time colour.
func (r *Registry) Report(msg buffer.Message) {
	bundle, ok := r.lines.Insert(msg)
	if !ok {
		r.opt.Logger.Printf("[ANNOTATE] report on missing line %d skipped", msg.Line)
		return
	}
	if _, exists := r.entries[bundle.ID]; !exists {
		principal := bundle.Principal()
		color := r.palette.ColorFor(principal)
		r.entries[bundle.ID] = &entry{
			view:      r.surface.NewView(bundle, color, r.opt.Placeholder),
			state:     StateNoAnchor,
			color:     color,
			principal: principal,
			line:      msg.Line,
		}
	}
	r.invalidateLine(msg.Line)
}

// Retract removes the bundles of every line in lr from the line map and
// tears down their decorations.
func (r *Registry) Retract(lr buffer.LineRange) {
	first := maxInt(lr.First, 0)
	last := minInt(lr.Last, r.lines.LineCount()-1)
	var ids []buffer.BundleID
	for line := first; line <= last; line++ {
		bundle, ok := r.lines.Messages(line)
		if !ok {
			continue
		}
		ids = append(ids, bundle.ID)
		r.lines.RemoveMessages(line)
		r.invalidateLine(line)
	}
	r.RemoveMessageViews(ids...)
}

// RetractAll retracts every line.
func (r *Registry) RetractAll() {
	r.Retract(buffer.LineRange{First: 0, Last: r.lines.LineCount() - 1})
}

// RemoveMessageViews detaches and drops the decorations of ids without
// touching the line map. Unknown ids are ignored.
func (r *Registry) RemoveMessageViews(ids ...buffer.BundleID) {
	for _, id := range ids {
		e, ok := r.entries[id]
		if !ok {
			continue
		}
		r.surface.Detach(e.view)
		delete(r.entries, id)
		if bundle, ok := r.lines.Messages(e.line); ok && bundle.ID == id {
			r.invalidateLine(e.line)
		}
	}
}

// RemoveAllMessageViews drops every decoration.
func (r *Registry) RemoveAllMessageViews() {
	r.RemoveMessageViews(r.IDs()...)
}

// CollapseAll folds every decoration.
func (r *Registry) CollapseAll() {
	for _, e := range r.entries {
		e.view.SetUnfolded(false)
	}
}

// Unfold expands the decoration of id and folds every other one.
func (r *Registry) Unfold(id buffer.BundleID) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	r.CollapseAll()
	e.view.SetUnfolded(true)
	return true
}

// Has reports whether id has a decoration.
func (r *Registry) Has(id buffer.BundleID) bool {
	_, ok := r.entries[id]
	return ok
}

func (r *Registry) Len() int { return len(r.entries) }

// State returns the resolution state of id.
func (r *Registry) State(id buffer.BundleID) (State, bool) {
	e, ok := r.entries[id]
	if !ok {
		return 0, false
	}
	return e.state, true
}

// View returns the view owned by id's decoration.
func (r *Registry) View(id buffer.BundleID) (View, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.view, true
}

// IDs returns the decoration ids in ascending order.
func (r *Registry) IDs() []buffer.BundleID {
	ids := make([]buffer.BundleID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Decorations returns snapshots of every decoration ordered by line.
func (r *Registry) Decorations() []Decoration {
	out := make([]Decoration, 0, len(r.entries))
	for _, id := range r.IDs() {
		e := r.entries[id]
		d := Decoration{
			ID:        id,
			Line:      e.line,
			State:     e.state,
			Anchor:    e.anchor,
			Color:     e.color,
			Principal: e.principal,
			Placed:    e.handles != nil,
			Unfolded:  e.view.Unfolded(),
		}
		if e.geometry != nil {
			g := *e.geometry
			d.Geometry = &g
		}
		if e.handles != nil {
			d.Top = e.handles.top.Offset()
			d.Right = e.handles.right.Offset()
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// recordAnchor stores a fresh anchor for the decoration on line, drops its
// geometry and schedules resolution. It reports whether a decoration exists.
func (r *Registry) recordAnchor(id buffer.BundleID, line int, rect geom.Rect) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	e.anchor = Anchor{LineFragmentRect: rect}
	e.geometry = nil
	e.state = StatePending
	e.line = line
	r.sched.Defer(func() { r.ResolveGeometry(id) })
	return true
}

// ResolveGeometry turns a pending anchor into geometry and places the view.
// Missing, anchorless and resolved decorations are left alone. When the
// engine is mid-layout, resolution is deferred to the next turn.
func (r *Registry) ResolveGeometry(id buffer.BundleID) {
	e, ok := r.entries[id]
	if !ok || e.state != StatePending {
		return
	}
	if r.engine.InLayout() {
		r.deferResolution(id)
		return
	}

	// Bring layout up to date first; the pass may record a newer anchor.
	r.engine.EnsureLayout()
	e, ok = r.entries[id]
	if !ok || e.state != StatePending {
		return
	}

	anchor := e.anchor.LineFragmentRect
	lg, st := r.query.lineGeometry(anchor)
	switch st {
	case queryNotReady:
		r.deferResolution(id)
		return
	case queryMissing:
		r.opt.Logger.Printf("[ANNOTATE] no layout under anchor of %d; skipped", id)
		return
	}
	if bundle, ok := r.lines.Messages(lg.Line); !ok || bundle.ID != id {
		r.opt.Logger.Printf("[ANNOTATE] anchor of %d covers line %d owned by another bundle; skipped", id, lg.Line)
		return
	}

	g := Geometry{
		LineWidth:   anchor.Width() - lg.Used.Width(),
		LineHeight:  anchor.Height(),
		PopupWidth:  popupWidthRatio * (r.engine.ContainerWidth() - r.opt.PopupMargin),
		PopupOffset: lg.Bounding.Height() + r.opt.PopupGap,
	}
	e.geometry = &g
	e.state = StateResolved
	e.line = lg.Line
	e.view.SetGeometry(g)

	origin := r.engine.TextOrigin()
	top := origin.Y + anchor.MinY()
	right := origin.X + anchor.MaxX()
	if e.handles == nil {
		r.surface.Attach(e.view)
		e.handles = &placement{
			top:   r.surface.Constrain(e.view, EdgeTop, top),
			right: r.surface.Constrain(e.view, EdgeRight, right),
		}
		return
	}
	if e.handles.top.Offset() != top {
		e.handles.top.SetOffset(top)
	}
	if e.handles.right.Offset() != right {
		e.handles.right.SetOffset(right)
	}
}

func (r *Registry) deferResolution(id buffer.BundleID) {
	r.opt.Logger.Printf("[ANNOTATE] layout busy; resolution of %d deferred", id)
	r.sched.Defer(func() { r.ResolveGeometry(id) })
}

// invalidateLine drops layout and display of line in every engine and
// redraws its gutter.
func (r *Registry) invalidateLine(line int) {
	rng, ok := r.query.LineRange(line)
	if !ok {
		return
	}
	r.engine.InvalidateLayout(rng)
	r.engine.InvalidateDisplay(rng)
	for _, m := range r.mirrors {
		m.InvalidateLayout(rng)
		m.InvalidateDisplay(rng)
	}
	for _, g := range r.gutters {
		g.InvalidateGutter(rng)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
