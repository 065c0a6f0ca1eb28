// Package geom holds the display-unit geometry shared by the layout engine,
// the annotation core and the dual-pane synchronisation.
//
// Coordinates are float64 display units with a top-left origin; Y grows
// downwards.
package geom

import "math"

type Point struct {
	X float64
	Y float64
}

type Size struct {
	Width  float64
	Height float64
}

// Rect is an origin plus a size. Rects with a non-positive width or height
// are empty but still carry their origin.
type Rect struct {
	Origin Point
	Size   Size
}

func R(x, y, w, h float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

func (r Rect) MinX() float64   { return r.Origin.X }
func (r Rect) MinY() float64   { return r.Origin.Y }
func (r Rect) MaxX() float64   { return r.Origin.X + r.Size.Width }
func (r Rect) MaxY() float64   { return r.Origin.Y + r.Size.Height }
func (r Rect) Width() float64  { return r.Size.Width }
func (r Rect) Height() float64 { return r.Size.Height }

func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Union returns the smallest rect containing both. Empty operands are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	minX := math.Min(r.MinX(), o.MinX())
	minY := math.Min(r.MinY(), o.MinY())
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return R(minX, minY, maxX-minX, maxY-minY)
}

// Intersects reports whether r and o overlap with a non-empty area.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Offset translates r by dx, dy.
func (r Rect) Offset(dx, dy float64) Rect {
	r.Origin.X += dx
	r.Origin.Y += dy
	return r
}

// WithWidth returns r with its width replaced, keeping the origin.
func (r Rect) WithWidth(w float64) Rect {
	r.Size.Width = w
	return r
}

// Clamp limits v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
