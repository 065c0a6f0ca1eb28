package layout

import (
	"math"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"
)

// capacityEpsilon absorbs float error when a width was derived as an exact
// multiple of the advance.
const capacityEpsilon = 1e-6

type WritingDirection int

const (
	LeftToRight WritingDirection = iota
	RightToLeft
)

// Font is a fixed-pitch font: every cell has the same advance.
type Font struct {
	Size       float64
	Advance    float64
	LineHeight float64
}

// FixedPitch derives a font from its point size using constant advance and
// line-height ratios.
func FixedPitch(size, advanceRatio, lineRatio float64) Font {
	return Font{
		Size:       size,
		Advance:    size * advanceRatio,
		LineHeight: size * lineRatio,
	}
}

// Capacity returns how many cells of the given advance fit into width.
func Capacity(width, advance float64) int {
	if advance <= 0 || width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return 0
	}
	n, err := safecast.Truncate[int](math.Floor(width/advance + capacityEpsilon))
	if err != nil {
		return 0
	}
	return n
}

// AtLeast reports whether width reaches min, tolerating the same float
// error as Capacity. Decisions about derived widths must use it so that
// panes with different fonts agree.
func AtLeast(width, min float64) bool {
	return width+capacityEpsilon >= min
}

// RuneCells returns the number of cells r occupies. Control characters and
// tabs occupy one cell; combining marks occupy none.
func RuneCells(r rune) int {
	if r == '\t' || r < 0x20 || r == 0x7f {
		return 1
	}
	return runewidth.RuneWidth(r)
}
