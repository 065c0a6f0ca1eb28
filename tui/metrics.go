package tui

import (
	"math"

	"fortio.org/safecast"

	"github.com/iw2rmb/marginalia/dualpane"
	"github.com/iw2rmb/marginalia/layout"
)

// CellMetrics measures the primary pane: one terminal cell per character
// and one row per line whatever the size.
var CellMetrics = dualpane.MetricsFunc(func(size float64) layout.Font {
	return layout.Font{Size: size, Advance: 1, LineHeight: 1}
})

// BrailleMetrics measures the minimap. A braille cell holds two dot columns
// and four dot rows, so at size 0.5 one character takes one dot.
var BrailleMetrics = dualpane.MetricsFunc(func(size float64) layout.Font {
	return layout.FixedPitch(size, 1, 0.5)
})

// cellOf converts a layout coordinate to a cell index.
func cellOf(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	n, err := safecast.Truncate[int](math.Floor(v + 1e-9))
	if err != nil {
		return 0
	}
	return n
}
