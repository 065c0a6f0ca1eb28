package annotate

import (
	"io"
	"log"
)

// Geometry is the resolved space a decoration occupies.
type Geometry struct {
	// LineWidth and LineHeight size the collapsed indicator inside its line.
	LineWidth  float64
	LineHeight float64
	// PopupWidth and PopupOffset size the expanded presentation.
	PopupWidth  float64
	PopupOffset float64
}

// Options tune decoration geometry. Zero values select the defaults.
type Options struct {
	// MinimumInlineWidth is reserved on the trailing edge of decorated lines.
	MinimumInlineWidth float64
	// PopupMargin is subtracted from the container width before the popup
	// takes three quarters of it.
	PopupMargin float64
	// PopupGap separates the popup from the bottom of its line.
	PopupGap float64
	// Placeholder seeds new views until their first resolution.
	Placeholder Geometry

	Logger *log.Logger
}

const popupWidthRatio = 0.75

func DefaultOptions() Options {
	return Options{
		MinimumInlineWidth: 4,
		PopupMargin:        4,
		PopupGap:           0,
		Placeholder: Geometry{
			LineWidth:   4,
			LineHeight:  1,
			PopupWidth:  40,
			PopupOffset: 1,
		},
	}
}

func normalizeOptions(opt Options) Options {
	def := DefaultOptions()
	if opt.MinimumInlineWidth <= 0 {
		opt.MinimumInlineWidth = def.MinimumInlineWidth
	}
	if opt.PopupMargin < 0 {
		opt.PopupMargin = 0
	}
	if opt.PopupGap < 0 {
		opt.PopupGap = 0
	}
	if opt.Placeholder == (Geometry{}) {
		opt.Placeholder = def.Placeholder
	}
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard, "", 0)
	}
	return opt
}
