// Package dualpane keeps a secondary, scaled-down rendering of a document
// in step with the primary one.
//
// Both panes are tiled so that their text containers hold the same number
// of characters per line, which makes them break lines at identical
// offsets. The secondary pane's scroll offset follows the primary's
// linearly, and a visible-region box marks the primary viewport inside the
// secondary rendering.
package dualpane
