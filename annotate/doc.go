// Package annotate attaches line-anchored message decorations to a text
// display laid out by a lazy layout engine.
//
// Geometry is resolved in two phases. While the engine lays out a decorated
// line, LineFragmentPolicy reserves room for the collapsed indicator and
// records the line's full-width fragment rect as the decoration's anchor.
// One scheduler turn later, after the pass has returned, the Registry turns
// the anchor into concrete geometry and places the decoration view.
// EditBridge evicts decorations whose lines an edit removed, and
// SelectionHighlight limits redraw on selection changes.
//
// All types are owned by a single goroutine and perform no locking.
package annotate
