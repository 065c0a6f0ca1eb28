// Package layout is a fixed-pitch text-layout engine over a shared
// buffer.Buffer.
//
// Layout is lazy: edits and container changes only invalidate per-line
// layout, and line fragments are recomputed the next time a query needs
// them. During a layout pass the engine offers every line fragment rect to
// an optional FragmentDelegate, and refuses re-entrant layout requests and
// geometry queries until the pass has returned.
//
// Several engines may share one Storage; each edit made through the storage
// is processed by every attached engine, which then notifies its
// EditObservers.
package layout
