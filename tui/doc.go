// Package tui hosts the decoration core in a Bubble Tea program.
//
// The primary pane lays text out in terminal cells with a line-number
// gutter, draws collapsed decoration indicators in the space reserved on
// decorated lines and expands them into popups below the line. The
// secondary pane is a braille minimap of the same storage that breaks lines
// exactly where the primary pane does.
package tui
