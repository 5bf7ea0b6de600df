// Package viewstate holds the interactive layout of a table view.
//
// # Overview
//
// A State tracks which columns are visible and where, how wide each one is
// relative to an even split, and which column the rows are sorted by. It is
// rebuilt from a frame's column list on every successful load.
//
// # Widths
//
// Every visible column gets overall/visibleCount units scaled by its width
// factor (1 by default), floored at Options.MinWidth. Dragging a border moves
// width between exactly two neighbouring visible columns, so the sum of
// their factors never changes:
//
//	| a (1.0) | b (1.0) | c (1.0) |      drag a's right border +30 of 300
//	| a (1.3)   | b (0.7) | c (1.0) |
//
// # Sorting
//
// Selecting the sort column cycles none → descending → ascending → none;
// selecting a different column starts again at descending. Sort applies the
// row schema's comparator as is for descending and its negation for
// ascending.
//
// # Concurrency
//
// State is unsynchronized. The renderer owns it and mutates it
// from its event loop only.
package viewstate
