// Package tableview renders a loaded frame as an interactive terminal grid.
//
// The view is a Bubble Tea model generic over the column and row types of
// the frame it shows. It consumes the stage stream of a load pipeline and
// keeps a viewstate.State for the column interaction state:
//
//   - LoadSucceeded replaces the frame and rebuilds the view state from its
//     columns. The sort selection survives reloads.
//   - Trigger stages animate the spinner in the status bar. The previous
//     frame stays on screen until the new one arrives.
//   - LoadFailed replaces the grid with a retry panel; r or enter reloads.
//
// # Gestures
//
// Keyboard gestures act on the focused column: s cycles the sort, < and >
// move its border, x hides it, u unhides everything and w resets widths.
// With the mouse, clicking a header cycles its sort and dragging the ┃
// border between two headers resizes them. The m key (or a right click on a
// header) opens the column menu. Each gesture is gated by DrawSettings.
//
// # Layout
//
// Column widths come from viewstate.State.Layout in fractional cells and are
// rounded on the running total so the columns always fill the terminal
// width. Cells are fitted and wrapped by display width, so wide runes keep
// the grid aligned.
//
// # Themes
//
// Nightfox, Kanagawa and Slate palettes are built in. T cycles them and
// saves the choice through the prefs package.
package tableview
