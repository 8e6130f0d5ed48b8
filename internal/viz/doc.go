// Package viz renders a page's elements in the terminal while a reveal runs.
//
// The package implements a small TUI using the Bubble Tea framework:
//
//   - [Model]: redraws element snapshots on every tick and blinks cursors
//   - [Play]: runs a reveal alongside the TUI and returns its result
//
// # Key Bindings
//
//	Q / Ctrl+C - Stop the reveal and quit
//
// Element colours are CSS colour names or hex values; names without a
// terminal equivalent fall back to the default foreground.
package viz
