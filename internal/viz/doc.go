// Package viz provides the terminal animation of the cylinder bank.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live four-cylinder animation with RPM control
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - Theme selection with per-stroke gas colors
//
// # Key Bindings
//
//	Space - Pause/Resume the crank
//	R     - Reset crank angle to 0
//	Up/K  - Raise target RPM
//	Down/J- Lower target RPM
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
