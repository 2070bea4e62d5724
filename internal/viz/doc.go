// Package viz provides terminal-based visualization for the string and
// matrix simulations.
//
// The package implements an interactive TUI using the Bubble Tea
// framework:
//
//   - [Model]: live view driving either engine at a fixed frame rate
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	P     - Poke matrix momenta (matrix model only)
//	+/-   - Adjust coupling constant
//	m/M   - Adjust mass parameter (matrix model only)
//	Q     - Quit
package viz
