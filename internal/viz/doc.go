// Package viz renders running cases in the terminal.
//
// [Canvas] rasterizes particle positions into Braille cells, two columns
// by four rows of dots per character. [Live] is a Bubble Tea model fed
// by the run loop through a frame channel.
//
// # Key Bindings
//
//	Space - Pause (blocks the run loop until resumed)
//	Q     - Quit and cancel the run
package viz
