//! A complete terminal buffer implementation for GoVTE
//!
//! This package provides a production-ready terminal buffer that implements
//! the govte.Handler interface, consuming the semantic actions a
//! govte.Processor produces from raw PTY output and maintaining terminal
//! state: a cell grid, cursor, and styling.
//!
//! Example:
//!
//!	terminal := terminal.NewTerminalBuffer(80, 24)
//!	processor := govte.NewProcessor(terminal)
//!
//!	// Parse some terminal output
//!	processor.Advance(terminal, []byte("Hello \x1b[31mRed Text\x1b[0m"))
//!
//!	// Get the rendered output
//!	output := terminal.GetDisplay()

package terminal

import "github.com/termkit/govte"

// DefaultTerminal creates a default terminal buffer with standard dimensions (80x24)
func DefaultTerminal() *TerminalBuffer {
	return NewTerminalBuffer(80, 24)
}

// ParseBytes parses bytes and returns the rendered display
func ParseBytes(bytes []byte, width, height int) string {
	terminal := NewTerminalBuffer(width, height)
	processor := govte.NewProcessor(terminal)
	processor.Advance(terminal, bytes)

	return terminal.GetDisplay()
}

// ParseBytesWithColors parses bytes and returns the rendered display with colors
func ParseBytesWithColors(bytes []byte, width, height int) string {
	terminal := NewTerminalBuffer(width, height)
	processor := govte.NewProcessor(terminal)
	processor.Advance(terminal, bytes)

	return terminal.GetDisplayWithColors()
}

// CreateTerminalFromString creates a terminal buffer and parses the given string
func CreateTerminalFromString(input string, width, height int) *TerminalBuffer {
	terminal := NewTerminalBuffer(width, height)
	processor := govte.NewProcessor(terminal)
	processor.Advance(terminal, []byte(input))

	return terminal
}

// RenderString renders a string with VTE parsing and returns plain text
func RenderString(input string, width, height int) string {
	return ParseBytes([]byte(input), width, height)
}

// RenderStringWithColors renders a string with VTE parsing and returns colored output
func RenderStringWithColors(input string, width, height int) string {
	return ParseBytesWithColors([]byte(input), width, height)
}
