package govte

import (
	"encoding/base64"
	"io"
	"strconv"
	"time"
)

// SyncState manages synchronized update state.
type SyncState struct {
	enabled   bool
	buffer    []byte
	startTime time.Time
	timeout   time.Duration
}

// DCSState manages DCS sequence state.
type DCSState struct {
	active bool
	buffer []byte
}

// Processor wraps a Parser and provides high-level terminal operations.
// It translates low-level Performer callbacks into Handler method calls.
type Processor struct {
	parser    *Parser
	handler   Handler
	output    io.Writer
	syncState *SyncState
	dcsState  *DCSState
	modes     map[Mode]bool

	// precedingChar tracks the last rune printed to Ground, for CSI 'b' (REP).
	precedingChar    rune
	hasPrecedingChar bool

	// lastErr carries the first I/O error hit while answering a device
	// query (DA, DSR, OSC 10/11/12) during the current Advance call.
	lastErr error
}

// NewProcessor creates a new Processor with a handler.
func NewProcessor(handler Handler) *Processor {
	return &Processor{
		parser:  NewParser(),
		handler: handler,
		modes:   make(map[Mode]bool),
		syncState: &SyncState{
			timeout: 150 * time.Millisecond, // Default timeout
		},
		dcsState: &DCSState{
			active: false,
			buffer: make([]byte, 0),
		},
	}
}

// NewProcessorWithBuffer creates a new Processor with a buffer and handler.
func NewProcessorWithBuffer(output io.Writer, handler Handler) *Processor {
	p := NewProcessor(handler)
	p.output = output
	return p
}

// Advance processes bytes and calls appropriate Handler methods. It
// returns the first I/O error encountered while writing a device response
// (DA, DSR, OSC color queries) to the processor's output writer.
func (p *Processor) Advance(handler Handler, bytes []byte) error {
	p.lastErr = nil

	// Check for synchronized update mode
	if p.syncState.enabled {
		// In sync mode, buffer the data
		p.syncState.buffer = append(p.syncState.buffer, bytes...)

		// Check for timeout
		if time.Since(p.syncState.startTime) > p.syncState.timeout {
			// Timeout - flush buffer and disable sync
			p.processSyncBuffer(handler)
			p.syncState.enabled = false
		}
		return p.lastErr
	}

	// Normal processing
	performer := &processorPerformer{handler: handler, processor: p}
	p.parser.Advance(performer, bytes)
	return p.lastErr
}

// processSyncBuffer processes buffered data in synchronized mode.
func (p *Processor) processSyncBuffer(handler Handler) {
	if len(p.syncState.buffer) == 0 {
		return
	}

	performer := &processorPerformer{handler: handler, processor: p}
	p.parser.Advance(performer, p.syncState.buffer)
	p.syncState.buffer = p.syncState.buffer[:0]
}

// SetSyncTimeout sets the synchronized update timeout.
func (p *Processor) SetSyncTimeout(timeout time.Duration) {
	p.syncState.timeout = timeout
}

// BeginSynchronizedUpdate starts synchronized update mode.
func (p *Processor) BeginSynchronizedUpdate() {
	p.syncState.enabled = true
	p.syncState.startTime = time.Now()
	p.syncState.buffer = p.syncState.buffer[:0] // Clear buffer
}

// EndSynchronizedUpdate ends synchronized update mode and flushes buffer.
func (p *Processor) EndSynchronizedUpdate() {
	if p.syncState.enabled {
		if p.output != nil && len(p.syncState.buffer) > 0 {
			// Write buffered data to output
			_, _ = p.output.Write(p.syncState.buffer)
		}
		p.syncState.enabled = false
		p.syncState.buffer = p.syncState.buffer[:0]
	}
}

// IsInSynchronizedUpdate returns true if in synchronized update mode.
func (p *Processor) IsInSynchronizedUpdate() bool {
	return p.syncState.enabled
}

// SetMode sets a terminal mode on or off.
func (p *Processor) SetMode(mode Mode, enabled bool) {
	if p.modes == nil {
		p.modes = make(map[Mode]bool)
	}
	p.modes[mode] = enabled
}

// IsMode returns true if the specified mode is enabled.
func (p *Processor) IsMode(mode Mode) bool {
	if p.modes == nil {
		return false
	}
	return p.modes[mode]
}

// Write writes data to the processor (for buffered output).
func (p *Processor) Write(data string) {
	if p.syncState.enabled {
		// Buffer the data during synchronized updates
		p.syncState.buffer = append(p.syncState.buffer, []byte(data)...)
	} else if p.output != nil {
		// Write directly to output
		_, _ = p.output.Write([]byte(data))
	}
}

// Process processes raw bytes through the parser.
func (p *Processor) Process(data []byte) {
	if p.handler != nil {
		performer := &processorPerformer{handler: p.handler, processor: p}
		p.parser.Advance(performer, data)
	}
}

// Reset performs a soft reset.
func (p *Processor) Reset() {
	p.parser = NewParser()
	p.syncState.enabled = false
	p.syncState.buffer = p.syncState.buffer[:0]
	p.dcsState.active = false
	p.dcsState.buffer = p.dcsState.buffer[:0]
	p.hasPrecedingChar = false
}

// writer returns the writer device responses should be written to. If the
// processor was built without an output (plain NewProcessor), responses are
// discarded rather than panicking a Handler that expects a valid io.Writer.
func (p *Processor) writer() io.Writer {
	if p.output != nil {
		return p.output
	}
	return io.Discard
}

// recordErr remembers the first write error seen during the current Advance call.
func (p *Processor) recordErr(err error) {
	if err != nil && p.lastErr == nil {
		p.lastErr = err
	}
}

// processorPerformer implements Performer and translates to Handler calls.
type processorPerformer struct {
	handler   Handler
	processor *Processor
}

// Print implements Performer.
func (pp *processorPerformer) Print(c rune) {
	pp.processor.precedingChar = c
	pp.processor.hasPrecedingChar = true
	pp.handler.Input(c)
}

// Execute implements Performer.
func (pp *processorPerformer) Execute(b byte) {
	switch b {
	case C0.BEL:
		pp.handler.Bell()
	case C0.BS:
		pp.handler.Backspace()
	case C0.HT:
		pp.handler.Tab()
	case C0.LF, C0.VT, C0.FF:
		pp.handler.LineFeed()
	case C0.CR:
		pp.handler.CarriageReturn()
	case C0.SO:
		// Shift Out - activate G1 character set
		pp.handler.SetActiveCharset(G1)
	case C0.SI:
		// Shift In - activate G0 character set
		pp.handler.SetActiveCharset(G0)
	case C0.SUB:
		// SUB - print a replacement glyph; the parser itself returns to
		// Ground for any sequence this interrupted.
		pp.handler.Input('�')
	}
}

// Hook implements Performer.
func (pp *processorPerformer) Hook(params *Params, intermediates []byte, ignore bool, action rune) {
	// Convert Params to [][]uint16 format for Handler interface
	groups := params.Iter()
	handlerParams := make([][]uint16, len(groups))
	for i, group := range groups {
		handlerParams[i] = make([]uint16, len(group))
		copy(handlerParams[i], group)
	}

	// Mark DCS as active and clear buffer
	pp.processor.dcsState.active = true
	pp.processor.dcsState.buffer = pp.processor.dcsState.buffer[:0]

	// Call handler hook with converted parameters
	pp.handler.Hook(handlerParams, intermediates, ignore, action)
}

// Put implements Performer.
func (pp *processorPerformer) Put(b byte) {
	if pp.processor.dcsState.active {
		// Buffer the data byte
		pp.processor.dcsState.buffer = append(pp.processor.dcsState.buffer, b)
	}
}

// Unhook implements Performer.
func (pp *processorPerformer) Unhook() {
	if pp.processor.dcsState.active {
		// Send buffered data to handler
		if len(pp.processor.dcsState.buffer) > 0 {
			pp.handler.Put(pp.processor.dcsState.buffer)
		}

		// Mark DCS as inactive
		pp.processor.dcsState.active = false

		// Call handler unhook
		pp.handler.Unhook()
	}
}

// OscDispatch implements Performer.
func (pp *processorPerformer) OscDispatch(params [][]byte, bellTerminated bool) {
	if len(params) == 0 {
		return
	}

	oscNum, ok := parseNumber(params[0])
	if !ok {
		return
	}

	switch oscNum {
	case 0, 2:
		// Set window/icon title
		if len(params) > 1 {
			pp.handler.SetTitle(string(params[1]))
		}

	case 1:
		// Set icon name - no on-screen effect for a headless parser

	case 4:
		// Set indexed color(s): OSC 4 ; index ; spec ; index ; spec ... ST
		// Mirrors xterm/alacritty: stop at the first malformed pair instead
		// of reporting an error, so a trailing odd parameter is ignored.
		for i := 1; i+1 < len(params); i += 2 {
			idx, ok := parseNumber(params[i])
			if !ok || idx > 255 {
				break
			}
			if string(params[i+1]) == "?" {
				if err := pp.handler.DynamicColorSequence(pp.processor.writer(), 4, idx); err != nil {
					pp.processor.recordErr(err)
				}
				continue
			}
			rgb, ok := parseRgbColor(params[i+1])
			if !ok {
				break
			}
			pp.handler.SetColor(idx, rgb)
		}

	case 10, 11, 12:
		// Set/query dynamic foreground (10), background (11), cursor (12) color
		if len(params) < 2 {
			return
		}
		if string(params[1]) == "?" {
			if err := pp.handler.DynamicColorSequence(pp.processor.writer(), oscNum, 0); err != nil {
				pp.processor.recordErr(err)
			}
			return
		}
		rgb, ok := parseRgbColor(params[1])
		if !ok {
			return
		}
		switch oscNum {
		case 10:
			pp.handler.SetForeground(NewRgbColor(rgb.R, rgb.G, rgb.B))
		case 11:
			pp.handler.SetBackground(NewRgbColor(rgb.R, rgb.G, rgb.B))
		case 12:
			pp.handler.SetColor(int(Cursor), rgb)
		}

	case 50:
		// Set cursor style by name: OSC 50 ; CursorShape=N ST
		if len(params) < 2 {
			return
		}
		const prefix = "CursorShape="
		s := string(params[1])
		if len(s) > len(prefix) && s[:len(prefix)] == prefix {
			if n, ok := parseNumber([]byte(s[len(prefix):])); ok {
				pp.handler.SetCursorStyle(cursorStyleFromDECSCUSR(n))
			}
		}

	case 52:
		// Clipboard set: OSC 52 ; selection ; base64-data ST
		if len(params) < 3 {
			return
		}
		decoded, err := base64.StdEncoding.DecodeString(string(params[2]))
		if err == nil {
			pp.handler.SetClipboard(string(decoded))
		}

	case 104:
		// Reset indexed color(s), or all 256 if no indices given.
		if len(params) < 2 {
			for i := 0; i < 256; i++ {
				pp.handler.ResetColor(i)
			}
			return
		}
		for _, p := range params[1:] {
			if idx, ok := parseNumber(p); ok && idx <= 255 {
				pp.handler.ResetColor(idx)
			}
		}

	case 110:
		pp.handler.ResetColors()
	case 111:
		pp.handler.ResetColors()
	case 112:
		// Reset cursor color - no dedicated slot, handled via ResetColors.
		pp.handler.ResetColors()
	}
}

// parseNumber parses an unsigned decimal integer with an 8-bit accumulator,
// failing (rather than silently truncating) on a value above 255 or on any
// non-digit byte - matching how terminal OSC parsers reject malformed
// numeric fields outright instead of guessing at intent.
func parseNumber(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > 255 {
			return 0, false
		}
	}
	return n, true
}

// parseRgbColor parses an "rgb:RR/GG/BB" or "rgb:RRRR/GGGG/BBBB" color
// spec, as used by OSC 4/10/11/12, as well as the "#RRGGBB" shorthand xterm
// accepts at the same call sites. Each "rgb:" channel takes 1-4 hex digits
// and is scaled to 8 bits by parseHexChannel; an empty channel, more than 4
// digits, or a non-hex digit fails the whole parse.
func parseRgbColor(b []byte) (Rgb, bool) {
	s := string(b)
	if len(s) == 7 && s[0] == '#' {
		var channels [3]uint8
		for i := 0; i < 3; i++ {
			v, ok := parseHexChannel(s[1+i*2 : 3+i*2])
			if !ok {
				return Rgb{}, false
			}
			channels[i] = v
		}
		return Rgb{R: channels[0], G: channels[1], B: channels[2]}, true
	}
	if len(s) < 4 || s[:4] != "rgb:" {
		return Rgb{}, false
	}
	parts := splitN(s[4:], '/', 3)
	if len(parts) != 3 {
		return Rgb{}, false
	}
	var channels [3]uint8
	for i, part := range parts {
		v, ok := parseHexChannel(part)
		if !ok {
			return Rgb{}, false
		}
		channels[i] = v
	}
	return Rgb{R: channels[0], G: channels[1], B: channels[2]}, true
}

// parseHexChannel parses a 1-4 digit hex channel value, scaling it down to
// 8 bits the way xterm does (taking the most significant 8 bits).
func parseHexChannel(s string) (uint8, bool) {
	if len(s) == 0 || len(s) > 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	if len(s) == 1 {
		// A single digit is replicated into both nibbles (f -> ff).
		return uint8(v * 0x11), true //nolint:gosec // v <= 0xf, so the product fits a byte
	}
	bits := len(s) * 4
	return uint8(v >> (bits - 8)), true //nolint:gosec // shift result always fits a byte
}

func splitN(s string, sep byte, n int) []string {
	parts := make([]string, 0, n)
	start := 0
	for i := 0; i < len(s) && len(parts) < n-1; i++ {
		if s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// CsiDispatch implements Performer.
func (pp *processorPerformer) CsiDispatch(params *Params, intermediates []byte, ignore bool, action rune) {
	if ignore {
		return
	}

	// Get parameter groups
	groups := params.Iter()

	switch action {
	case 'A':
		// CUU - Cursor Up
		n := getParam(groups, 0, 0, 1)
		pp.handler.MoveUp(n)

	case 'B':
		// CUD - Cursor Down
		n := getParam(groups, 0, 0, 1)
		pp.handler.MoveDown(n)

	case 'C':
		// CUF - Cursor Forward
		n := getParam(groups, 0, 0, 1)
		pp.handler.MoveForward(n)

	case 'D':
		// CUB - Cursor Backward
		n := getParam(groups, 0, 0, 1)
		pp.handler.MoveBackward(n)

	case 'E':
		// CNL - Cursor Next Line
		n := getParam(groups, 0, 0, 1)
		pp.handler.MoveDownAndCR(n)

	case 'F':
		// CPL - Cursor Previous Line
		n := getParam(groups, 0, 0, 1)
		pp.handler.MoveUpAndCR(n)

	case 'G':
		// CHA - Cursor Horizontal Absolute
		col := getParam(groups, 0, 0, 1)
		pp.handler.GotoCol(col)

	case 'H', 'f':
		// CUP - Cursor Position
		row := getParam(groups, 0, 0, 1)
		col := getParam(groups, 1, 0, 1)
		pp.handler.Goto(row, col)

	case 'J':
		// ED - Erase Display
		mode := getParam(groups, 0, 0, 0)
		pp.handler.ClearScreen(ClearMode(mode)) //nolint:gosec // mode is passed through without a range check

	case 'K':
		// EL - Erase Line
		mode := getParam(groups, 0, 0, 0)
		pp.handler.ClearLine(LineClearMode(mode)) //nolint:gosec // mode is passed through without a range check

	case 'L':
		// IL - Insert Lines
		n := getParam(groups, 0, 0, 1)
		pp.handler.InsertLines(n)

	case 'M':
		// DL - Delete Lines
		n := getParam(groups, 0, 0, 1)
		pp.handler.DeleteLines(n)

	case 'P':
		// DCH - Delete Characters
		n := getParam(groups, 0, 0, 1)
		pp.handler.DeleteChars(n)

	case 'S':
		// SU - Scroll Up
		n := getParam(groups, 0, 0, 1)
		pp.handler.ScrollUp(n)

	case 'T':
		// SD - Scroll Down
		n := getParam(groups, 0, 0, 1)
		pp.handler.ScrollDown(n)

	case 'X':
		// ECH - Erase Characters
		n := getParam(groups, 0, 0, 1)
		pp.handler.EraseChars(n)

	case '@':
		// ICH - Insert Characters
		n := getParam(groups, 0, 0, 1)
		pp.handler.InsertBlank(n)

	case 'd':
		// VPA - Vertical Position Absolute
		row := getParam(groups, 0, 0, 1)
		pp.handler.GotoLine(row)

	case 'm':
		// SGR - Select Graphic Rendition
		pp.processSGR(groups)

	case 'r':
		// DECSTBM - Set Scrolling Region
		top := getParam(groups, 0, 0, 1)
		bottom := getParam(groups, 1, 0, 0)
		if bottom == 0 {
			// 0 means default (bottom of screen)
			bottom = pp.handler.Lines()
		}
		pp.handler.SetScrollingRegion(top, bottom)

	case 'b':
		// REP - Repeat preceding printable character
		if pp.processor.hasPrecedingChar {
			n := getParam(groups, 0, 0, 1)
			for i := 0; i < n; i++ {
				pp.handler.Input(pp.processor.precedingChar)
			}
		}

	case 'q':
		// DECSCUSR - Set Cursor Style
		if len(intermediates) > 0 && intermediates[0] == ' ' {
			style := getParam(groups, 0, 0, 0)
			pp.handler.SetCursorStyle(cursorStyleFromDECSCUSR(style))
		}

	case 's':
		// Save cursor position
		pp.handler.SaveCursorPosition()

	case 'u':
		// Restore cursor position
		pp.handler.RestoreCursorPosition()

	case 'h':
		// SM - Set Mode
		private := len(intermediates) > 0 && intermediates[0] == '?'
		for _, group := range groups {
			if len(group) > 0 {
				pp.handler.SetMode(ModeFromPrimitive(private, group[0]))
			}
		}

	case 'l':
		// RM - Reset Mode
		private := len(intermediates) > 0 && intermediates[0] == '?'
		for _, group := range groups {
			if len(group) > 0 {
				pp.handler.ResetMode(ModeFromPrimitive(private, group[0]))
			}
		}

	case 'n':
		// DSR - Device Status Report
		kind := getParam(groups, 0, 0, 0)
		if err := pp.handler.DeviceStatus(pp.processor.writer(), kind); err != nil {
			pp.processor.recordErr(err)
		}

	case 'c':
		// DA - Device Attributes
		if err := pp.handler.IdentifyTerminal(pp.processor.writer()); err != nil {
			pp.processor.recordErr(err)
		}

	case 'g':
		// TBC - Tab Clear
		mode := getParam(groups, 0, 0, 0)
		switch mode {
		case 0:
			pp.handler.ClearTabStop(TabClearCurrent)
		case 3:
			pp.handler.ClearTabStop(TabClearAll)
		}

	case 'I':
		// CHT - Cursor Horizontal Tab (Forward)
		count := getParam(groups, 0, 0, 1)
		pp.handler.TabForward(count)

	case 'Z':
		// CBT - Cursor Backward Tab
		count := getParam(groups, 0, 0, 1)
		pp.handler.TabBackward(count)
	}
}

// EscDispatch implements Performer.
func (pp *processorPerformer) EscDispatch(intermediates []byte, ignore bool, b byte) {
	if ignore {
		return
	}

	switch b {
	case '7':
		// DECSC - Save Cursor
		pp.handler.SaveCursorPosition()

	case '8':
		if len(intermediates) == 1 && intermediates[0] == '#' {
			// DECALN - Screen Alignment Test
			pp.handler.Dectest()
		} else {
			// DECRC - Restore Cursor
			pp.handler.RestoreCursorPosition()
		}

	case 'c':
		// RIS - Reset to Initial State
		pp.handler.Reset()
		pp.processor.hasPrecedingChar = false
		pp.processor.precedingChar = 0

	case 'D':
		// IND - Index (move down one line)
		pp.handler.MoveDown(1)

	case 'E':
		// NEL - Next Line
		pp.handler.MoveDownAndCR(1)

	case 'M':
		// RI - Reverse Index (move up one line)
		pp.handler.MoveUp(1)

	case 'B':
		// Configure charset to ASCII
		pp.configureCharset(intermediates, StandardCharsetAscii)

	case '0':
		// Configure charset to special line drawing
		pp.configureCharset(intermediates, StandardCharsetSpecialLineDrawing)

	case 'H':
		// HTS - Horizontal Tab Set
		pp.handler.SetTabStop()

	case 'Z':
		// DECID - Identify Terminal (7-bit form)
		if err := pp.handler.IdentifyTerminal(pp.processor.writer()); err != nil {
			pp.processor.recordErr(err)
		}

	case '=':
		// DECKPAM - Application Keypad
		pp.handler.SetMode(ModeApplicationKeypad)

	case '>':
		// DECKPNM - Normal Keypad
		pp.handler.ResetMode(ModeApplicationKeypad)
	}
}

// configureCharset configures a character set based on intermediate bytes.
func (pp *processorPerformer) configureCharset(intermediates []byte, charset StandardCharset) {
	if len(intermediates) != 1 {
		return
	}

	var index CharsetIndex
	switch intermediates[0] {
	case '(':
		index = G0
	case ')':
		index = G1
	case '*':
		index = G2
	case '+':
		index = G3
	default:
		return
	}

	pp.handler.ConfigureCharset(index, charset)
}

// processSGR processes SGR (Select Graphic Rendition) sequences.
//
// Params.Iter groups colon-joined subparameters into a single slice, but
// leaves semicolon-separated values (the far more common form of the
// extended-color sequences, e.g. "38;2;r;g;b") as one single-element group
// apiece. A plain per-group switch therefore only ever sees the 38/48
// marker on its own and never finds its trailing components. To handle
// both forms, 38/48 is special-cased to look ahead across group boundaries
// when the colon form wasn't used.
func (pp *processorPerformer) processSGR(groups [][]uint16) {
	if len(groups) == 0 {
		// No parameters means reset
		pp.handler.ResetAttributes()
		pp.handler.ResetColors()
		return
	}

	i := 0
	for i < len(groups) {
		group := groups[i]
		if len(group) == 0 {
			i++
			continue
		}

		switch group[0] {
		case 0:
			pp.handler.ResetAttributes()
			pp.handler.ResetColors()

		case 1:
			pp.handler.SetAttribute(AttrBold)
		case 2:
			pp.handler.SetAttribute(AttrDim)
		case 3:
			pp.handler.SetAttribute(AttrItalic)
		case 4:
			pp.handler.SetAttribute(AttrUnderline)
		case 5, 6:
			// 5 = slow blink, 6 = fast blink; govte tracks blink as one bit
			pp.handler.SetAttribute(AttrBlinking)
		case 7:
			pp.handler.SetAttribute(AttrReverse)
		case 8:
			pp.handler.SetAttribute(AttrHidden)
		case 9:
			pp.handler.SetAttribute(AttrStrikethrough)

		case 21:
			pp.handler.SetAttribute(AttrDoubleUnderline)

		case 22:
			// Cancel bold and dim
			pp.handler.UnsetAttribute(AttrBold)
			pp.handler.UnsetAttribute(AttrDim)
		case 23:
			pp.handler.UnsetAttribute(AttrItalic)
		case 24:
			pp.handler.UnsetAttribute(AttrUnderline)
			pp.handler.UnsetAttribute(AttrDoubleUnderline)
		case 25:
			pp.handler.UnsetAttribute(AttrBlinking)
		case 27:
			pp.handler.UnsetAttribute(AttrReverse)
		case 28:
			pp.handler.UnsetAttribute(AttrHidden)
		case 29:
			pp.handler.UnsetAttribute(AttrStrikethrough)

		case 30, 31, 32, 33, 34, 35, 36, 37:
			// Standard foreground colors
			pp.handler.SetForeground(NewNamedColor(NamedColor(group[0] - 30))) //nolint:gosec // value is validated

		case 38:
			consumed := pp.processExtendedColor(groups, i, true)
			i += consumed
			continue

		case 39:
			// Default foreground
			pp.handler.SetForeground(NewNamedColor(Foreground))

		case 40, 41, 42, 43, 44, 45, 46, 47:
			// Standard background colors
			pp.handler.SetBackground(NewNamedColor(NamedColor(group[0] - 40))) //nolint:gosec // value is validated

		case 48:
			consumed := pp.processExtendedColor(groups, i, false)
			i += consumed
			continue

		case 49:
			// Default background
			pp.handler.SetBackground(NewNamedColor(Background))

		case 90, 91, 92, 93, 94, 95, 96, 97:
			// Bright foreground colors
			pp.handler.SetForeground(NewNamedColor(NamedColor(group[0] - 90 + 8))) //nolint:gosec // value is validated

		case 100, 101, 102, 103, 104, 105, 106, 107:
			// Bright background colors
			pp.handler.SetBackground(NewNamedColor(NamedColor(group[0] - 100 + 8)))
		}
		i++
	}
}

// processExtendedColor processes an extended color sequence (38 or 48)
// starting at groups[start]. It handles both the colon form, where the
// colorspace id and components ride along in the same group as the 38/48
// marker, and the semicolon form, where each rides in its own top-level
// group. It returns the number of top-level groups consumed, so the caller
// can advance its index past whatever was used.
func (pp *processorPerformer) processExtendedColor(groups [][]uint16, start int, isForeground bool) int {
	marker := groups[start]

	// Colon form: 38:2:r:g:b or 38:5:n all live in one group.
	if len(marker) > 1 {
		pp.applyExtendedColor(marker[1:], isForeground)
		return 1
	}

	// Semicolon form: the colorspace selector is the next group.
	if start+1 >= len(groups) || len(groups[start+1]) == 0 {
		return 1
	}
	selector := groups[start+1][0]

	switch selector {
	case 2:
		if start+4 >= len(groups) {
			return len(groups) - start
		}
		r, rok := channelByte(firstOrZero(groups[start+2]))
		g, gok := channelByte(firstOrZero(groups[start+3]))
		b, bok := channelByte(firstOrZero(groups[start+4]))
		if rok && gok && bok {
			pp.setExtendedColor(NewRgbColor(r, g, b), isForeground)
		}
		return 5

	case 5:
		if start+2 >= len(groups) {
			return len(groups) - start
		}
		if idx, ok := channelByte(firstOrZero(groups[start+2])); ok {
			pp.setExtendedColor(NewIndexedColor(idx), isForeground)
		}
		return 3

	default:
		return 2
	}
}

// applyExtendedColor handles the colon-joined subparameter form, where
// components may carry a skipped colorspace-id slot (38:2::r:g:b). Any
// component outside 0..255 fails the whole color attribute rather than
// clamping, matching alacritty_terminal::ansi::parse_color.
func (pp *processorPerformer) applyExtendedColor(components []uint16, isForeground bool) {
	if len(components) == 0 {
		return
	}

	switch components[0] {
	case 2:
		var r, g, b uint8
		var rok, gok, bok bool
		if len(components) >= 5 {
			// 38:2:cs:r:g:b - skip the colorspace-id slot
			r, rok = channelByte(components[2])
			g, gok = channelByte(components[3])
			b, bok = channelByte(components[4])
		} else if len(components) >= 4 {
			r, rok = channelByte(components[1])
			g, gok = channelByte(components[2])
			b, bok = channelByte(components[3])
		} else {
			return
		}
		if rok && gok && bok {
			pp.setExtendedColor(NewRgbColor(r, g, b), isForeground)
		}

	case 5:
		if len(components) >= 2 {
			if idx, ok := channelByte(components[1]); ok {
				pp.setExtendedColor(NewIndexedColor(idx), isForeground)
			}
		}
	}
}

// channelByte converts a parsed color component to a byte, failing if it
// falls outside 0..255 rather than clamping it into range.
func channelByte(v uint16) (uint8, bool) {
	if v > 255 {
		return 0, false
	}
	return uint8(v), true
}

func (pp *processorPerformer) setExtendedColor(color Color, isForeground bool) {
	if isForeground {
		pp.handler.SetForeground(color)
	} else {
		pp.handler.SetBackground(color)
	}
}

func firstOrZero(group []uint16) uint16 {
	if len(group) == 0 {
		return 0
	}
	return group[0]
}

// cursorStyleFromDECSCUSR maps a DECSCUSR parameter to a cursor style.
func cursorStyleFromDECSCUSR(param int) *CursorStyle {
	switch param {
	case 0:
		return nil
	case 1, 2:
		return &CursorStyle{Shape: CursorShapeBlock, Blinking: param == 1}
	case 3, 4:
		return &CursorStyle{Shape: CursorShapeUnderline, Blinking: param == 3}
	case 5, 6:
		return &CursorStyle{Shape: CursorShapeBeam, Blinking: param == 5}
	default:
		return nil
	}
}

// getParam gets a parameter value with defaults.
func getParam(groups [][]uint16, groupIdx, paramIdx int, defaultValue int) int {
	if groupIdx >= len(groups) {
		return defaultValue
	}

	group := groups[groupIdx]
	if paramIdx >= len(group) {
		return defaultValue
	}

	value := int(group[paramIdx])
	if value == 0 && defaultValue != 0 {
		return defaultValue
	}

	return value
}
