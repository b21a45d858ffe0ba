//! Terminal buffer implementation
//! Go port of the Rust implementation - production-ready terminal buffer

package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/termkit/govte"
)

// TerminalBuffer implements a complete terminal buffer. It is a govte.Handler:
// a Processor can drive it directly and it will maintain a live cell grid,
// cursor, and styling state from the semantic terminal actions it receives.
type TerminalBuffer struct {
	// Screen dimensions
	width  int
	height int

	// Terminal state
	viewport     []Row
	cursor       Cursor
	savedCursor  *SavedCursor
	title        string
	scrollRegion *ScrollRegion

	// Current character styles
	currentStyles CharacterStyles

	modes    map[govte.Mode]bool
	tabStops map[int]bool

	charsets      [4]govte.StandardCharset
	activeCharset govte.CharsetIndex

	defaultForeground govte.Rgb
	defaultBackground govte.Rgb
	cursorColor       govte.Rgb
	palette           map[int]govte.Rgb

	clipboard string
}

// ScrollRegion represents the terminal scroll region
type ScrollRegion struct {
	top    int
	bottom int
}

// NewTerminalBuffer creates a new terminal buffer with specified dimensions
func NewTerminalBuffer(width, height int) *TerminalBuffer {
	viewport := make([]Row, height)
	for i := range viewport {
		viewport[i] = NewRowWithWidth(width)
	}

	tb := &TerminalBuffer{
		width:             width,
		height:            height,
		viewport:          viewport,
		cursor:            NewCursor(),
		currentStyles:     DefaultCharacterStyles(),
		modes:             make(map[govte.Mode]bool),
		tabStops:          make(map[int]bool),
		defaultForeground: govte.White.ToRgb(),
		defaultBackground: govte.Black.ToRgb(),
		cursorColor:       govte.White.ToRgb(),
		palette:           make(map[int]govte.Rgb),
	}
	tb.modes[govte.ModeShowCursor] = true
	tb.resetTabStops()
	return tb
}

func (tb *TerminalBuffer) resetTabStops() {
	tb.tabStops = make(map[int]bool)
	for col := 8; col < tb.width; col += 8 {
		tb.tabStops[col] = true
	}
}

// GetDisplay returns the rendered display as plain text, with trailing
// blanks trimmed from each row
func (tb *TerminalBuffer) GetDisplay() string {
	var result strings.Builder

	for i, row := range tb.viewport {
		result.WriteString(strings.TrimRight(row.ToString(), " "))
		if i < len(tb.viewport)-1 {
			result.WriteString("\n")
		}
	}

	return strings.TrimRight(result.String(), " \t\n")
}

// GetDisplayWithColors returns the rendered display with ANSI color codes
func (tb *TerminalBuffer) GetDisplayWithColors() string {
	var result strings.Builder
	currentStyles := DefaultCharacterStyles()

	for rowIdx, row := range tb.viewport {
		for _, character := range row.Columns {
			// Only emit style changes when styles actually change
			if character.Styles.DiffersFrom(&currentStyles) {
				// Reset if we had any previous styles
				defaultStyles := DefaultCharacterStyles()
				if !currentStyles.equals(&defaultStyles) {
					result.WriteString("\x1b[0m")
				}

				// Apply new styles
				styleSequence := character.Styles.ToAnsiSequence()
				if styleSequence != "" {
					result.WriteString(styleSequence)
				}

				currentStyles = character.Styles
			}

			result.WriteRune(character.Character)
		}

		if rowIdx < len(tb.viewport)-1 {
			result.WriteString("\n")
		}
	}

	// Reset styles at the end if we had any
	defaultStyles := DefaultCharacterStyles()
	if !currentStyles.equals(&defaultStyles) {
		result.WriteString("\x1b[0m")
	}

	return strings.TrimRight(result.String(), " \t\n")
}

// Dimensions returns the terminal dimensions
func (tb *TerminalBuffer) Dimensions() (int, int) {
	return tb.width, tb.height
}

// CursorPosition returns the current cursor position
func (tb *TerminalBuffer) CursorPosition() (int, int) {
	return tb.cursor.X, tb.cursor.Y
}

// CursorVisible reports whether the cursor is currently shown.
func (tb *TerminalBuffer) CursorVisible() bool {
	return !tb.cursor.IsHidden
}

// Palette exposes the indexed-color overrides applied via SetColor (OSC 4).
func (tb *TerminalBuffer) Palette() map[int]govte.Rgb {
	return tb.palette
}

// Clipboard returns the data last stashed via SetClipboard (OSC 52).
func (tb *TerminalBuffer) Clipboard() string {
	return tb.clipboard
}

// Resize resizes the terminal buffer
func (tb *TerminalBuffer) Resize(width, height int) {
	tb.width = width
	tb.height = height

	// Resize existing rows
	for i := range tb.viewport {
		tb.viewport[i].EnsureWidth(width)
		if tb.viewport[i].Len() > width {
			tb.viewport[i].Truncate(width)
		}
	}

	// Add or remove rows as needed
	if len(tb.viewport) < height {
		// Add new rows
		for len(tb.viewport) < height {
			tb.viewport = append(tb.viewport, NewRowWithWidth(width))
		}
	} else if len(tb.viewport) > height {
		// Remove excess rows
		tb.viewport = tb.viewport[:height]
	}

	// Ensure cursor is within bounds
	if tb.cursor.X >= width {
		tb.cursor.X = width - 1
	}
	if tb.cursor.Y >= height {
		tb.cursor.Y = height - 1
	}

	tb.resetTabStops()
}

// === govte.Handler implementation ===

// Input places a printable character at the cursor, honoring line wrap and
// the currently active G0-G3 charset translation. Wrapping is deferred: a
// character written into the last column leaves the cursor past the right
// edge, and the next printable character moves to the start of the next line.
func (tb *TerminalBuffer) Input(c rune) {
	if tb.cursor.X >= tb.width {
		tb.cursor.CarriageReturn()
		tb.lineFeedWithScroll()
	}
	tb.ensureCursorInBounds()

	if tb.charsets[tb.activeCharset] == govte.StandardCharsetSpecialLineDrawing {
		c = translateSpecialLineDrawing(c)
	}

	char := NewStyledTerminalCharacter(c, tb.currentStyles)

	if tb.cursor.Y < len(tb.viewport) {
		tb.viewport[tb.cursor.Y].EnsureWidth(tb.width)

		if tb.cursor.X < tb.width {
			tb.viewport[tb.cursor.Y].Set(tb.cursor.X, char)
			tb.cursor.MoveRight(char.Width)
		}
	}
}

func (tb *TerminalBuffer) Bell() {}

func (tb *TerminalBuffer) LineFeed() {
	tb.lineFeedWithScroll()
}

func (tb *TerminalBuffer) CarriageReturn() {
	tb.cursor.CarriageReturn()
}

func (tb *TerminalBuffer) Backspace() {
	tb.cursor.MoveLeft(1)
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) Tab() {
	for col := tb.cursor.X + 1; col < tb.width; col++ {
		if tb.tabStops[col] {
			tb.cursor.X = col
			return
		}
	}
	tb.cursor.X = tb.width - 1
}

func (tb *TerminalBuffer) SetTabStop() {
	tb.tabStops[tb.cursor.X] = true
}

func (tb *TerminalBuffer) ClearTabStop(mode govte.TabulationClearMode) {
	switch mode {
	case govte.TabClearCurrent:
		delete(tb.tabStops, tb.cursor.X)
	case govte.TabClearAll:
		tb.tabStops = make(map[int]bool)
	}
}

func (tb *TerminalBuffer) TabForward(count int) {
	for i := 0; i < count; i++ {
		tb.Tab()
	}
}

func (tb *TerminalBuffer) TabBackward(count int) {
	for i := 0; i < count; i++ {
		moved := false
		for col := tb.cursor.X - 1; col >= 0; col-- {
			if tb.tabStops[col] {
				tb.cursor.X = col
				moved = true
				break
			}
		}
		if !moved {
			tb.cursor.X = 0
		}
	}
}

func (tb *TerminalBuffer) SetTitle(title string) {
	tb.title = title
}

// Goto, GotoLine and GotoCol receive 1-based line/column numbers straight off
// the wire (CUP/VPA/CHA default to 1) and convert to the buffer's 0-based grid.
func (tb *TerminalBuffer) Goto(line, col int) {
	tb.cursor.X = min(col-1, tb.width-1)
	tb.cursor.Y = min(line-1, tb.height-1)
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) GotoLine(line int) {
	tb.cursor.Y = min(line-1, tb.height-1)
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) GotoCol(col int) {
	tb.cursor.X = min(col-1, tb.width-1)
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) MoveUp(lines int) {
	tb.cursor.MoveUp(lines)
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) MoveDown(lines int) {
	tb.cursor.MoveDown(lines)
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) MoveForward(cols int) {
	tb.cursor.MoveRight(cols)
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) MoveBackward(cols int) {
	tb.cursor.MoveLeft(cols)
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) MoveDownAndCR(lines int) {
	tb.cursor.MoveDown(lines)
	tb.cursor.CarriageReturn()
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) MoveUpAndCR(lines int) {
	tb.cursor.MoveUp(lines)
	tb.cursor.CarriageReturn()
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) SaveCursorPosition() {
	saved := tb.cursor.SavePosition()
	tb.savedCursor = &saved
}

func (tb *TerminalBuffer) RestoreCursorPosition() {
	if tb.savedCursor != nil {
		tb.cursor.RestorePosition(*tb.savedCursor)
		tb.currentStyles = tb.cursor.PendingStyles
	}
}

func (tb *TerminalBuffer) InsertBlank(count int) {
	if tb.cursor.Y >= len(tb.viewport) {
		return
	}
	row := &tb.viewport[tb.cursor.Y]
	row.EnsureWidth(tb.width)
	empty := EmptyTerminalCharacter()
	for i := tb.width - 1; i >= tb.cursor.X+count; i-- {
		row.Set(i, *row.Get(i-count))
	}
	for i := tb.cursor.X; i < tb.cursor.X+count && i < tb.width; i++ {
		row.Set(i, empty)
	}
}

func (tb *TerminalBuffer) DeleteChars(count int) {
	if tb.cursor.Y >= len(tb.viewport) {
		return
	}
	row := &tb.viewport[tb.cursor.Y]
	row.EnsureWidth(tb.width)
	empty := EmptyTerminalCharacter()
	for i := tb.cursor.X; i < tb.width; i++ {
		if i+count < tb.width {
			row.Set(i, *row.Get(i+count))
		} else {
			row.Set(i, empty)
		}
	}
}

func (tb *TerminalBuffer) EraseChars(count int) {
	if tb.cursor.Y >= len(tb.viewport) {
		return
	}
	row := &tb.viewport[tb.cursor.Y]
	row.EnsureWidth(tb.width)
	empty := EmptyTerminalCharacter()
	for i := tb.cursor.X; i < tb.cursor.X+count && i < tb.width; i++ {
		row.Set(i, empty)
	}
}

func (tb *TerminalBuffer) InsertLines(count int) {
	top, bottom := tb.effectiveScrollRegion()
	if tb.cursor.Y < top || tb.cursor.Y > bottom {
		return
	}
	for i := 0; i < count; i++ {
		for y := bottom; y > tb.cursor.Y; y-- {
			tb.viewport[y] = tb.viewport[y-1]
		}
		tb.viewport[tb.cursor.Y] = NewRowWithWidth(tb.width)
	}
}

func (tb *TerminalBuffer) DeleteLines(count int) {
	top, bottom := tb.effectiveScrollRegion()
	if tb.cursor.Y < top || tb.cursor.Y > bottom {
		return
	}
	for i := 0; i < count; i++ {
		for y := tb.cursor.Y; y < bottom; y++ {
			tb.viewport[y] = tb.viewport[y+1]
		}
		tb.viewport[bottom] = NewRowWithWidth(tb.width)
	}
}

func (tb *TerminalBuffer) ClearLine(mode govte.LineClearMode) {
	tb.eraseInLine(mode)
}

func (tb *TerminalBuffer) ClearScreen(mode govte.ClearMode) {
	tb.eraseInDisplay(mode)
}

func (tb *TerminalBuffer) ScrollUp(lines int) {
	tb.scrollUp(lines)
}

func (tb *TerminalBuffer) ScrollDown(lines int) {
	tb.scrollDown(lines)
}

// SetScrollingRegion receives 1-based top/bottom row numbers and converts to
// the buffer's 0-based grid.
func (tb *TerminalBuffer) SetScrollingRegion(top, bottom int) {
	top, bottom = top-1, bottom-1
	if top < bottom && top >= 0 && bottom < tb.height {
		tb.scrollRegion = &ScrollRegion{top: top, bottom: bottom}
	} else {
		tb.scrollRegion = nil
	}
}

func (tb *TerminalBuffer) SetAttribute(attr govte.Attr) {
	applyAttr(&tb.currentStyles, attr, true)
}

func (tb *TerminalBuffer) UnsetAttribute(attr govte.Attr) {
	applyAttr(&tb.currentStyles, attr, false)
}

func (tb *TerminalBuffer) ResetAttributes() {
	fg, bg := tb.currentStyles.Foreground, tb.currentStyles.Background
	tb.currentStyles = DefaultCharacterStyles()
	tb.currentStyles.Foreground = fg
	tb.currentStyles.Background = bg
}

func (tb *TerminalBuffer) SetForeground(color govte.Color) {
	tb.currentStyles.Foreground = colorToAnsiCode(color)
}

func (tb *TerminalBuffer) SetBackground(color govte.Color) {
	tb.currentStyles.Background = colorToAnsiCode(color)
}

func (tb *TerminalBuffer) ResetColors() {
	tb.currentStyles.Foreground = nil
	tb.currentStyles.Background = nil
}

func (tb *TerminalBuffer) SetColor(index int, c govte.Rgb) {
	tb.palette[index] = c
}

func (tb *TerminalBuffer) ResetColor(index int) {
	delete(tb.palette, index)
}

func (tb *TerminalBuffer) DynamicColorSequence(w io.Writer, code int, index int) error {
	var rgb govte.Rgb
	switch code {
	case 10:
		rgb = tb.defaultForeground
	case 11:
		rgb = tb.defaultBackground
	case 12:
		rgb = tb.cursorColor
	default:
		return nil
	}
	_, err := fmt.Fprintf(w, "\x1b]%d;rgb:%02x%02x/%02x%02x/%02x%02x\x1b\\", code, rgb.R, rgb.R, rgb.G, rgb.G, rgb.B, rgb.B)
	return err
}

func (tb *TerminalBuffer) SetCursorStyle(style *govte.CursorStyle) {
	if style == nil {
		tb.cursor.Shape = CursorShapeBlock
		return
	}
	switch style.Shape {
	case govte.CursorShapeBlock:
		tb.cursor.Shape = CursorShapeBlock
	case govte.CursorShapeUnderline:
		tb.cursor.Shape = CursorShapeUnderline
	case govte.CursorShapeBeam:
		tb.cursor.Shape = CursorShapeBeam
	}
}

func (tb *TerminalBuffer) SetCursorVisible(visible bool) {
	if visible {
		tb.cursor.Show()
	} else {
		tb.cursor.Hide()
	}
}

func (tb *TerminalBuffer) SetMode(mode govte.Mode) {
	tb.modes[mode] = true
	if mode == govte.ModeShowCursor {
		tb.cursor.Show()
	}
}

func (tb *TerminalBuffer) ResetMode(mode govte.Mode) {
	tb.modes[mode] = false
	if mode == govte.ModeShowCursor {
		tb.cursor.Hide()
	}
}

// Mode reports whether the given terminal mode is currently set.
func (tb *TerminalBuffer) Mode(mode govte.Mode) bool {
	return tb.modes[mode]
}

func (tb *TerminalBuffer) DeviceStatus(w io.Writer, kind int) error {
	switch kind {
	case 5:
		_, err := io.WriteString(w, "\x1b[0n")
		return err
	case 6:
		_, err := fmt.Fprintf(w, "\x1b[%d;%dR", tb.cursor.Y+1, tb.cursor.X+1)
		return err
	}
	return nil
}

func (tb *TerminalBuffer) IdentifyTerminal(w io.Writer) error {
	_, err := io.WriteString(w, "\x1b[?6c")
	return err
}

func (tb *TerminalBuffer) SetClipboard(data string) {
	tb.clipboard = data
}

// Dectest fills the screen with 'E' as required by the DEC alignment test
// (ESC # 8).
func (tb *TerminalBuffer) Dectest() {
	e := NewTerminalCharacter('E')
	for y := range tb.viewport {
		for x := 0; x < tb.width; x++ {
			tb.viewport[y].Set(x, e)
		}
	}
}

// Lines reports the terminal height, used by the dispatcher as the default
// bottom row for DECSTBM.
func (tb *TerminalBuffer) Lines() int { return tb.height }

// Cols reports the terminal width.
func (tb *TerminalBuffer) Cols() int { return tb.width }

func (tb *TerminalBuffer) Reset() {
	tb.softReset()
}

func (tb *TerminalBuffer) HardReset() {
	tb.softReset()
	for i := range tb.viewport {
		tb.viewport[i] = NewRowWithWidth(tb.width)
	}
}

func (tb *TerminalBuffer) softReset() {
	tb.cursor = NewCursor()
	tb.currentStyles = DefaultCharacterStyles()
	tb.savedCursor = nil
	tb.scrollRegion = nil
	tb.title = ""
	tb.modes = make(map[govte.Mode]bool)
	tb.modes[govte.ModeShowCursor] = true
	tb.resetTabStops()
}

// Hook, Put and Unhook recognize DCS sequences without interpreting their
// payload; device-programming sequences are out of scope for this buffer.
func (tb *TerminalBuffer) Hook(params [][]uint16, intermediates []byte, ignore bool, action rune) {}

func (tb *TerminalBuffer) Put(data []byte) {}

func (tb *TerminalBuffer) Unhook() {}

func (tb *TerminalBuffer) ConfigureCharset(index govte.CharsetIndex, charset govte.StandardCharset) {
	tb.charsets[index] = charset
}

func (tb *TerminalBuffer) SetActiveCharset(index govte.CharsetIndex) {
	tb.activeCharset = index
}

// translateSpecialLineDrawing maps the VT100 special graphics/line-drawing
// character set onto Unicode box-drawing glyphs.
func translateSpecialLineDrawing(c rune) rune {
	switch c {
	case 'j':
		return '┘'
	case 'k':
		return '┐'
	case 'l':
		return '┌'
	case 'm':
		return '└'
	case 'n':
		return '┼'
	case 'q':
		return '─'
	case 't':
		return '├'
	case 'u':
		return '┤'
	case 'v':
		return '┴'
	case 'w':
		return '┬'
	case 'x':
		return '│'
	case 'a':
		return '▒'
	case '`':
		return '◆'
	default:
		return c
	}
}

func applyAttr(cs *CharacterStyles, attr govte.Attr, on bool) {
	code := AnsiCodeOn()
	if !on {
		code = AnsiCodeReset()
	}
	switch attr {
	case govte.AttrBold:
		cs.Bold = ptr(code)
	case govte.AttrDim:
		cs.Dim = ptr(code)
	case govte.AttrItalic:
		cs.Italic = ptr(code)
	case govte.AttrUnderline, govte.AttrDoubleUnderline, govte.AttrCurlyUnderline, govte.AttrDottedUnderline, govte.AttrDashedUnderline:
		cs.Underline = ptr(code)
	case govte.AttrBlinking:
		cs.Blink = ptr(code)
	case govte.AttrReverse:
		cs.Reverse = ptr(code)
	case govte.AttrHidden:
		cs.Hidden = ptr(code)
	case govte.AttrStrikethrough:
		cs.Strike = ptr(code)
	}
}

func ptr(a AnsiCode) *AnsiCode { return &a }

func colorToAnsiCode(color govte.Color) *AnsiCode {
	switch color.Type {
	case govte.ColorTypeNamed:
		if color.Named == govte.Foreground || color.Named == govte.Background {
			reset := AnsiCodeReset()
			return &reset
		}
		code := AnsiCodeNamedColor(NamedColor(color.Named))
		return &code
	case govte.ColorTypeIndexed:
		code := AnsiCodeColorIndex(color.Index)
		return &code
	case govte.ColorTypeRgb:
		code := AnsiCodeRgbCode(color.Rgb.R, color.Rgb.G, color.Rgb.B)
		return &code
	}
	return nil
}

// Helper methods

// lineFeedWithScroll advances the cursor one line, scrolling the active
// scroll region up when the cursor was already on its bottom row.
func (tb *TerminalBuffer) lineFeedWithScroll() {
	_, bottom := tb.effectiveScrollRegion()
	if tb.cursor.Y == bottom {
		tb.scrollUp(1)
		return
	}
	tb.cursor.LineFeed()
	tb.ensureCursorInBounds()
}

func (tb *TerminalBuffer) effectiveScrollRegion() (int, int) {
	if tb.scrollRegion != nil {
		return tb.scrollRegion.top, tb.scrollRegion.bottom
	}
	return 0, tb.height - 1
}

// ensureCursorInBounds ensures cursor position is within screen bounds
func (tb *TerminalBuffer) ensureCursorInBounds() {
	if tb.cursor.X < 0 {
		tb.cursor.X = 0
	}
	if tb.cursor.X >= tb.width {
		tb.cursor.X = tb.width - 1
	}
	if tb.cursor.Y < 0 {
		tb.cursor.Y = 0
	}
	if tb.cursor.Y >= tb.height {
		tb.cursor.Y = tb.height - 1
	}
}

// eraseInDisplay handles ED command
func (tb *TerminalBuffer) eraseInDisplay(mode govte.ClearMode) {
	emptyChar := EmptyTerminalCharacter()

	switch mode {
	case govte.ClearBelow:
		if tb.cursor.Y < len(tb.viewport) {
			for x := tb.cursor.X; x < tb.width; x++ {
				tb.viewport[tb.cursor.Y].Set(x, emptyChar)
			}
		}
		for y := tb.cursor.Y + 1; y < len(tb.viewport); y++ {
			tb.viewport[y].Clear()
		}

	case govte.ClearAbove:
		for y := 0; y < tb.cursor.Y && y < len(tb.viewport); y++ {
			tb.viewport[y].Clear()
		}
		if tb.cursor.Y < len(tb.viewport) {
			for x := 0; x <= tb.cursor.X && x < tb.width; x++ {
				tb.viewport[tb.cursor.Y].Set(x, emptyChar)
			}
		}

	case govte.ClearAll, govte.ClearSaved:
		for y := range tb.viewport {
			tb.viewport[y].Clear()
		}
	}
}

// eraseInLine handles EL command
func (tb *TerminalBuffer) eraseInLine(mode govte.LineClearMode) {
	if tb.cursor.Y >= len(tb.viewport) {
		return
	}

	emptyChar := EmptyTerminalCharacter()
	row := &tb.viewport[tb.cursor.Y]

	switch mode {
	case govte.LineClearRight:
		for x := tb.cursor.X; x < tb.width; x++ {
			row.Set(x, emptyChar)
		}

	case govte.LineClearLeft:
		for x := 0; x <= tb.cursor.X && x < tb.width; x++ {
			row.Set(x, emptyChar)
		}

	case govte.LineClearAll:
		row.Clear()
	}
}

// scrollUp scrolls the display up by n lines
func (tb *TerminalBuffer) scrollUp(lines int) {
	if lines <= 0 {
		return
	}

	top, bottom := tb.effectiveScrollRegion()

	for i := 0; i < lines; i++ {
		if top < bottom {
			for y := top; y < bottom; y++ {
				if y+1 < len(tb.viewport) {
					tb.viewport[y] = tb.viewport[y+1]
				}
			}
			if bottom < len(tb.viewport) {
				tb.viewport[bottom] = NewRowWithWidth(tb.width)
			}
		}
	}
}

// scrollDown scrolls the display down by n lines
func (tb *TerminalBuffer) scrollDown(lines int) {
	if lines <= 0 {
		return
	}

	top, bottom := tb.effectiveScrollRegion()

	for i := 0; i < lines; i++ {
		if top < bottom {
			for y := bottom; y > top; y-- {
				if y-1 >= 0 && y < len(tb.viewport) {
					tb.viewport[y] = tb.viewport[y-1]
				}
			}
			if top < len(tb.viewport) {
				tb.viewport[top] = NewRowWithWidth(tb.width)
			}
		}
	}
}

var _ govte.Handler = (*TerminalBuffer)(nil)
