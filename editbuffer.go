package readline

// EditBuffer is the in-memory line being edited plus its caret, kept in
// sync with the terminal by construction: every mutation here is paired
// with the backspace/space/write sequence that makes the same edit on
// screen, so the buffer and the visible line never diverge (spec.md §4.4).
//
// Grounded on readline.py's _line_buffer/_caret_pos pair and its
// _putchar/_handle_backspace/_handle_delete/_handle_line_left/
// _handle_line_right/_handle_line_home/_handle_line_end/_handle_line_clear
// handlers, generalized from Python string slicing to a []rune buffer.
type EditBuffer struct {
	text        []rune
	caret       int
	replaceMode bool
}

// NewEditBuffer returns an empty buffer.
func NewEditBuffer() *EditBuffer {
	return &EditBuffer{}
}

// Text returns the current buffer contents.
func (b *EditBuffer) Text() string { return string(b.text) }

// Caret returns the current caret offset in code points.
func (b *EditBuffer) Caret() int { return b.caret }

// Len returns the buffer length in code points.
func (b *EditBuffer) Len() int { return len(b.text) }

// ReplaceMode reports whether typed characters overwrite instead of insert.
func (b *EditBuffer) ReplaceMode() bool { return b.replaceMode }

// ToggleReplaceMode flips overwrite/insert mode (bound to KeyInsert by
// default, operation OpToggleInsertReplace).
func (b *EditBuffer) ToggleReplaceMode() { b.replaceMode = !b.replaceMode }

// Reset empties the buffer without touching the terminal; used when
// loading a fresh prompt or installing a history entry wholesale.
func (b *EditBuffer) Reset() {
	b.text = nil
	b.caret = 0
}

// Set replaces the buffer contents and parks the caret at the end, without
// writing anything to term; the caller is responsible for the redraw.
func (b *EditBuffer) Set(s string) {
	b.text = []rune(s)
	b.caret = len(b.text)
}

// parkCaretAtEnd updates the caret to the end of the buffer without
// writing anything, for callers that have already redrawn the full line
// themselves (completion's reprint is the one user, spec.md §4.7 point 1
// "park the caret at end").
func (b *EditBuffer) parkCaretAtEnd() { b.caret = len(b.text) }

// trailing returns a copy of the buffer from the caret onward.
func (b *EditBuffer) trailing() []rune {
	if b.caret >= len(b.text) {
		return nil
	}
	return append([]rune(nil), b.text[b.caret:]...)
}

// Insert types ch at the caret, per readline.py's _putchar: in insert mode
// ch and the trailing substring are written over the old trailing
// substring (which they fully cover), and the cursor is backed up over the
// trailing part; in replace mode the single screen cell under the
// caret is simply overwritten and the cursor advances on its own.
func (b *EditBuffer) Insert(term Terminal, ch rune) {
	trailing := b.trailing()

	if b.replaceMode && len(trailing) > 0 {
		newText := append([]rune(nil), b.text[:b.caret]...)
		newText = append(newText, ch)
		newText = append(newText, trailing[1:]...)
		b.text = newText
		term.Write(string(ch))
		b.caret++
		return
	}

	if b.replaceMode {
		b.text = append(b.text, ch)
		term.Write(string(ch))
		b.caret++
		return
	}

	newText := append([]rune(nil), b.text[:b.caret]...)
	newText = append(newText, ch)
	newText = append(newText, trailing...)
	b.text = newText
	term.Write(string(ch) + string(trailing))
	term.Backspace(len(trailing))
	b.caret++
}

// Backspace deletes the character left of the caret, per readline.py's
// _handle_backspace: blank the trailing substring, erase the target
// character with \b-space-\b, then redraw the trailing substring one cell
// to the left over the blanked region and back up onto it. Bells at the
// start of the line.
func (b *EditBuffer) Backspace(term Terminal, bell func()) {
	if b.caret == 0 {
		bell()
		return
	}
	trailing := b.trailing()
	if len(trailing) > 0 {
		term.Spaces(len(trailing))
		term.Backspace(len(trailing))
	}
	term.Backspace(1)
	term.Spaces(1)
	term.Backspace(1)
	if len(trailing) > 0 {
		term.Write(string(trailing))
		term.Backspace(len(trailing))
	}
	newText := append([]rune(nil), b.text[:b.caret-1]...)
	newText = append(newText, trailing...)
	b.text = newText
	b.caret--
}

// DeleteForward deletes the character under the caret, per readline.py's
// _handle_delete: write the (one-shorter) trailing substring plus one
// blank cell over the old region, then back up onto it. The caret does
// not move. Bells at the end of the line.
func (b *EditBuffer) DeleteForward(term Terminal, bell func()) {
	if b.caret >= len(b.text) {
		bell()
		return
	}
	var trailing []rune
	if b.caret+1 < len(b.text) {
		trailing = append([]rune(nil), b.text[b.caret+1:]...)
	}
	term.Write(string(trailing))
	term.Spaces(1)
	term.Backspace(len(trailing) + 1)
	newText := append([]rune(nil), b.text[:b.caret]...)
	newText = append(newText, trailing...)
	b.text = newText
}

// MoveLeft moves the caret one code point left. Bells at the start.
func (b *EditBuffer) MoveLeft(term Terminal, bell func()) {
	if b.caret == 0 {
		bell()
		return
	}
	term.Backspace(1)
	b.caret--
}

// MoveRight moves the caret one code point right. Bells at the end.
func (b *EditBuffer) MoveRight(term Terminal, bell func()) {
	if b.caret >= len(b.text) {
		bell()
		return
	}
	term.Write(string(b.text[b.caret]))
	b.caret++
}

// MoveHome parks the caret at the start of the line. Bells on an empty
// buffer or a caret already at the start.
func (b *EditBuffer) MoveHome(term Terminal, bell func()) {
	if len(b.text) == 0 || b.caret == 0 {
		bell()
		return
	}
	term.Backspace(b.caret)
	b.caret = 0
}

// MoveEnd parks the caret at the end of the line. Bells on an empty
// buffer or a caret already at the end.
func (b *EditBuffer) MoveEnd(term Terminal, bell func()) {
	if len(b.text) == 0 || b.caret == len(b.text) {
		bell()
		return
	}
	term.Write(string(b.text[b.caret:]))
	b.caret = len(b.text)
}

// Clear erases the whole line from the screen and empties the buffer,
// regardless of where the caret currently sits: first the trailing
// substring is blanked, then the leading substring up to the caret is
// blanked and the cursor returns to column zero. Bells on an empty buffer.
func (b *EditBuffer) Clear(term Terminal, bell func()) {
	if len(b.text) == 0 {
		bell()
		return
	}
	if b.caret < len(b.text) {
		trailing := len(b.text) - b.caret
		term.Spaces(trailing)
		term.Backspace(trailing)
		b.text = b.text[:b.caret]
	}
	n := len(b.text)
	term.Backspace(n)
	term.Spaces(n)
	term.Backspace(n)
	b.text = nil
	b.caret = 0
}
