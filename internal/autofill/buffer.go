package autofill

import "slices"

// DefaultStopChars bound the word delete operations.
var DefaultStopChars = []rune{' ', ',', '.'}

// TextBuffer is an editable rune buffer with a cursor and an optional
// selection. Positions are rune offsets.
type TextBuffer struct {
	text     []rune
	cursor   int
	selStart int
	selEnd   int
}

// Text returns the buffer contents.
func (b *TextBuffer) Text() string {
	return string(b.text)
}

// Len returns the length in runes.
func (b *TextBuffer) Len() int {
	return len(b.text)
}

// Cursor returns the cursor position.
func (b *TextBuffer) Cursor() int {
	return b.cursor
}

// Selection returns the selected range, ok is false when nothing is selected.
func (b *TextBuffer) Selection() (start, end int, ok bool) {
	if b.selStart >= b.selEnd {
		return 0, 0, false
	}
	return b.selStart, b.selEnd, true
}

// SetText replaces the contents and puts the cursor at the end.
func (b *TextBuffer) SetText(s string) {
	b.text = []rune(s)
	b.cursor = len(b.text)
	b.clearSelection()
}

// SetCursor moves the cursor, clamped to the buffer, and drops the selection.
func (b *TextBuffer) SetCursor(pos int) {
	b.cursor = b.clamp(pos)
	b.clearSelection()
}

// Select marks [from, to) as selected. The cursor goes to the end of the range.
func (b *TextBuffer) Select(from, to int) {
	from, to = b.clamp(from), b.clamp(to)
	if from > to {
		from, to = to, from
	}
	b.selStart, b.selEnd = from, to
	b.cursor = to
}

// SelectAll selects the whole buffer.
func (b *TextBuffer) SelectAll() {
	b.Select(0, len(b.text))
}

// MoveLeft moves the cursor one rune left. With a selection the cursor
// collapses to its start instead.
func (b *TextBuffer) MoveLeft() {
	if start, _, ok := b.Selection(); ok {
		b.SetCursor(start)
		return
	}
	b.SetCursor(b.cursor - 1)
}

// MoveRight moves the cursor one rune right. With a selection the cursor
// collapses to its end instead.
func (b *TextBuffer) MoveRight() {
	if _, end, ok := b.Selection(); ok {
		b.SetCursor(end)
		return
	}
	b.SetCursor(b.cursor + 1)
}

// Home moves the cursor to the start.
func (b *TextBuffer) Home() {
	b.SetCursor(0)
}

// End moves the cursor to the end.
func (b *TextBuffer) End() {
	b.SetCursor(len(b.text))
}

// Insert replaces the selection, if any, with s and leaves the cursor after it.
func (b *TextBuffer) Insert(s string) {
	b.deleteSelection()
	ins := []rune(s)
	b.text = slices.Insert(b.text, b.cursor, ins...)
	b.cursor += len(ins)
}

// DeleteBackward deletes the selection or the rune before the cursor.
// It reports whether anything was removed.
func (b *TextBuffer) DeleteBackward() bool {
	if b.deleteSelection() {
		return true
	}
	if b.cursor == 0 {
		return false
	}
	b.remove(b.cursor-1, b.cursor)
	return true
}

// DeleteForward deletes the selection or the rune after the cursor.
func (b *TextBuffer) DeleteForward() bool {
	if b.deleteSelection() {
		return true
	}
	if b.cursor >= len(b.text) {
		return false
	}
	b.remove(b.cursor, b.cursor+1)
	return true
}

// DeleteWordBackward deletes from the cursor back to the nearest stop
// character or the start of the buffer. The stop character itself is kept,
// unless it sits right before the cursor, in which case only it is removed.
func (b *TextBuffer) DeleteWordBackward(stops []rune) bool {
	if b.deleteSelection() {
		return true
	}
	if b.cursor == 0 {
		return false
	}
	if slices.Contains(stops, b.text[b.cursor-1]) {
		b.remove(b.cursor-1, b.cursor)
		return true
	}

	start := b.cursor - 1
	for start > 0 && !slices.Contains(stops, b.text[start-1]) {
		start--
	}
	b.remove(start, b.cursor)
	return true
}

// DeleteWordForward deletes from the cursor up to the nearest stop character
// or the end of the buffer. A stop character right after the cursor is
// removed on its own.
func (b *TextBuffer) DeleteWordForward(stops []rune) bool {
	if b.deleteSelection() {
		return true
	}
	if b.cursor >= len(b.text) {
		return false
	}
	if slices.Contains(stops, b.text[b.cursor]) {
		b.remove(b.cursor, b.cursor+1)
		return true
	}

	end := b.cursor + 1
	for end < len(b.text) && !slices.Contains(stops, b.text[end]) {
		end++
	}
	b.remove(b.cursor, end)
	return true
}

func (b *TextBuffer) deleteSelection() bool {
	start, end, ok := b.Selection()
	if !ok {
		b.clearSelection()
		return false
	}
	b.remove(start, end)
	return true
}

// remove deletes [from, to) and leaves the cursor at from.
func (b *TextBuffer) remove(from, to int) {
	b.text = slices.Delete(b.text, from, to)
	b.cursor = from
	b.clearSelection()
}

func (b *TextBuffer) clearSelection() {
	b.selStart, b.selEnd = 0, 0
}

func (b *TextBuffer) clamp(pos int) int {
	return max(0, min(pos, len(b.text)))
}
