package autofill

import (
	"errors"
	"fmt"
)

// View renders the suggestion list. Rows are display forms, at most
// MaxShown of them. ShowSuggestions also anchors the list under the entry
// and clears any highlight; HighlightRow(-1) clears it explicitly.
type View interface {
	ShowSuggestions(rows []string)
	HideSuggestions()
	HighlightRow(row int)
}

// Options configures a Controller.
type Options struct {
	Candidates []string
	// MaxShown is the number of rows the view can hold
	MaxShown     int
	KeepOnTypo   bool
	Alphabetical bool
	// OnComplete is invoked when the entry is confirmed
	OnComplete func()
	// AlwaysCompleteOnConfirm makes Enter try to fill even when no row is selected
	AlwaysCompleteOnConfirm bool
	Enabled                 bool
	OnFocusLost             func()
	// StopChars bound word deletion, DefaultStopChars when nil
	StopChars []rune
}

// DefaultOptions returns the settings used by the main window entry.
func DefaultOptions() Options {
	return Options{
		MaxShown:     4,
		KeepOnTypo:   true,
		Alphabetical: false,
		Enabled:      true,
		StopChars:    DefaultStopChars,
	}
}

// ErrInvalidMaxShown is returned by New when MaxShown is below one.
var ErrInvalidMaxShown = errors.New("max shown must be at least 1")

// Controller keeps the text buffer and the suggestion list in sync.
// It is not safe for concurrent use; call it from the UI goroutine.
type Controller struct {
	opts       Options
	candidates *CandidateSet
	view       View

	buf         TextBuffer
	suggestions []string
	selected    int
	visible     bool
	enabled     bool
}

// New validates opts and returns a Controller drawing into view.
// A nil view is allowed for headless use.
func New(opts Options, view View) (*Controller, error) {
	if opts.MaxShown < 1 {
		return nil, fmt.Errorf("autofill: %w (got %d)", ErrInvalidMaxShown, opts.MaxShown)
	}
	if opts.StopChars == nil {
		opts.StopChars = DefaultStopChars
	}
	if view == nil {
		view = nopView{}
	}
	return &Controller{
		opts:       opts,
		candidates: NewCandidateSet(opts.Candidates, opts.Alphabetical),
		view:       view,
		selected:   -1,
		enabled:    opts.Enabled,
	}, nil
}

// Candidates returns the dictionary the controller completes from.
func (c *Controller) Candidates() *CandidateSet {
	return c.candidates
}

// Text returns the buffer contents.
func (c *Controller) Text() string {
	return c.buf.Text()
}

// Cursor returns the cursor position in runes.
func (c *Controller) Cursor() int {
	return c.buf.Cursor()
}

// Selection returns the selected text range in runes.
func (c *Controller) Selection() (start, end int, ok bool) {
	return c.buf.Selection()
}

// Suggestions returns a copy of the current suggestion list.
func (c *Controller) Suggestions() []string {
	out := make([]string, len(c.suggestions))
	copy(out, c.suggestions)
	return out
}

// Selected returns the selected row, -1 for none.
func (c *Controller) Selected() int {
	return c.selected
}

// Visible reports whether the suggestion view is shown.
func (c *Controller) Visible() bool {
	return c.visible
}

// Enabled reports whether suggestions are turned on.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Sync imports buffer state changed outside the controller, such as a
// mouse click moving the cursor or an undo. Suggestions are recomputed
// only when the text differs; it reports whether they changed.
func (c *Controller) Sync(text string, cursor, selStart, selEnd int) bool {
	changed := text != c.buf.Text()
	if changed {
		c.buf.SetText(text)
	}
	if selStart != selEnd {
		c.buf.Select(selStart, selEnd)
	} else {
		c.buf.SetCursor(cursor)
	}
	if !changed {
		return false
	}
	return c.edited()
}

// InputChar types r at the cursor. It reports whether the suggestion list changed.
func (c *Controller) InputChar(r rune) bool {
	return c.InputText(string(r))
}

// InputText types s at the cursor, replacing any selection.
func (c *Controller) InputText(s string) bool {
	c.buf.Insert(s)
	return c.edited()
}

// Backspace deletes the selection or the rune before the cursor.
func (c *Controller) Backspace() bool {
	c.buf.DeleteBackward()
	return c.edited()
}

// Delete deletes the selection or the rune after the cursor.
func (c *Controller) Delete() bool {
	c.buf.DeleteForward()
	return c.edited()
}

// DeleteWordBackward deletes back to the previous stop character.
func (c *Controller) DeleteWordBackward() bool {
	c.buf.DeleteWordBackward(c.opts.StopChars)
	return c.edited()
}

// DeleteWordForward deletes up to the next stop character.
func (c *Controller) DeleteWordForward() bool {
	c.buf.DeleteWordForward(c.opts.StopChars)
	return c.edited()
}

// SelectAll selects the whole buffer and puts the cursor at the end.
func (c *Controller) SelectAll() {
	c.buf.SelectAll()
}

// MoveLeft moves the cursor one rune left.
func (c *Controller) MoveLeft() {
	c.buf.MoveLeft()
}

// Home moves the cursor to the start of the buffer.
func (c *Controller) Home() {
	c.buf.Home()
}

// End moves the cursor to the end of the buffer.
func (c *Controller) End() {
	c.buf.End()
}

// AcceptSelection fills the entry with the selected row. When no row is
// selected it moves the cursor right instead and returns false.
func (c *Controller) AcceptSelection() bool {
	if c.selected == -1 {
		c.buf.MoveRight()
		return false
	}
	c.FillWithGuess()
	return true
}

// Next moves the selection down one row, wrapping to the top.
func (c *Controller) Next() {
	n := len(c.suggestions)
	if n == 0 {
		return
	}
	row := c.selected + 1
	if row > n-1 || row >= c.opts.MaxShown {
		row = 0
	}
	c.Select(row)
}

// Prev moves the selection up one row. Wrapping from the top lands on
// len(suggestions) when fewer than MaxShown rows exist, else on the last row.
func (c *Controller) Prev() {
	n := len(c.suggestions)
	if n == 0 {
		return
	}
	row := c.selected - 1
	if row < 0 {
		if n < c.opts.MaxShown {
			row = n
		} else {
			row = c.opts.MaxShown - 1
		}
	}
	c.Select(row)
}

// Select sets the selected row and highlights it. Ignored unless the view
// is enabled and visible and row is within [0, len(suggestions)].
func (c *Controller) Select(row int) {
	if !c.enabled || !c.visible || len(c.suggestions) == 0 {
		return
	}
	if row < 0 || row > len(c.suggestions) {
		return
	}
	c.selected = row
	c.view.HighlightRow(row)
}

// Hover highlights a row under the pointer without selecting it.
func (c *Controller) Hover(row int) {
	if !c.visible || row < 0 || row >= c.shown() {
		return
	}
	c.view.HighlightRow(row)
}

// Unhover clears the highlight and the selection when the pointer leaves a row.
func (c *Controller) Unhover() {
	c.selected = -1
	if c.visible {
		c.view.HighlightRow(-1)
	}
}

// Click selects row and fills the entry with it.
func (c *Controller) Click(row int) {
	c.Select(row)
	c.FillWithGuess()
}

// Confirm handles Enter.
func (c *Controller) Confirm() {
	if !c.enabled {
		c.complete()
		return
	}
	if c.opts.AlwaysCompleteOnConfirm {
		c.FillWithGuess()
		return
	}
	if c.selected == -1 {
		c.complete()
		return
	}
	c.FillWithGuess()
}

// FillWithGuess replaces the buffer with the best suggestion. If the buffer
// already names a candidate the completion callback runs instead.
func (c *Controller) FillWithGuess() {
	if c.candidates.Contains(c.buf.Text()) {
		c.complete()
		return
	}
	if !c.enabled {
		return
	}

	switch {
	case c.selected >= 0 && c.selected < len(c.suggestions):
		c.fill(c.suggestions[c.selected])
	case c.indexOf(c.buf.Text()) >= 0:
		c.fill(c.suggestions[c.indexOf(c.buf.Text())])
	case len(c.suggestions) == 1:
		c.fill(c.suggestions[0])
	}
}

// SetText replaces the buffer and recomputes suggestions.
func (c *Controller) SetText(s string) bool {
	c.buf.SetText(s)
	return c.edited()
}

// Clear empties the buffer and hides the view.
func (c *Controller) Clear() {
	c.buf.SetText("")
	c.suggestions = nil
	c.hide()
}

// Enable turns suggestions back on and recomputes them for the current text.
func (c *Controller) Enable() {
	if c.enabled {
		return
	}
	c.enabled = true
	c.update()
}

// Disable hides the view and suspends recomputation.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.hide()
	c.enabled = false
}

// LoseFocus hides the view and hands focus back to the host.
func (c *Controller) LoseFocus() {
	c.hide()
	if c.opts.OnFocusLost != nil {
		c.opts.OnFocusLost()
	}
}

func (c *Controller) edited() bool {
	c.unselect()
	return c.update()
}

// update recomputes the suggestion list from the buffer.
func (c *Controller) update() bool {
	if !c.enabled {
		return false
	}

	g := c.candidates.Guess(c.buf.Text())
	switch g.Kind {
	case GuessEmpty, GuessExact:
		c.suggestions = nil
		c.hide()
		return false
	}

	if len(g.Matches) > 0 {
		c.suggestions = g.Matches
		c.show()
		return true
	}
	if c.opts.KeepOnTypo {
		return false
	}
	c.suggestions = nil
	c.hide()
	return false
}

func (c *Controller) fill(candidate string) {
	c.buf.SetText(Display(candidate))
	c.suggestions = nil
	c.hide()
}

func (c *Controller) complete() {
	if c.opts.OnComplete != nil {
		c.opts.OnComplete()
	}
}

func (c *Controller) show() {
	c.selected = -1
	c.visible = true
	rows := make([]string, 0, c.shown())
	for _, s := range c.suggestions[:c.shown()] {
		rows = append(rows, Display(s))
	}
	c.view.ShowSuggestions(rows)
}

func (c *Controller) hide() {
	c.selected = -1
	if !c.visible {
		return
	}
	c.visible = false
	c.view.HideSuggestions()
}

func (c *Controller) unselect() {
	if c.selected == -1 {
		return
	}
	c.selected = -1
	if c.visible {
		c.view.HighlightRow(-1)
	}
}

func (c *Controller) shown() int {
	return min(len(c.suggestions), c.opts.MaxShown)
}

func (c *Controller) indexOf(text string) int {
	key := Normalize(text)
	for i, s := range c.suggestions {
		if s == key {
			return i
		}
	}
	return -1
}

type nopView struct{}

func (nopView) ShowSuggestions([]string) {}
func (nopView) HideSuggestions()         {}
func (nopView) HighlightRow(int)         {}
