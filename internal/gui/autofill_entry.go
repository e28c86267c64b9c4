package gui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/chenwei791129/pokehelper/internal/autofill"
)

// AutoFillEntry is a single line entry with a suggestion list. Key input
// is routed through an autofill.Controller; the entry only renders the
// controller's buffer. The list is drawn on overlay, a container without
// layout stacked above the window content.
type AutoFillEntry struct {
	widget.Entry

	ctrl    *autofill.Controller
	list    *suggestionList
	overlay *fyne.Container
	width   float32
}

var (
	_ autofill.View  = (*AutoFillEntry)(nil)
	_ fyne.Tabbable  = (*AutoFillEntry)(nil)
	_ fyne.Focusable = (*AutoFillEntry)(nil)
)

// NewAutoFillEntry creates the entry and adds its suggestion list to overlay.
func NewAutoFillEntry(opts autofill.Options, overlay *fyne.Container, width float32) (*AutoFillEntry, error) {
	e := &AutoFillEntry{
		overlay: overlay,
		width:   width,
	}
	e.ExtendBaseWidget(e)

	ctrl, err := autofill.New(opts, e)
	if err != nil {
		return nil, err
	}
	e.ctrl = ctrl

	e.list = newSuggestionList(opts.MaxShown)
	e.list.onHover = e.ctrl.Hover
	e.list.onLeave = e.ctrl.Unhover
	e.list.onTap = func(row int) {
		e.ctrl.Click(row)
		e.render()
	}
	overlay.Add(e.list)
	return e, nil
}

// Controller exposes the underlying controller.
func (e *AutoFillEntry) Controller() *autofill.Controller {
	return e.ctrl
}

// MinSize keeps the entry at its configured width.
func (e *AutoFillEntry) MinSize() fyne.Size {
	size := e.Entry.MinSize()
	return fyne.NewSize(max(size.Width, e.width), size.Height)
}

// AcceptsTab lets Tab cycle suggestions instead of moving focus.
func (e *AutoFillEntry) AcceptsTab() bool {
	return true
}

// Value returns the current text.
func (e *AutoFillEntry) Value() string {
	return e.ctrl.Text()
}

// Clear empties the entry and hides the suggestions.
func (e *AutoFillEntry) Clear() {
	e.ctrl.Clear()
	e.render()
}

// EnableSuggestions turns the suggestion list on or off.
func (e *AutoFillEntry) EnableSuggestions(on bool) {
	if on {
		e.ctrl.Enable()
	} else {
		e.ctrl.Disable()
	}
}

// TypedRune inserts r through the controller.
func (e *AutoFillEntry) TypedRune(r rune) {
	if e.Disabled() {
		return
	}
	e.sync()
	e.ctrl.InputChar(r)
	e.render()
}

// TypedKey handles navigation and editing keys.
func (e *AutoFillEntry) TypedKey(key *fyne.KeyEvent) {
	if e.Disabled() {
		return
	}
	e.sync()

	switch key.Name {
	case fyne.KeyTab, fyne.KeyDown:
		e.ctrl.Next()
	case fyne.KeyUp:
		e.ctrl.Prev()
	case fyne.KeyReturn, fyne.KeyEnter:
		e.ctrl.Confirm()
	case fyne.KeyBackspace:
		e.ctrl.Backspace()
	case fyne.KeyDelete:
		e.ctrl.Delete()
	case fyne.KeyRight:
		e.ctrl.AcceptSelection()
	case fyne.KeyEscape:
		e.ctrl.LoseFocus()
		return
	default:
		e.Entry.TypedKey(key)
		return
	}
	e.render()
}

// TypedShortcut handles word deletion, select all, paste and the
// shortcuts that let the entry edit its own text.
func (e *AutoFillEntry) TypedShortcut(s fyne.Shortcut) {
	switch sc := s.(type) {
	case *desktop.CustomShortcut:
		if sc.Modifier != fyne.KeyModifierControl {
			break
		}
		switch sc.KeyName {
		case fyne.KeyBackspace:
			e.sync()
			e.ctrl.DeleteWordBackward()
			e.render()
			return
		case fyne.KeyDelete:
			e.sync()
			e.ctrl.DeleteWordForward()
			e.render()
			return
		}
	case *fyne.ShortcutPaste:
		if sc.Clipboard == nil || e.Disabled() {
			return
		}
		text := strings.ReplaceAll(sc.Clipboard.Content(), "\n", " ")
		e.sync()
		e.ctrl.InputText(text)
		e.render()
		return
	case *fyne.ShortcutSelectAll:
		e.Entry.TypedShortcut(s)
		e.ctrl.SelectAll()
		return
	case *fyne.ShortcutCut, *fyne.ShortcutUndo, *fyne.ShortcutRedo:
		if e.Disabled() {
			return
		}
		// the entry edits its own text, the controller catches up on sync
		e.Entry.TypedShortcut(s)
		e.sync()
		e.render()
		return
	}
	e.Entry.TypedShortcut(s)
}

// ShowSuggestions implements autofill.View.
func (e *AutoFillEntry) ShowSuggestions(rows []string) {
	e.list.SetRows(rows)
	e.list.Move(e.anchor())
	e.list.Resize(fyne.NewSize(e.Size().Width, e.list.contentHeight()))
	e.list.Show()
	e.overlay.Refresh()
}

// HideSuggestions implements autofill.View.
func (e *AutoFillEntry) HideSuggestions() {
	e.list.Highlight(-1)
	e.list.Hide()
}

// HighlightRow implements autofill.View.
func (e *AutoFillEntry) HighlightRow(row int) {
	e.list.Highlight(row)
}

// anchor returns the point just below the entry in overlay coordinates.
func (e *AutoFillEntry) anchor() fyne.Position {
	app := fyne.CurrentApp()
	if app == nil {
		return fyne.NewPos(0, e.Size().Height)
	}
	d := app.Driver()
	pos := d.AbsolutePositionForObject(e).Subtract(d.AbsolutePositionForObject(e.overlay))
	return pos.AddXY(0, e.Size().Height)
}

// sync copies text, cursor and selection into the controller. The mouse
// moves the cursor and cut, undo and redo edit the text.
func (e *AutoFillEntry) sync() {
	text := e.Text
	cursor := e.CursorColumn
	runes := []rune(text)
	cursor = max(0, min(cursor, len(runes)))

	selStart, selEnd := cursor, cursor
	if sel := []rune(e.SelectedText()); len(sel) > 0 {
		// Selection grows either way from its anchor; the cursor sits at one end
		if cursor >= len(sel) && string(runes[cursor-len(sel):cursor]) == string(sel) {
			selStart = cursor - len(sel)
		} else if cursor+len(sel) <= len(runes) {
			selEnd = cursor + len(sel)
		}
	}
	e.ctrl.Sync(text, cursor, selStart, selEnd)
}

// render copies the controller buffer back into the entry.
func (e *AutoFillEntry) render() {
	if _, _, ok := e.ctrl.Selection(); !ok && e.SelectedText() != "" {
		// a plain cursor move drops the entry's own selection
		e.Entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEnd})
	}
	if e.Text != e.ctrl.Text() {
		e.Entry.SetText(e.ctrl.Text())
	}
	e.CursorColumn = e.ctrl.Cursor()
	e.CursorRow = 0
	e.Refresh()
}
