package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenwei791129/pokehelper/internal/autofill"
)

func newTestEntry(t *testing.T, mutate func(*autofill.Options)) (*AutoFillEntry, *int) {
	t.Helper()
	test.NewTempApp(t)

	calls := 0
	opts := autofill.DefaultOptions()
	opts.Candidates = []string{"pikachu", "piplup", "charmander", "mr. mime"}
	opts.OnComplete = func() { calls++ }
	if mutate != nil {
		mutate(&opts)
	}

	overlay := container.NewWithoutLayout()
	e, err := NewAutoFillEntry(opts, overlay, 200)
	require.NoError(t, err)

	w := test.NewTempWindow(t, container.NewStack(container.NewVBox(e), overlay))
	w.Canvas().Focus(e)
	return e, &calls
}

func TestAutoFillEntryTyping(t *testing.T) {
	e, _ := newTestEntry(t, nil)

	test.Type(e, "pi")
	assert.Equal(t, "pi", e.Text)
	assert.Equal(t, 2, e.CursorColumn)
	assert.True(t, e.list.Visible())
	assert.Equal(t, []string{"Pikachu", "Piplup"}, e.list.Rows())
	assert.Equal(t, -1, e.list.Highlighted())
}

func TestAutoFillEntryTabAndEnter(t *testing.T) {
	e, calls := newTestEntry(t, nil)

	test.Type(e, "pi")
	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyTab})
	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyTab})
	assert.Equal(t, 1, e.list.Highlighted())

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Equal(t, "Piplup", e.Text)
	assert.Equal(t, "Piplup", e.Value())
	assert.False(t, e.list.Visible())
	assert.Equal(t, 0, *calls)

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Equal(t, 1, *calls)
}

func TestAutoFillEntryUpWraps(t *testing.T) {
	e, _ := newTestEntry(t, nil)

	test.Type(e, "pi")
	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyUp})
	// two rows, so the wrap lands on the slot past the last row
	assert.Equal(t, 2, e.Controller().Selected())
	assert.Equal(t, -1, e.list.Highlighted())

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyUp})
	assert.Equal(t, 1, e.list.Highlighted())
}

func TestAutoFillEntryBackspace(t *testing.T) {
	e, _ := newTestEntry(t, nil)

	test.Type(e, "pik")
	assert.Equal(t, []string{"Pikachu"}, e.list.Rows())

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	assert.Equal(t, "pi", e.Text)
	assert.Equal(t, []string{"Pikachu", "Piplup"}, e.list.Rows())

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	assert.Equal(t, "", e.Text)
	assert.False(t, e.list.Visible())
}

func TestAutoFillEntryWordDelete(t *testing.T) {
	e, _ := newTestEntry(t, nil)

	test.Type(e, "mr. mi")
	e.TypedShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyBackspace, Modifier: fyne.KeyModifierControl})
	assert.Equal(t, "mr. ", e.Text)
	assert.Equal(t, 4, e.CursorColumn)
}

func TestAutoFillEntryRightAcceptsSelection(t *testing.T) {
	e, _ := newTestEntry(t, nil)

	test.Type(e, "ch")
	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyDown})
	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	assert.Equal(t, "Charmander", e.Text)
	assert.Equal(t, len("Charmander"), e.CursorColumn)
}

func TestAutoFillEntryRowTap(t *testing.T) {
	e, _ := newTestEntry(t, nil)

	test.Type(e, "pi")
	test.Tap(e.list.rows[1])
	assert.Equal(t, "Piplup", e.Text)
	assert.False(t, e.list.Visible())
}

func TestAutoFillEntryRowHoverAndLeave(t *testing.T) {
	e, calls := newTestEntry(t, nil)

	test.Type(e, "pi")
	e.list.rows[0].MouseIn(&desktop.MouseEvent{})
	assert.Equal(t, 0, e.list.Highlighted())

	e.list.rows[0].MouseOut()
	assert.Equal(t, -1, e.list.Highlighted())

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Equal(t, "pi", e.Text)
	assert.Equal(t, 1, *calls)
}

func TestAutoFillEntryDisabledSuggestions(t *testing.T) {
	e, calls := newTestEntry(t, nil)

	e.EnableSuggestions(false)
	test.Type(e, "pi")
	assert.False(t, e.list.Visible())

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "pi", e.Text)

	e.EnableSuggestions(true)
	assert.True(t, e.list.Visible())

	e.Clear()
	assert.Equal(t, "", e.Text)
	assert.False(t, e.list.Visible())
}

func TestAutoFillEntryCutHidesSuggestions(t *testing.T) {
	test.NewTempApp(t)
	opts := autofill.DefaultOptions()
	opts.Candidates = []string{"pikachu", "piplup"}

	overlay := container.NewWithoutLayout()
	e, err := NewAutoFillEntry(opts, overlay, 200)
	require.NoError(t, err)
	w := test.NewTempWindow(t, container.NewStack(container.NewVBox(e), overlay))
	w.Canvas().Focus(e)

	test.Type(e, "pi")
	require.True(t, e.list.Visible())

	e.TypedShortcut(&fyne.ShortcutSelectAll{})
	e.TypedShortcut(&fyne.ShortcutCut{Clipboard: w.Clipboard()})

	assert.Equal(t, "", e.Text)
	assert.Equal(t, "pi", w.Clipboard().Content())
	assert.Equal(t, "", e.Value())
	assert.False(t, e.list.Visible())
	assert.False(t, e.Controller().Visible())

	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyTab})
	assert.Equal(t, -1, e.Controller().Selected())
}

func TestSuggestionListHighlight(t *testing.T) {
	test.NewTempApp(t)
	l := newSuggestionList(4)

	l.SetRows([]string{"A", "B", "C", "D", "E"})
	assert.Equal(t, []string{"A", "B", "C", "D"}, l.Rows())
	assert.Equal(t, float32(4*rowHeight), l.contentHeight())

	l.Highlight(2)
	assert.Equal(t, 2, l.Highlighted())
	assert.Equal(t, selectedBackground, l.rows[2].bg.FillColor)
	assert.Equal(t, rowBackground, l.rows[0].bg.FillColor)

	l.Highlight(4)
	assert.Equal(t, -1, l.Highlighted())

	l.SetRows([]string{"X"})
	assert.Equal(t, []string{"X"}, l.Rows())
	assert.False(t, l.rows[1].Visible())
}
