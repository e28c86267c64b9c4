package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var (
	rowBackground      = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	rowForeground      = color.NRGBA{A: 0xff}
	selectedBackground = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xff, A: 0xff}
	selectedForeground = color.NRGBA{A: 0xff}
)

const rowHeight = 24

// suggestionList is the floating list under an AutoFillEntry. It owns a
// fixed pool of rows created once; unused rows are hidden.
type suggestionList struct {
	widget.BaseWidget

	rows      []*suggestionRow
	box       *fyne.Container
	highlight int
	count     int

	onHover func(row int)
	onLeave func()
	onTap   func(row int)
}

func newSuggestionList(size int) *suggestionList {
	l := &suggestionList{highlight: -1}
	objects := make([]fyne.CanvasObject, size)
	for i := range size {
		row := newSuggestionRow(l, i)
		row.Hide()
		l.rows = append(l.rows, row)
		objects[i] = row
	}
	l.box = container.NewVBox(objects...)
	l.ExtendBaseWidget(l)
	l.Hide()
	return l
}

func (l *suggestionList) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(l.box)
}

// SetRows fills the first len(texts) rows and hides the rest.
func (l *suggestionList) SetRows(texts []string) {
	l.count = min(len(texts), len(l.rows))
	for i, row := range l.rows {
		if i < l.count {
			row.setText(texts[i])
			row.Show()
		} else {
			row.Hide()
		}
	}
	l.Highlight(-1)
}

// Highlight marks row as selected. Out of range rows clear the highlight.
func (l *suggestionList) Highlight(row int) {
	if row >= l.count {
		row = -1
	}
	l.highlight = row
	for i, r := range l.rows {
		r.setSelected(i == row)
	}
}

// Rows returns the texts of the visible rows.
func (l *suggestionList) Rows() []string {
	out := make([]string, 0, l.count)
	for _, r := range l.rows[:l.count] {
		out = append(out, r.text.Text)
	}
	return out
}

// Highlighted returns the highlighted row, -1 for none.
func (l *suggestionList) Highlighted() int {
	return l.highlight
}

func (l *suggestionList) contentHeight() float32 {
	return float32(l.count) * rowHeight
}

// suggestionRow is one clickable line of the list.
type suggestionRow struct {
	widget.BaseWidget

	list  *suggestionList
	index int
	bg    *canvas.Rectangle
	text  *canvas.Text
}

var (
	_ fyne.Tappable     = (*suggestionRow)(nil)
	_ desktop.Hoverable = (*suggestionRow)(nil)
)

func newSuggestionRow(list *suggestionList, index int) *suggestionRow {
	r := &suggestionRow{
		list:  list,
		index: index,
		bg:    canvas.NewRectangle(rowBackground),
		text:  canvas.NewText("", rowForeground),
	}
	r.text.Alignment = fyne.TextAlignCenter
	r.ExtendBaseWidget(r)
	return r
}

func (r *suggestionRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(r.bg, container.NewCenter(r.text)))
}

func (r *suggestionRow) MinSize() fyne.Size {
	return fyne.NewSize(r.text.MinSize().Width, rowHeight)
}

func (r *suggestionRow) setText(s string) {
	r.text.Text = s
	r.text.Refresh()
}

func (r *suggestionRow) setSelected(selected bool) {
	bg, fg := rowBackground, rowForeground
	if selected {
		bg, fg = selectedBackground, selectedForeground
	}
	r.bg.FillColor = bg
	r.text.Color = fg
	r.bg.Refresh()
	r.text.Refresh()
}

// Tapped selects the row and fills the entry with it.
func (r *suggestionRow) Tapped(*fyne.PointEvent) {
	if r.list.onTap != nil {
		r.list.onTap(r.index)
	}
}

func (r *suggestionRow) MouseIn(*desktop.MouseEvent) {
	if r.list.onHover != nil {
		r.list.onHover(r.index)
	}
}

func (r *suggestionRow) MouseMoved(*desktop.MouseEvent) {}

func (r *suggestionRow) MouseOut() {
	if r.list.onLeave != nil {
		r.list.onLeave()
	}
}
