package gui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/chenwei791129/pokehelper/internal/autofill"
	"github.com/chenwei791129/pokehelper/internal/pokedex"
)

const (
	spriteSize    = 96
	statBarWidth  = 100
	statBarHeight = 12
	// statMax fills the bar
	statMax = 150
)

var typeColors = map[string]color.NRGBA{
	"normal":   {R: 0xa8, G: 0xa8, B: 0x78, A: 0xff},
	"fighting": {R: 0xc0, G: 0x30, B: 0x28, A: 0xff},
	"flying":   {R: 0xa8, G: 0x90, B: 0xf0, A: 0xff},
	"poison":   {R: 0xa0, G: 0x40, B: 0xa0, A: 0xff},
	"ground":   {R: 0xe0, G: 0xc0, B: 0x68, A: 0xff},
	"rock":     {R: 0xb8, G: 0xa0, B: 0x38, A: 0xff},
	"bug":      {R: 0xa8, G: 0xb8, B: 0x20, A: 0xff},
	"ghost":    {R: 0x70, G: 0x58, B: 0x98, A: 0xff},
	"steel":    {R: 0xb8, G: 0xb8, B: 0xd0, A: 0xff},
	"fire":     {R: 0xf0, G: 0x80, B: 0x30, A: 0xff},
	"water":    {R: 0x68, G: 0x90, B: 0xf0, A: 0xff},
	"grass":    {R: 0x78, G: 0xc8, B: 0x50, A: 0xff},
	"electric": {R: 0xf8, G: 0xd0, B: 0x30, A: 0xff},
	"psychic":  {R: 0xf8, G: 0x58, B: 0x88, A: 0xff},
	"ice":      {R: 0x98, G: 0xd8, B: 0xd8, A: 0xff},
	"dragon":   {R: 0x70, G: 0x38, B: 0xf8, A: 0xff},
	"dark":     {R: 0x70, G: 0x58, B: 0x48, A: 0xff},
	"fairy":    {R: 0xee, G: 0x99, B: 0xac, A: 0xff},
}

var statColors = [6]color.NRGBA{
	{R: 0xff, A: 0xff},
	{R: 0xf0, G: 0x80, B: 0x30, A: 0xff},
	{R: 0xf8, G: 0xd0, B: 0x30, A: 0xff},
	{R: 0x68, G: 0x90, B: 0xf0, A: 0xff},
	{R: 0x78, G: 0xc8, B: 0x50, A: 0xff},
	{R: 0xf8, G: 0x58, B: 0x88, A: 0xff},
}

// PokemonDisplay shows one Pokemon: sprite, typing, matchups and base stats.
type PokemonDisplay struct {
	widget.BaseWidget

	current string

	nameLabel  *widget.Label
	sprite     *canvas.Image
	typeBox    *fyne.Container
	weakBox    *fyne.Container
	resistBox  *fyne.Container
	immuneBox  *fyne.Container
	statsBox   *fyne.Container
	statBars   [6]*canvas.Rectangle
	statValues [6]*canvas.Text

	content *fyne.Container
}

// NewPokemonDisplay creates an empty display.
func NewPokemonDisplay() *PokemonDisplay {
	d := &PokemonDisplay{
		nameLabel: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		sprite:    canvas.NewImageFromResource(theme.QuestionIcon()),
		typeBox:   container.NewHBox(),
		weakBox:   container.NewVBox(),
		resistBox: container.NewVBox(),
		immuneBox: container.NewVBox(),
	}
	d.sprite.FillMode = canvas.ImageFillContain
	d.sprite.SetMinSize(fyne.NewSize(spriteSize, spriteSize))

	statRows := make([]fyne.CanvasObject, 0, len(pokedex.StatNames))
	for i, name := range pokedex.StatNames {
		d.statBars[i] = canvas.NewRectangle(statColors[i])
		d.statBars[i].SetMinSize(fyne.NewSize(0, statBarHeight))
		d.statValues[i] = canvas.NewText("0", theme.Color(theme.ColorNameForeground))
		d.statValues[i].TextSize = theme.CaptionTextSize()

		label := canvas.NewText(name, theme.Color(theme.ColorNameForeground))
		label.TextSize = theme.CaptionTextSize()
		track := container.NewGridWrap(fyne.NewSize(statBarWidth, statBarHeight),
			container.NewHBox(d.statBars[i]))
		statRows = append(statRows, container.NewGridWithColumns(3, label, track, d.statValues[i]))
	}
	d.statsBox = container.NewVBox(statRows...)

	matchups := container.NewGridWithColumns(3,
		container.NewVBox(widget.NewLabel("Weak"), d.weakBox),
		container.NewVBox(widget.NewLabel("Resist"), d.resistBox),
		container.NewVBox(widget.NewLabel("Immune"), d.immuneBox),
	)
	left := container.NewVBox(d.nameLabel, container.NewCenter(d.sprite), container.NewCenter(d.typeBox), d.statsBox)
	d.content = container.NewHBox(left, widget.NewSeparator(), container.NewVBox(matchups, layout.NewSpacer()))

	d.ExtendBaseWidget(d)
	return d
}

func (d *PokemonDisplay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.content)
}

// Current returns the lookup name of the Pokemon shown, empty if none.
func (d *PokemonDisplay) Current() string {
	return d.current
}

// SetEntry shows entry.
func (d *PokemonDisplay) SetEntry(entry *pokedex.Entry) {
	d.current = entry.Name

	species, _ := pokedex.ParseOverride(entry.Name)
	d.nameLabel.SetText(autofill.Display(species))

	if len(entry.Sprite) > 0 {
		d.sprite.Resource = fyne.NewStaticResource(species+".png", entry.Sprite)
	} else {
		d.sprite.Resource = theme.QuestionIcon()
	}
	d.sprite.Refresh()

	d.typeBox.Objects = nil
	for _, t := range entry.Types {
		d.typeBox.Add(typeBadge(t, ""))
	}

	fillMatchups := func(box *fyne.Container, types []string) {
		box.Objects = nil
		for _, t := range types {
			mark := ""
			if entry.Matchup.Quad(t) {
				mark = quadMark(entry.Matchup.Multiplier(t))
			}
			box.Add(typeBadge(t, mark))
		}
		box.Refresh()
	}
	fillMatchups(d.weakBox, entry.Matchup.Weak())
	fillMatchups(d.resistBox, entry.Matchup.Resist())
	fillMatchups(d.immuneBox, entry.Matchup.Immune())

	for i, v := range entry.Stats {
		width := float32(min(v, statMax)) / statMax * statBarWidth
		d.statBars[i].SetMinSize(fyne.NewSize(width, statBarHeight))
		d.statBars[i].Refresh()
		d.statValues[i].Text = fmt.Sprintf("%d", v)
		d.statValues[i].Refresh()
	}

	d.typeBox.Refresh()
	d.Refresh()
}

// ShowStats shows or hides the base stat bars.
func (d *PokemonDisplay) ShowStats(show bool) {
	if show {
		d.statsBox.Show()
	} else {
		d.statsBox.Hide()
	}
}

// StatsVisible reports whether the stat bars are shown.
func (d *PokemonDisplay) StatsVisible() bool {
	return d.statsBox.Visible()
}

func quadMark(multiplier float64) string {
	if multiplier >= 4 {
		return "x4"
	}
	return "x¼"
}

// typeBadge draws a type name on its color, with an optional suffix.
func typeBadge(typeName, suffix string) fyne.CanvasObject {
	bg, ok := typeColors[typeName]
	if !ok {
		bg = color.NRGBA{R: 0x68, G: 0xa0, B: 0x90, A: 0xff}
	}
	label := strings.ToUpper(typeName)
	if suffix != "" {
		label += " " + suffix
	}
	text := canvas.NewText(label, color.White)
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.TextSize = theme.CaptionTextSize()
	text.Alignment = fyne.TextAlignCenter

	rect := canvas.NewRectangle(bg)
	rect.CornerRadius = 4
	rect.SetMinSize(fyne.NewSize(64, 18))
	return container.NewStack(rect, container.NewCenter(text))
}
