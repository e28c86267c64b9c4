package gui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/chenwei791129/pokehelper/internal/autofill"
	"github.com/chenwei791129/pokehelper/internal/config"
	"github.com/chenwei791129/pokehelper/internal/pokedex"
	"github.com/chenwei791129/pokehelper/internal/showdown"
	"github.com/chenwei791129/pokehelper/pkg/pokeshowdown"
)

const (
	windowWidth  = 720
	windowHeight = 520
	maxLogLines  = 200
)

// Mode selects what the entry is used for.
type Mode int

const (
	// ManualMode looks up the Pokemon typed in the entry
	ManualMode Mode = iota
	// ShowdownMode follows the battle whose URL is typed in the entry
	ShowdownMode
)

// Pokedex looks up Pokemon by name.
type Pokedex interface {
	Lookup(ctx context.Context, name string) (*pokedex.Entry, error)
}

// MainWindow represents the main application window
type MainWindow struct {
	window fyne.Window
	app    fyne.App
	cfg    *config.Config
	logger *zap.Logger

	dex     Pokedex
	monitor *showdown.Monitor

	// UI Components - Input
	entry   *AutoFillEntry
	okBtn   *widget.Button
	loading *widget.ProgressBarInfinite
	overlay *fyne.Container

	// UI Components - Displays
	displays   [2]*PokemonDisplay
	displayBox *fyne.Container

	// UI Components - Log
	logText *widget.RichText
	logCard *widget.Card

	// State, only touched on the UI goroutine
	mode      Mode
	showStats bool
	theme     *variantTheme
	pending   int
	logLines  []string

	quit chan struct{}
}

// NewMainWindow creates and configures the main window. The monitor is
// owned by the caller; the window only drives its URL.
func NewMainWindow(app fyne.App, cfg *config.Config, candidates []string, dex Pokedex, monitor *showdown.Monitor, logger *zap.Logger) (*MainWindow, error) {
	w := &MainWindow{
		app:       app,
		cfg:       cfg,
		logger:    logger,
		dex:       dex,
		monitor:   monitor,
		showStats: cfg.UI.ShowStats,
		theme:     newVariantTheme(cfg.UI.DarkTheme),
		logLines:  make([]string, 0, maxLogLines),
		quit:      make(chan struct{}),
	}
	w.window = app.NewWindow(AppTitle)
	w.window.Resize(fyne.NewSize(windowWidth, windowHeight))
	w.window.CenterOnScreen()
	app.Settings().SetTheme(w.theme)

	// Handle window close
	w.window.SetCloseIntercept(func() {
		w.shutdown()
		w.window.Close()
	})

	if err := w.createUI(candidates); err != nil {
		return nil, err
	}
	w.window.SetMainMenu(w.createMenu())
	return w, nil
}

// createUI builds the user interface
func (w *MainWindow) createUI(candidates []string) error {
	w.overlay = container.NewWithoutLayout()

	opts := autofill.DefaultOptions()
	opts.Candidates = candidates
	opts.MaxShown = w.cfg.AutoFill.MaxShown
	opts.KeepOnTypo = w.cfg.AutoFill.KeepOnTypo
	opts.Alphabetical = w.cfg.AutoFill.Alphabetical
	opts.AlwaysCompleteOnConfirm = w.cfg.AutoFill.AlwaysComplete
	opts.OnComplete = w.onSubmit
	opts.OnFocusLost = func() { w.window.Canvas().Unfocus() }

	entry, err := NewAutoFillEntry(opts, w.overlay, w.cfg.UI.EntryWidth)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	w.entry = entry
	w.entry.SetPlaceHolder("Pokemon name")

	w.okBtn = widget.NewButton("OK", w.onSubmit)
	w.okBtn.Importance = widget.HighImportance

	w.loading = widget.NewProgressBarInfinite()
	w.loading.Stop()
	w.loading.Hide()

	topBar := container.NewHBox(
		layout.NewSpacer(),
		w.entry,
		w.okBtn,
		layout.NewSpacer(),
	)

	w.displays[0] = NewPokemonDisplay()
	w.displays[0].ShowStats(w.showStats)
	w.displayBox = container.NewVBox(w.displays[0])

	// Log section with scroll
	w.logText = widget.NewRichText()
	w.logText.Wrapping = fyne.TextWrapWord
	logScroll := container.NewScroll(w.logText)
	logScroll.SetMinSize(fyne.NewSize(600, 80))
	w.logCard = widget.NewCard("Battle Log", "", logScroll)
	w.logCard.Hide()

	content := container.NewVBox(
		topBar,
		w.loading,
		widget.NewSeparator(),
		w.displayBox,
		layout.NewSpacer(),
		w.logCard,
	)

	padded := container.NewPadded(content)
	w.window.SetContent(container.NewStack(padded, w.overlay))
	w.window.Canvas().Focus(w.entry)
	return nil
}

// createMenu builds the Options menu
func (w *MainWindow) createMenu() *fyne.MainMenu {
	return fyne.NewMainMenu(
		fyne.NewMenu("Options",
			fyne.NewMenuItem("Manual Lookup Mode", func() { w.SetMode(ManualMode) }),
			fyne.NewMenuItem("Pokemon Showdown Mode", func() { w.SetMode(ShowdownMode) }),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Toggle Stats", w.ToggleStats),
			fyne.NewMenuItem("Toggle Theme", w.ToggleTheme),
		),
	)
}

// Show displays the window
func (w *MainWindow) Show() {
	w.window.Show()
}

// StartEventLoop forwards monitor events to the UI goroutine until the
// window closes
func (w *MainWindow) StartEventLoop() {
	if w.monitor == nil {
		return
	}
	go func() {
		for {
			select {
			case <-w.quit:
				return
			case ev := <-w.monitor.Events():
				fyne.Do(func() {
					w.handleEvent(ev)
				})
			}
		}
	}()
}

// handleEvent shows a switched in Pokemon, if still following a battle
func (w *MainWindow) handleEvent(ev showdown.Event) {
	if w.mode != ShowdownMode {
		return
	}
	side := "You"
	if ev.Slot == 2 {
		side = "Opponent"
	}
	species, _ := pokedex.ParseOverride(ev.Species)
	w.appendLog(fmt.Sprintf("%s sent out %s", side, autofill.Display(species)))
	w.lookup(ev.Slot-1, ev.Species)
}

// Mode returns the current mode
func (w *MainWindow) Mode() Mode {
	return w.mode
}

// SetMode switches between manual lookups and following a battle
func (w *MainWindow) SetMode(mode Mode) {
	if mode == w.mode {
		return
	}
	w.mode = mode
	w.entry.Clear()

	switch mode {
	case ShowdownMode:
		w.entry.EnableSuggestions(false)
		w.entry.SetPlaceHolder("Battle URL")
		if w.displays[1] == nil {
			w.displays[1] = NewPokemonDisplay()
		}
		w.displays[1].ShowStats(w.showStats)
		w.displayBox.Objects = []fyne.CanvasObject{w.displays[0], widget.NewSeparator(), w.displays[1]}
		w.logCard.Show()
		w.appendLog("Paste a battle URL and press OK")
	case ManualMode:
		if w.monitor != nil {
			w.monitor.SetURL("")
		}
		w.entry.EnableSuggestions(true)
		w.entry.SetPlaceHolder("Pokemon name")
		w.displayBox.Objects = []fyne.CanvasObject{w.displays[0]}
		w.logCard.Hide()
	}
	w.displayBox.Refresh()
	w.logger.Debug("Mode changed", zap.Int("mode", int(mode)))
}

// ToggleStats shows or hides the stat bars on every display
func (w *MainWindow) ToggleStats() {
	w.showStats = !w.showStats
	for _, d := range w.displays {
		if d != nil {
			d.ShowStats(w.showStats)
		}
	}
}

// ToggleTheme switches between the light and dark theme
func (w *MainWindow) ToggleTheme() {
	w.theme = newVariantTheme(!w.theme.isDark())
	w.app.Settings().SetTheme(w.theme)
}

// onSubmit handles Enter in the entry and the OK button
func (w *MainWindow) onSubmit() {
	text := strings.TrimSpace(w.entry.Value())
	if text == "" {
		return
	}

	switch w.mode {
	case ShowdownMode:
		if w.monitor == nil {
			return
		}
		w.monitor.SetURL(text)
		w.appendLog("Following " + text)
	default:
		w.lookup(0, text)
	}
}

// lookup fetches name in the background and shows it in display slot
func (w *MainWindow) lookup(slot int, name string) {
	if slot < 0 || slot >= len(w.displays) || w.displays[slot] == nil {
		return
	}
	display := w.displays[slot]
	w.setLoading(1)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.cfg.Pokedex.Timeout.Duration)
		defer cancel()
		entry, err := w.dex.Lookup(ctx, name)

		fyne.Do(func() {
			w.setLoading(-1)
			switch {
			case errors.Is(err, pokedex.ErrNotFound):
				w.logger.Info("Unsupported pokemon", zap.String("name", name))
				dialog.ShowInformation("Error", pokeshowdown.UnsupportedMessage, w.window)
			case err != nil:
				w.logger.Warn("Lookup failed", zap.String("name", name), zap.Error(err))
				dialog.ShowError(err, w.window)
			default:
				display.SetEntry(entry)
			}
		})
	}()
}

// setLoading tracks lookups in flight and shows the progress bar while any run
func (w *MainWindow) setLoading(delta int) {
	w.pending = max(0, w.pending+delta)
	if w.pending > 0 {
		w.loading.Show()
		w.loading.Start()
	} else {
		w.loading.Stop()
		w.loading.Hide()
	}
}

// appendLog adds a timestamped message to the battle log
func (w *MainWindow) appendLog(message string) {
	timestamp := time.Now().Format("15:04:05")
	logLine := fmt.Sprintf("[%s] %s", timestamp, message)

	w.logLines = append(w.logLines, logLine)
	if len(w.logLines) > maxLogLines {
		w.trimLog()
	}

	w.logText.Segments = []widget.RichTextSegment{
		&widget.TextSegment{
			Text: strings.Join(w.logLines, "\n"),
		},
	}
	w.logText.Refresh()
}

// trimLog removes older log entries to keep the log size manageable
func (w *MainWindow) trimLog() {
	keepLines := maxLogLines / 2
	if len(w.logLines) > keepLines {
		w.logLines = w.logLines[len(w.logLines)-keepLines:]
	}
}

// shutdown stops forwarding events; safe to call more than once
func (w *MainWindow) shutdown() {
	select {
	case <-w.quit:
	default:
		close(w.quit)
	}
}
