// Package gui provides the graphical user interface for PokeShowdown Helper.
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/chenwei791129/pokehelper/internal/config"
	"github.com/chenwei791129/pokehelper/internal/showdown"
)

const (
	// AppID is the unique identifier for the application
	AppID = "com.github.chenwei791129.pokehelper"
	// AppTitle is the window title
	AppTitle = "PokeShowdown Helper"
)

// App wraps the Fyne application and owns the battle monitor
type App struct {
	fyneApp fyne.App
	window  *MainWindow
	monitor *showdown.Monitor
	logger  *zap.Logger
}

// NewApp creates a new GUI application
func NewApp(cfg *config.Config, candidates []string, dex Pokedex, monitor *showdown.Monitor, logger *zap.Logger) (*App, error) {
	a := app.NewWithID(AppID)
	w, err := NewMainWindow(a, cfg, candidates, dex, monitor, logger)
	if err != nil {
		return nil, err
	}
	return &App{
		fyneApp: a,
		window:  w,
		monitor: monitor,
		logger:  logger,
	}, nil
}

// Run starts the monitor and blocks until the window is closed
func (a *App) Run() {
	if a.monitor != nil {
		a.monitor.Start()
		defer a.monitor.Stop()
	}
	a.window.StartEventLoop()
	a.window.Show()
	a.logger.Info("GUI started")
	a.fyneApp.Run()
	a.window.shutdown()
	a.logger.Info("Stopped.")
}

// Quit closes the application
func (a *App) Quit() {
	a.fyneApp.Quit()
}
