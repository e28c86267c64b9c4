package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chenwei791129/pokehelper/internal/assets"
	"github.com/chenwei791129/pokehelper/internal/config"
	"github.com/chenwei791129/pokehelper/internal/gui"
	"github.com/chenwei791129/pokehelper/internal/pokedex"
	"github.com/chenwei791129/pokehelper/internal/showdown"
)

var (
	verbose    bool
	configPath string
	logger     *zap.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pokehelper",
	Short: "PokeShowdown Helper",
	Long: `PokeShowdown Helper looks up a Pokemon's typing, matchups and base stats.
Type a name with autocomplete, or follow a Pokemon Showdown battle and see
both active Pokemon as they switch in.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, _, err = config.LoadWithPriority(configPath, logger)
		if err != nil {
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() {
			_ = logger.Sync()
		}()

		candidates, err := assets.Load(cfg.AutoFill.CandidatesFile)
		if err != nil {
			return err
		}
		logger.Debug("Loaded candidates", zap.Int("count", len(candidates)))

		monitor := newMonitor()
		app, err := gui.NewApp(cfg, candidates, newPokedex(), monitor, logger)
		if err != nil {
			return err
		}
		app.Run()
		return nil
	},
}

func init() {
	// Disable Cobra's mousetrap feature on Windows
	// By default, Cobra shows a warning when launched from File Explorer instead of cmd.exe
	// See: https://github.com/spf13/cobra/issues/844
	cobra.MousetrapHelpText = ""
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.AddCommand(completeCmd, lookupCmd, followCmd, configCmd)
}

// newLogger builds a development logger when verbose, otherwise a terse console logger
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapConfig.Build()
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.DisableCaller = true
	zapConfig.DisableStacktrace = true
	zapConfig.Encoding = "console"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapConfig.Build()
}

func newPokedex() *pokedex.Client {
	return pokedex.NewClient(pokedex.Options{
		BaseURL:  cfg.Pokedex.BaseURL,
		Timeout:  cfg.Pokedex.Timeout.Duration,
		CacheTTL: cfg.Pokedex.CacheTTL.Duration,
		Logger:   logger.Named("pokedex"),
	})
}

func newMonitor() *showdown.Monitor {
	return showdown.NewMonitor(showdown.NewHTTPSource(cfg.Pokedex.Timeout.Duration), showdown.Options{
		PollInterval: cfg.Showdown.PollInterval.Duration,
		LoadDelay:    cfg.Showdown.LoadDelay.Duration,
		EventBuffer:  cfg.Showdown.EventBuffer,
		Logger:       logger.Named("showdown"),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
