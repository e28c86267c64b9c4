package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chenwei791129/pokehelper/internal/assets"
	"github.com/chenwei791129/pokehelper/internal/autofill"
	"github.com/chenwei791129/pokehelper/internal/config"
	"github.com/chenwei791129/pokehelper/internal/pokedex"
	"github.com/chenwei791129/pokehelper/pkg/pokeshowdown"
)

var completeAll bool

var completeCmd = &cobra.Command{
	Use:   "complete <prefix>",
	Short: "Print the suggestions for a prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		candidates, err := assets.Load(cfg.AutoFill.CandidatesFile)
		if err != nil {
			return err
		}

		set := autofill.NewCandidateSet(candidates, cfg.AutoFill.Alphabetical)

		return printSuggestions(cmd.OutOrStdout(), set.Matches(args[0]), completeAll)
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Print a Pokemon's typing, matchups and base stats",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Pokedex.Timeout.Duration)
		defer cancel()

		entry, err := newPokedex().Lookup(ctx, name)
		if errors.Is(err, pokedex.ErrNotFound) {
			return fmt.Errorf("%s: %s", name, pokeshowdown.UnsupportedMessage)
		}
		if err != nil {
			return err
		}
		printEntry(cmd.OutOrStdout(), entry)
		return nil
	},
}

var followCmd = &cobra.Command{
	Use:   "follow <url>",
	Short: "Follow a battle and print every switch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() {
			_ = logger.Sync()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		monitor := newMonitor()
		monitor.SetURL(args[0])
		monitor.Start()
		defer monitor.Stop()

		logger.Info("Following battle", zap.String("url", args[0]))
		logger.Info("Press Enter to exit...")

		// Wait for user to press Enter
		go func() {
			_, _ = bufio.NewReader(cmd.InOrStdin()).ReadBytes('\n')
			stop()
		}()

		out := cmd.OutOrStdout()
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopped.")
				return nil
			case ev := <-monitor.Events():
				species, _ := pokedex.ParseOverride(ev.Species)
				fmt.Fprintf(out, "player %d: %s\n", ev.Slot, autofill.Display(species))
			}
		}
	},
}

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
	// The file may not exist yet, so only the logger is set up
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logger, err = newLogger(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		if err := config.Save(config.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	completeCmd.Flags().BoolVarP(&completeAll, "all", "a", false, "Print every match, not only the shown rows")
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

// printSuggestions writes matches the way the entry lists them
func printSuggestions(w io.Writer, rows []string, all bool) error {
	if !all {
		rows = rows[:min(len(rows), cfg.AutoFill.MaxShown)]
	}
	for _, s := range rows {
		if _, err := fmt.Fprintln(w, autofill.Display(s)); err != nil {
			return err
		}
	}
	return nil
}

func printEntry(w io.Writer, entry *pokedex.Entry) {
	species, _ := pokedex.ParseOverride(entry.Name)
	fmt.Fprintf(w, "%s\n", autofill.Display(species))
	fmt.Fprintf(w, "  Types:  %s\n", strings.Join(entry.Types, ", "))

	matchups := func(label string, types []string) {
		marked := make([]string, 0, len(types))
		for _, t := range types {
			if entry.Matchup.Quad(t) {
				t = fmt.Sprintf("%s (x%g)", t, entry.Matchup.Multiplier(t))
			}
			marked = append(marked, t)
		}
		fmt.Fprintf(w, "  %-7s %s\n", label+":", strings.Join(marked, ", "))
	}
	matchups("Weak", entry.Matchup.Weak())
	matchups("Resist", entry.Matchup.Resist())
	matchups("Immune", entry.Matchup.Immune())

	for i, name := range pokedex.StatNames {
		fmt.Fprintf(w, "  %-7s %3d\n", name, entry.Stats[i])
	}
}
