package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/wmannis/lexifer/internal/collation"
	"github.com/wmannis/lexifer/internal/config"
	"github.com/wmannis/lexifer/internal/store"
)

var configFile string

var warnColor = color.New(color.FgYellow)

func main() {
	rootCmd := generateCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.lexifer/lexifer.yaml)")
	rootCmd.PersistentFlags().String("db", config.DefaultDBPath(), "lexicon database path")
	rootCmd.PersistentFlags().CountP("verbose", "v", "log more detail (repeatable)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(lexiconCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var unknown *collation.UnknownLetterError
		if errors.As(err, &unknown) {
			fmt.Fprintf(os.Stderr, "Word with unknown letter: '%s'.\n", unknown.Word)
			fmt.Fprintln(os.Stderr, "A filter or assimilation might have caused this.")
		}
		os.Exit(1)
	}
}

// setup resolves configuration for cmd and builds the logger
func setup(cmd *cobra.Command) (*config.Config, logr.Logger, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, logr.Discard(), err
	}

	stdr.SetVerbosity(cfg.Verbose)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))
	return cfg, logger, nil
}

func getStore(cfg *config.Config) (*store.Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.DB)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(cfg.DB)
}

func warn(w io.Writer, format string, args ...interface{}) {
	warnColor.Fprintf(w, "warning: "+format+"\n", args...)
}
