package main

import (
	"github.com/spf13/cobra"

	"github.com/wmannis/lexifer/internal/api"
	"github.com/wmannis/lexifer/internal/soundsys"
	"github.com/wmannis/lexifer/internal/textwrap"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serve [file|url]",
		Short:        "Serve generation and saved lexicons over HTTP",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			sys, err := loadSystem(cmd, args[0], cfg, resolveSeed(cfg.Seed), logger)
			if err != nil {
				return err
			}

			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			// Note: don't defer s.Close() as server runs indefinitely

			server := api.New(sys, s, args[0], cfg.Addr, cfg.WrapWidth, logger)
			return server.Run()
		},
	}

	cmd.Flags().StringP("addr", "a", ":8080", "server address")
	cmd.Flags().Int64("seed", 0, "random seed (0 picks one)")
	cmd.Flags().Int("max-attempts", soundsys.DefaultMaxAttempts, "unproductive draws before giving up")
	cmd.Flags().Int("wrap-width", textwrap.DefaultWidth, "column to wrap paragraphs at")
	return cmd
}
