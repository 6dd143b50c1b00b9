package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wmannis/lexifer/internal/config"
	"github.com/wmannis/lexifer/internal/domain"
	"github.com/wmannis/lexifer/internal/fetcher"
	"github.com/wmannis/lexifer/internal/phdef"
	"github.com/wmannis/lexifer/internal/prose"
	"github.com/wmannis/lexifer/internal/soundsys"
	"github.com/wmannis/lexifer/internal/textwrap"
)

func generateCmd() *cobra.Command {
	var (
		number     int
		unsorted   bool
		onePerLine bool
		format     string
		saveAs     string
	)

	cmd := &cobra.Command{
		Use:   "lexifer [file|url]",
		Short: "Generate words from a phonology definition",
		Long: `Generate pseudo-words from a phonology definition.

Without -n a paragraph of sample text is printed. With -n that many
distinct words are printed, sorted by the definition's alphabet.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			switch format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}

			seed := resolveSeed(cfg.Seed)
			sys, err := loadSystem(cmd, args[0], cfg, seed, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if !cmd.Flags().Changed("number") {
				if ignored := paragraphIgnored(cmd); len(ignored) > 0 {
					warn(cmd.ErrOrStderr(), "%s only apply with -n; ignoring", strings.Join(ignored, ", "))
				}
				text, err := prose.Paragraph(sys, cfg.Sentences, cfg.WrapWidth, sys.Rand())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}

			if number < 1 {
				return fmt.Errorf("-n must be at least 1, got %d", number)
			}

			words, err := sys.Generate(number, unsorted)
			if err != nil {
				return err
			}
			logger.V(1).Info("generated", "words", len(words), "stats", sys.Stats())

			list := domain.WordList{
				Source: args[0],
				Seed:   seed,
				Sorted: !unsorted,
				Words:  words,
			}
			if err := writeWords(out, list, format, onePerLine, cfg.WrapWidth); err != nil {
				return err
			}

			if saveAs == "" {
				return nil
			}
			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			lex, added, err := s.SaveWords(saveAs, args[0], words)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d new words to %s (%d total)\n", added, lex.Name, lex.WordCount)
			return nil
		},
	}

	cmd.Flags().IntVarP(&number, "number", "n", 0, "number of words to generate")
	cmd.Flags().BoolVarP(&unsorted, "unsorted", "u", false, "leave words in generation order")
	cmd.Flags().BoolVarP(&onePerLine, "one-per-line", "o", false, "print one word per line")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&saveAs, "save", "", "save generated words to the named lexicon")
	cmd.Flags().Int64("seed", 0, "random seed (0 picks one)")
	cmd.Flags().Int("max-attempts", soundsys.DefaultMaxAttempts, "unproductive draws before giving up")
	cmd.Flags().Int("sentences", prose.DefaultSentences, "sentences in paragraph mode")
	cmd.Flags().Int("wrap-width", textwrap.DefaultWidth, "column to wrap text output at")
	return cmd
}

// paragraphIgnored lists the word-list flags given without -n
func paragraphIgnored(cmd *cobra.Command) []string {
	var ignored []string
	for _, name := range []string{"unsorted", "one-per-line", "format", "save"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			ignored = append(ignored, "--"+name)
		}
	}
	return ignored
}

func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// loadSystem fetches and parses a definition into a new sound system
func loadSystem(cmd *cobra.Command, source string, cfg *config.Config, seed int64, logger logr.Logger) (*soundsys.System, error) {
	text, err := fetcher.Load(cmd.Context(), source)
	if err != nil {
		return nil, err
	}

	sys := soundsys.New(
		soundsys.WithRand(rand.New(rand.NewSource(seed))),
		soundsys.WithLogger(logger),
		soundsys.WithMaxAttempts(cfg.MaxAttempts),
	)
	def, err := phdef.Parse(strings.NewReader(text), sys, phdef.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	for _, w := range def.Warnings {
		warn(cmd.ErrOrStderr(), "%s", w)
	}
	logger.V(1).Info("loaded definition", "source", source, "seed", seed,
		"classes", len(sys.Classes()), "rules", len(sys.Rules()), "filters", sys.FilterCount())
	return sys, nil
}

func writeWords(w io.Writer, list domain.WordList, format string, onePerLine bool, width int) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(list)
	}

	if onePerLine {
		for _, word := range list.Words {
			fmt.Fprintln(w, word)
		}
		return nil
	}
	_, err := fmt.Fprintln(w, textwrap.Fill(strings.Join(list.Words, " "), width))
	return err
}
