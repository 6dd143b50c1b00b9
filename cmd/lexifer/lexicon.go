package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wmannis/lexifer/internal/store"
	"github.com/wmannis/lexifer/internal/textwrap"
)

func lexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Browse saved lexicons",
	}

	cmd.AddCommand(lexiconListCmd())
	cmd.AddCommand(lexiconShowCmd())
	cmd.AddCommand(lexiconSearchCmd())
	cmd.AddCommand(lexiconDeleteCmd())
	return cmd
}

// withStore runs fn against the configured lexicon store
func withStore(cmd *cobra.Command, fn func(s *store.Store) error) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	s, err := getStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func lexiconListCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List saved lexicons",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				lexicons, err := s.ListLexicons()
				if err != nil {
					return err
				}

				if len(lexicons) == 0 {
					fmt.Println("No lexicons yet. Use 'lexifer -n N --save NAME' to create one.")
					return nil
				}

				for _, l := range lexicons {
					fmt.Printf("%-20s %6d words  %s  %s\n", l.Name, l.WordCount,
						l.CreatedAt.Format("2006-01-02"), truncate(l.Source, 40))
				}
				return nil
			})
		},
	}
}

func lexiconShowCmd() *cobra.Command {
	var onePerLine bool

	cmd := &cobra.Command{
		Use:          "show [name]",
		Short:        "Show the words of a lexicon",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				lex, err := s.GetLexicon(args[0])
				if err != nil {
					return fmt.Errorf("lexicon %s: %w", args[0], err)
				}

				fmt.Printf("Name:    %s\n", lex.Name)
				fmt.Printf("Source:  %s\n", lex.Source)
				fmt.Printf("Created: %s\n", lex.CreatedAt.Format("2006-01-02 15:04:05"))
				fmt.Printf("Words:   %d\n\n", lex.WordCount)

				texts := make([]string, len(lex.Words))
				for i, w := range lex.Words {
					texts[i] = w.Text
				}
				if onePerLine {
					fmt.Println(strings.Join(texts, "\n"))
				} else {
					fmt.Println(textwrap.Fill(strings.Join(texts, " "), textwrap.DefaultWidth))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&onePerLine, "one-per-line", "o", false, "print one word per line")
	return cmd
}

func lexiconSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "search [query]",
		Short:        "Find saved words containing query",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				words, err := s.SearchWords(args[0])
				if err != nil {
					return err
				}

				if len(words) == 0 {
					fmt.Println("No matching words found.")
					return nil
				}

				for _, w := range words {
					fmt.Printf("%-20s %s\n", w.Text, w.Lexicon)
				}
				return nil
			})
		},
	}
}

func lexiconDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "delete [name]",
		Short:        "Delete a lexicon and its words",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *store.Store) error {
				if err := s.DeleteLexicon(args[0]); err != nil {
					return fmt.Errorf("lexicon %s: %w", args[0], err)
				}
				fmt.Printf("Deleted lexicon %s\n", args[0])
				return nil
			})
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-(max-3):]
}
