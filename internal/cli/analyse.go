package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAnalyseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "analyse [text]",
		Aliases: []string{"analyze"},
		Short:   "Run the full analysis",
		Long:    "Compute statistics, keywords and sentiment for the text given as arguments or on stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}

			a, cleanup, err := opts.newAnalyzer(cmd)
			if err != nil {
				return fmt.Errorf("setup: %w", err)
			}
			defer cleanup()

			result, err := a.Analyse(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("analyse: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, result)
			}

			s := result.Statistics
			fmt.Fprintf(out, "characters: %d\n", s.CharacterCount)
			fmt.Fprintf(out, "words:      %d\n", s.WordCount)
			fmt.Fprintf(out, "sentences:  %d\n", s.SentenceCount)
			fmt.Fprintf(out, "reading:    %.2fs\n", s.ReadingTimeSeconds)
			fmt.Fprintf(out, "sentiment:  %s (%d)\n", result.Sentiment.Label, result.Sentiment.Score)
			fmt.Fprintf(out, "keywords:   %s\n", strings.Join(result.Keywords, ", "))
			return nil
		},
	}
}
