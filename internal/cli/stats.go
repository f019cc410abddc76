package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [text]",
		Short: "Show character, word and sentence counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}

			stats, err := opts.newLocalAnalyzer(cmd).Statistics(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, stats)
			}
			fmt.Fprintf(out, "%d characters, %d words, %d sentences, %.2fs reading time\n",
				stats.CharacterCount, stats.WordCount, stats.SentenceCount, stats.ReadingTimeSeconds)
			return nil
		},
	}
}
