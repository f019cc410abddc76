package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zombar/textsense/internal/analyzer"
)

func newKeywordsCmd(opts *options) *cobra.Command {
	var (
		maxKeywords   int
		stopWords     []string
		withFrequency bool
	)

	cmd := &cobra.Command{
		Use:   "keywords [text]",
		Short: "Extract ranked keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}

			ranked, err := opts.newLocalAnalyzer(cmd).Keywords(cmd.Context(), text, maxKeywords, stopWords)
			if err != nil {
				return fmt.Errorf("keywords: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				if withFrequency {
					return writeJSON(out, ranked)
				}
				words := make([]string, len(ranked))
				for i, wf := range ranked {
					words[i] = wf.Word
				}
				return writeJSON(out, words)
			}

			for _, wf := range ranked {
				if withFrequency {
					fmt.Fprintf(out, "%s\t%d\n", wf.Word, wf.Count)
				} else {
					fmt.Fprintln(out, wf.Word)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxKeywords, "max", "m", analyzer.DefaultMaxKeywords, "Max keywords")
	cmd.Flags().StringSliceVarP(&stopWords, "stop", "s", nil, "Extra stop words (comma separated or repeated)")
	cmd.Flags().BoolVar(&withFrequency, "freq", false, "Include occurrence counts")
	return cmd
}
