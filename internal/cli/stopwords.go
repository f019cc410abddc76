package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zombar/textsense/internal/analyzer"
)

func newStopWordsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stopwords",
		Short: "List the built-in stop words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}

			words := analyzer.BaseStopWords().Words()
			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, words)
			}
			for _, w := range words {
				fmt.Fprintln(out, w)
			}
			return nil
		},
	}
}
