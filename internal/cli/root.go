// Package cli implements the textsense CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zombar/textsense/internal/analyzer"
	"github.com/zombar/textsense/internal/config"
	"github.com/zombar/textsense/internal/sentiment"
	"github.com/zombar/textsense/pkg/logging"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// options holds the persistent flags shared by every command
type options struct {
	configPath string
	provider   string
	format     string
	verbose    bool
}

// NewRootCmd builds the top-level command with all subcommands attached
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "textsense",
		Short:         "Text statistics, keywords and sentiment",
		Long:          "Analyse short texts: character, word and sentence counts, reading time, ranked keywords and a five-level sentiment label.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default: $CONFIG_PATH)")
	root.PersistentFlags().StringVarP(&opts.provider, "provider", "p", "", "Sentiment provider: lexicon or ollama (overrides config)")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json or text")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newAnalyseCmd(opts),
		newKeywordsCmd(opts),
		newStatsCmd(opts),
		newStopWordsCmd(opts),
	)
	return root
}

// RootCmd is the top-level command
var RootCmd = NewRootCmd()

// readText joins args, or reads stdin when there are none
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func (o *options) validateFormat() error {
	if o.format != formatJSON && o.format != formatText {
		return fmt.Errorf("unknown format %q, want json or text", o.format)
	}
	return nil
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return logging.New(level, formatText, cmd.ErrOrStderr())
}

func (o *options) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.provider != "" {
		cfg.Sentiment.Provider = o.provider
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newAnalyzer builds an analyzer whose classifier is initialized. The
// returned cleanup shuts the classifier down.
func (o *options) newAnalyzer(cmd *cobra.Command) (*analyzer.Analyzer, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := o.logger(cmd)

	classifier, err := sentiment.FromConfig(cfg.Sentiment, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := classifier.Initialize(cmd.Context()); err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := classifier.Shutdown(cmd.Context()); err != nil {
			logger.Warn("classifier shutdown failed", "error", err)
		}
	}

	a := analyzer.New(classifier,
		analyzer.WithMaxKeywords(cfg.Keywords.MaxKeywords),
		analyzer.WithLogger(logger),
	)
	return a, cleanup, nil
}

// newLocalAnalyzer builds an analyzer for commands that never classify
// sentiment
func (o *options) newLocalAnalyzer(cmd *cobra.Command) *analyzer.Analyzer {
	return analyzer.New(nil, analyzer.WithLogger(o.logger(cmd)))
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
