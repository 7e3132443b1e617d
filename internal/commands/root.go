// Package commands contains the cobra command tree of the ccsa binary.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/config"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/logging"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/summary"
)

// Version is the application version.
const Version = "1.0.0"

// app carries state shared by every subcommand once the persistent pre-run
// has loaded configuration.
type app struct {
	configFile string
	envFile    string
	logLevel   string

	cfg *config.Config
	log logging.Logger
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "ccsa",
		Short: "Extract key fields from credit card statements",
		Long: `ccsa reads credit card statement PDFs, extracts balances, due dates,
card digits and billing cycle, and can summarize the result with Gemini.

Run "ccsa serve" for the HTTP API or "ccsa parse" for one-off files.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: search $HOME/.ccsa, .ccsa and .)")
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before configuration")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCommand(a),
		newParseCommand(a),
		newLinesCommand(a),
		newInsightsCommand(a),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.log = logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	return nil
}

// summarizer builds the insight generator from configuration. Without an API
// key the summarizer still works and reports the missing credentials.
func (a *app) summarizer(ctx context.Context) (*summary.Summarizer, func(), error) {
	cfg := summary.DefaultConfig()
	cfg.MaxRetries = a.cfg.AI.MaxRetries
	cfg.InitialBackoff = a.cfg.InitialBackoff()
	cfg.MaxBackoff = a.cfg.MaxBackoff()
	if t := a.cfg.AITimeout(); t > 0 {
		cfg.Timeout = t
	}

	if a.cfg.AI.APIKey == "" {
		a.log.Warn("GEMINI_API_KEY not set; insights are disabled")
		return summary.NewSummarizer(nil, cfg, a.log), func() {}, nil
	}

	gen, err := summary.NewGeminiGenerator(ctx, a.cfg.AI.APIKey, a.cfg.AI.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	closeGen := func() {
		if err := gen.Close(); err != nil {
			a.log.WithError(err).Warn("Failed to close Gemini client")
		}
	}
	return summary.NewSummarizer(gen, cfg, a.log), closeGen, nil
}
