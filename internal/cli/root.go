// Package cli implements the medrec command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medrec/internal/config"
	"medrec/internal/logging"
	"medrec/internal/recommend"
	"medrec/internal/scorer"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// app carries the state initialized before any subcommand runs.
type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

// NewRootCommand creates the medrec command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "medrec",
		Short: "Symptom-based medicine recommender",
		Long: "medrec maps a free-text symptom description to a suggested over-the-counter\n" +
			"medicine with a confidence score. For educational purposes only.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (YAML)")

	cmd.AddCommand(
		newServeCmd(a),
		newScorerCmd(a),
		newPredictCmd(a),
		newRulesCmd(a),
		newTUICmd(a),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// init loads .env, the configuration and the logger.
func (a *app) init() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.log = log.With(zap.String("service", cfg.ServiceName))
	return nil
}

// newPredictor returns the remote scoring client when AI_API_URL is set and
// the in-process engine otherwise.
func (a *app) newPredictor(log *zap.Logger) (recommend.Predictor, error) {
	if a.cfg.IsRemote() {
		return scorer.NewClient(a.cfg.ScorerURL, a.cfg.ScorerTimeout, log), nil
	}

	engine, err := config.NewEngine(a.cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	return engine, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Printing the version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "medrec %s\n", Version)
		},
	}
}
