package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"tokencost/config"
	"tokencost/internal/logging"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	cfgFile  string
	rootDir  string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the tokencost command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "tokencost",
		Short: "Token Cost Calculator - Estimate the token count and cost of text",
		Long: `tokencost lowercases text, optionally strips punctuation, splits it on
whitespace and drops common stop words. The remaining tokens are counted and
priced at a per-token rate.

Example usage:
  tokencost estimate -p 0.02 --text "Hello, World!"   # Estimate inline text
  tokencost estimate -p 0.02 notes.txt                # Estimate a text file
  cat notes.txt | tokencost estimate -p 0.02          # Estimate stdin
  tokencost scan -p 0.02 ./docs                       # Estimate every .txt file`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./tokencost.yaml)")
	rootCmd.PersistentFlags().StringVarP(&a.rootDir, "dir", "d", "", "working directory (default is current directory)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error, off")

	rootCmd.AddCommand(
		newEstimateCmd(a),
		newScanCmd(a),
		newStopwordsCmd(a),
		newConfigCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error

	if a.rootDir == "" {
		a.rootDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	// A missing .env is not an error; variables already set win.
	if err := godotenv.Load(filepath.Join(a.rootDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromDir(a.rootDir)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := a.cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("failed to apply environment: %w", err)
	}
	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
	}

	a.logger, err = logging.New(a.cfg.Logging.Level, a.cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger.Debug("configuration loaded",
		zap.String("dir", a.rootDir),
		zap.Float64("price", a.cfg.Estimate.Price),
		zap.Bool("include_special_chars", a.cfg.Estimate.IncludeSpecialChars),
	)

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
