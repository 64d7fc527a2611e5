package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsparse/internal/buildinfo"
	"github.com/cleared-dev/smsparse/internal/config"
	"github.com/cleared-dev/smsparse/internal/logger"
	"github.com/cleared-dev/smsparse/internal/parser"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	envFile    string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var gf globalFlags

	rootCmd := &cobra.Command{
		Use:     "smsparse",
		Short:   "Extract transactions from bank and UPI SMS notifications",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&gf.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&gf.envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().StringVar(&gf.logLevel, "log-level", "", "log level (overrides config)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newParseCommand(&gf))
	rootCmd.AddCommand(newScanCommand(&gf))
	rootCmd.AddCommand(newServeCommand(&gf))
	rootCmd.AddCommand(newHistoryCommand(&gf))

	return rootCmd
}

// settings is the resolved runtime configuration of one command invocation.
type settings struct {
	cfg  *config.Config
	root string // directory holding the config file
	log  zerolog.Logger
}

func loadSettings(gf *globalFlags) (*settings, error) {
	if err := config.LoadEnv(gf.envFile); err != nil {
		return nil, err
	}

	path, err := filepath.Abs(gf.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if gf.logLevel != "" {
		cfg.Log.Level = gf.logLevel
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, root: filepath.Dir(path), log: log}, nil
}

func (s *settings) parser() *parser.Parser {
	return parser.New(parser.Options{
		CascadeGeneric: s.cfg.Parser.CascadeGeneric,
		Workers:        s.cfg.Parser.Workers,
	})
}

func (s *settings) context(ctx context.Context) context.Context {
	return logger.WithContext(ctx, s.log)
}

// resolve makes p absolute relative to the config directory.
func (s *settings) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.root, p)
}
