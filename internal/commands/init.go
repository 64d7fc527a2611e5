package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsparse/internal/config"
	"github.com/cleared-dev/smsparse/internal/inbox"
)

func newInitCommand() *cobra.Command {
	var force bool
	var cascade bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new smsparse project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, force, cascade)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.Flags().BoolVar(&cascade, "cascade-generic", false, "fall back to generic rules when an institution's rules miss")

	return cmd
}

func runInit(out io.Writer, dir string, force, cascade bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Parser.CascadeGeneric = cascade

	// Create directory structure.
	dirs := []string{
		"logs",
		cfg.Inbox.Dir,
		filepath.Join(cfg.Inbox.Dir, inbox.ProcessedDir),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write smsparse.yaml.
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write .env.example.
	env := fmt.Sprintf("# Copy to .env to override %s.\n# %s=debug\n# %s=json\n# %s=127.0.0.1:8080\n# %s=false\n",
		config.FileName, config.EnvLogLevel, config.EnvLogFormat, config.EnvServerAddr, config.EnvCascadeGeneric)
	if err := os.WriteFile(filepath.Join(dir, ".env.example"), []byte(env), 0o644); err != nil {
		return fmt.Errorf("writing .env.example: %w", err)
	}

	// Write .gitignore.
	gitignore := ".env\n" + cfg.Inbox.Dir + "/\nlogs/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(out, "Initialized smsparse project at %s\n", dir)
	return nil
}
