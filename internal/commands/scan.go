package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsparse/internal/id"
	"github.com/cleared-dev/smsparse/internal/inbox"
	"github.com/cleared-dev/smsparse/internal/logger"
	"github.com/cleared-dev/smsparse/internal/parser"
	"github.com/cleared-dev/smsparse/internal/report"
	"github.com/cleared-dev/smsparse/internal/scanlog"
)

type scanOptions struct {
	dir           string
	format        string
	file          string
	out           string
	markProcessed bool
	cascade       bool
}

func newScanCommand(gf *globalFlags) *cobra.Command {
	var opts scanOptions

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Parse every inbox file and write a CSV report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(gf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("cascade-generic") {
				s.cfg.Parser.CascadeGeneric = opts.cascade
			}
			if opts.dir == "" {
				opts.dir = s.resolve(s.cfg.Inbox.Dir)
			}
			if opts.format == "" {
				opts.format = s.cfg.Inbox.Format
			}
			return runScan(cmd, s, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "inbox directory (default from config)")
	cmd.Flags().StringVar(&opts.format, "format", "", "inbox file format: lines or csv (default from config)")
	cmd.Flags().StringVar(&opts.file, "file", "", "scan a single file instead of the inbox")
	cmd.Flags().StringVar(&opts.out, "out", "", "write the CSV report here instead of stdout")
	cmd.Flags().BoolVar(&opts.markProcessed, "mark-processed", false, "move scanned files to the processed directory")
	cmd.Flags().BoolVar(&opts.cascade, "cascade-generic", false, "fall back to generic rules when an institution's rules miss")

	return cmd
}

func runScan(cmd *cobra.Command, s *settings, opts scanOptions) error {
	rd, err := inbox.DefaultRegistry().Lookup(opts.format)
	if err != nil {
		return err
	}

	var files []inbox.FileInfo
	if opts.file != "" {
		info, err := os.Stat(opts.file)
		if err != nil {
			return fmt.Errorf("stat %s: %w", opts.file, err)
		}
		files = []inbox.FileInfo{{Name: filepath.Base(opts.file), Path: opts.file, Size: info.Size()}}
	} else {
		files, err = inbox.Scan(opts.dir)
		if err != nil {
			return err
		}
	}

	runID := id.NewRunID()
	log := s.log.With().Str("run_id", runID).Logger()
	ctx := logger.WithContext(cmd.Context(), log)
	p := s.parser()

	var results []parser.Result
	var entries []scanlog.Entry
	totalMsgs := 0
	for _, f := range files {
		msgs, err := inbox.ReadFile(rd, f.Path)
		if err != nil {
			return err
		}
		outcomes, err := p.ParseAll(ctx, inbox.Bodies(msgs))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", f.Name, err)
		}
		accepted := parser.Accepted(outcomes)
		results = append(results, accepted...)
		totalMsgs += len(msgs)

		fileLog := logger.WithFields(log, map[string]any{
			"file":         f.Name,
			"messages":     len(msgs),
			"transactions": len(accepted),
		})
		fileLog.Info().Msg("scanned")
		entries = append(entries, scanlog.Entry{
			Timestamp:    time.Now().UTC(),
			RunID:        runID,
			File:         f.Name,
			Format:       rd.Format(),
			Messages:     len(msgs),
			Transactions: len(accepted),
		})
	}

	if err := writeReport(cmd.OutOrStdout(), opts.out, results); err != nil {
		return err
	}

	if len(entries) > 0 {
		if err := scanlog.Append(s.root, entries); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to write scan log: %v\n", err)
		}
	}

	if opts.markProcessed {
		for _, f := range files {
			if err := inbox.MarkProcessed(filepath.Dir(f.Path), f.Name); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Scanned %d files: %d messages, %d transactions (run %s)\n", len(files), totalMsgs, len(results), id.Short(runID))
	return nil
}

func writeReport(stdout io.Writer, path string, results []parser.Result) error {
	if path == "" {
		return report.WriteResults(stdout, results)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := report.WriteResults(f, results); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}
	return nil
}
