package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsparse/internal/report"
)

// errNotTransaction is returned by parse --strict for non-transactional text.
var errNotTransaction = errors.New("not a transaction")

// parseOutput is what the parse command prints.
type parseOutput struct {
	Recognized  bool                `json:"recognized"`
	Transaction *report.Transaction `json:"transaction,omitempty"`
}

func newParseCommand(gf *globalFlags) *cobra.Command {
	var strict bool
	var cascade bool

	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Parse one message and print it as JSON",
		Long:  "Parse one message and print it as JSON. With no arguments the message is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(gf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("cascade-generic") {
				s.cfg.Parser.CascadeGeneric = cascade
			}

			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(data)
			}
			return runParse(cmd, s, strings.TrimSpace(text), strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the message is not a transaction")
	cmd.Flags().BoolVar(&cascade, "cascade-generic", false, "fall back to generic rules when an institution's rules miss")

	return cmd
}

func runParse(cmd *cobra.Command, s *settings, text string, strict bool) error {
	if text == "" {
		return errors.New("no message text given")
	}

	res, ok := s.parser().Parse(s.context(cmd.Context()), text)
	out := parseOutput{Recognized: ok}
	if ok {
		t := report.NewTransaction(res)
		out.Transaction = &t
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !ok && strict {
		return errNotTransaction
	}
	return nil
}
