package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsparse/internal/id"
	"github.com/cleared-dev/smsparse/internal/scanlog"
)

func newHistoryCommand(gf *globalFlags) *cobra.Command {
	var runPrefix string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past scans from the scan log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(gf)
			if err != nil {
				return err
			}
			return runHistory(cmd.OutOrStdout(), s.root, runPrefix)
		},
	}

	cmd.Flags().StringVar(&runPrefix, "run", "", "only show scans whose run ID starts with this prefix")

	return cmd
}

func runHistory(out io.Writer, root, runPrefix string) error {
	entries, err := scanlog.Read(root)
	if err != nil {
		return err
	}

	shown := 0
	for _, e := range entries {
		if !strings.HasPrefix(e.RunID, runPrefix) {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(out, "%-20s  %-8s  %-6s  %8s  %12s  %s\n", "TIME", "RUN", "FORMAT", "MESSAGES", "TRANSACTIONS", "FILE")
		}
		fmt.Fprintf(out, "%-20s  %-8s  %-6s  %8d  %12d  %s\n",
			e.Timestamp.UTC().Format(time.RFC3339), id.Short(e.RunID), e.Format, e.Messages, e.Transactions, e.File)
		shown++
	}

	if shown == 0 {
		fmt.Fprintln(out, "No scans recorded.")
	}
	return nil
}
