package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsparse/internal/api"
	"github.com/cleared-dev/smsparse/internal/buildinfo"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(gf *globalFlags) *cobra.Command {
	var addr string
	var cascade bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(gf)
			if err != nil {
				return err
			}
			if addr != "" {
				s.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("cascade-generic") {
				s.cfg.Parser.CascadeGeneric = cascade
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, s)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&cascade, "cascade-generic", false, "fall back to generic rules when an institution's rules miss")

	return cmd
}

func runServe(ctx context.Context, s *settings) error {
	app := api.NewServer(s.parser(), s.log, buildinfo.Version).App()

	errc := make(chan error, 1)
	go func() {
		errc <- app.Listen(s.cfg.Server.Addr)
	}()
	s.log.Info().Str("addr", s.cfg.Server.Addr).Bool("cascade_generic", s.cfg.Parser.CascadeGeneric).Msg("listening")

	select {
	case err := <-errc:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
