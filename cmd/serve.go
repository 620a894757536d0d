package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jismah/serverless-registro/internal/application/usecases"
	"github.com/jismah/serverless-registro/internal/config"
	"github.com/jismah/serverless-registro/internal/infrastructure/remote"
	"github.com/jismah/serverless-registro/internal/interfaces/web"
	appLog "github.com/jismah/serverless-registro/internal/log"
	"github.com/jismah/serverless-registro/internal/scheduler"
)

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON front-desk gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.ListenAddr = listen
			}

			ctx := cmd.Context()
			sess := usecases.NewSession(remote.New(cfg.Endpoint, cfg.Timeout), cfg.Location)
			if _, err := sess.Cache.Revalidate(ctx); err != nil {
				// keep serving; the next revalidation may succeed
				appLog.Error("initial revalidate failed", err, "endpoint", cfg.Endpoint)
			}
			return serve(ctx, cfg, sess)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}

// serve runs the gateway and, when configured, the refresh scheduler. It
// returns once both have stopped.
func serve(ctx context.Context, cfg config.Config, sess *usecases.Session) error {
	g, ctx := errgroup.WithContext(ctx)
	if cfg.RefreshCron != "" {
		s := &scheduler.Scheduler{
			Spec:    cfg.RefreshCron,
			Timeout: cfg.Timeout,
			Cache: scheduler.RevalidatorFunc(func(ctx context.Context) error {
				_, err := sess.Cache.Revalidate(ctx)
				return err
			}),
		}
		g.Go(func() error {
			if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		return web.Start(ctx, cfg.ListenAddr, web.New(sess).Routes())
	})
	return g.Wait()
}
