package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jismah/serverless-registro/internal/application/usecases"
	"github.com/jismah/serverless-registro/internal/config"
	"github.com/jismah/serverless-registro/internal/infrastructure/remote"
	appLog "github.com/jismah/serverless-registro/internal/log"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

var (
	configPath string
	logLevel   string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "registro",
		Short:         "Front-desk client for lab reservations kept by the remote reservations service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $REGISTRO_CONFIG)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newCreateCmd())
	root.AddCommand(newCancelCmd())
	root.AddCommand(newServeCmd())

	return root
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "registro:", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return config.Config{}, err
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if err := appLog.SetLevel(level); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openSession builds one front-desk session and fills its cache.
func openSession(ctx context.Context) (*usecases.Session, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	sess := usecases.NewSession(remote.New(cfg.Endpoint, cfg.Timeout), cfg.Location)
	if _, err := sess.Cache.Revalidate(ctx); err != nil {
		return nil, cfg, fmt.Errorf("load reservations: %w", err)
	}
	return sess, cfg, nil
}
