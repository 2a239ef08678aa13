package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Execute runs the command line.
func Execute() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolio-dashboard",
		Short:         "Stock portfolio dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(notifyCmd())
	root.AddCommand(reportCmd())
	return root
}

func serveCmd() *cobra.Command {
	var (
		addr  string
		async bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and refresh quotes periodically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func(ctx context.Context, cfg Config, logger *zap.Logger) error {
				if addr != "" {
					cfg.HTTPAddr = addr
				}
				if async {
					return ExecuteAsync(ctx, cfg, logger)
				}
				return ExecuteSync(ctx, cfg, logger)
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (defaults to HTTP_ADDR)")
	cmd.Flags().BoolVar(&async, "async", false, "publish every snapshot to RabbitMQ")
	return cmd
}

func notifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Log portfolio movements from the published snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(ExecuteNotify)
		},
	}
}

// run loads the configuration and the logger, and cancels the context on
// SIGINT or SIGTERM.
func run(fn func(ctx context.Context, cfg Config, logger *zap.Logger) error) error {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalln("Failed to load config", err)
	}

	logger, err := InitLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalln("Failed to init logger", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fn(ctx, cfg, logger)
}
