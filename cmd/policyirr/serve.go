package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rpgo/policy-irr/internal/calculation"
	"github.com/rpgo/policy-irr/internal/config"
	"github.com/rpgo/policy-irr/internal/logging"
	"github.com/rpgo/policy-irr/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves POST /v1/irr, POST /v1/sweep, GET /healthz and GET /metrics.
Settings come from POLICYIRR_PORT, POLICYIRR_LOG_LEVEL and POLICYIRR_READ_TIMEOUT;
--port and --log-level override them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadServerConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetString("port")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		level, err := config.ParseLogLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := logging.New(level)

		engine := calculation.NewCalculationEngine()
		engine.SetLogger(calculation.NewSlogLogger(logger))
		srv := server.New(engine, config.NewInputParser(), server.NewMetrics(), logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.ListenAndServe(ctx, ":"+cfg.Port, cfg.ReadTimeout); err != nil {
			return err
		}
		logger.Info("server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
