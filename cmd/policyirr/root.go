package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/policy-irr/internal/config"
	"github.com/rpgo/policy-irr/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "policyirr",
	Short: "Cash-flow timeline and IRR calculator for permanent life insurance policies",
	Long: `policyirr turns a policy's premium schedule, withdrawal schedule and death benefit
into a yearly net cash-flow timeline and solves for its internal rate of return.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error (env POLICYIRR_LOG_LEVEL)")
}

// newLogger builds the stderr logger from --log-level, falling back to POLICYIRR_LOG_LEVEL.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	if !cmd.Flags().Changed("log-level") {
		if env := os.Getenv("POLICYIRR_LOG_LEVEL"); env != "" {
			name = env
		}
	}
	level, err := config.ParseLogLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}
