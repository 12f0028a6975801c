package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/policy-irr/internal/calculation"
	"github.com/rpgo/policy-irr/internal/config"
	"github.com/rpgo/policy-irr/internal/domain"
	"github.com/rpgo/policy-irr/internal/output"
	money "github.com/rpgo/policy-irr/pkg/decimal"
)

// policyFlags are the eight scenario parameters as command-line flags.
type policyFlags struct {
	name            string
	premiumStart    int
	premiumEnd      int
	premium         string
	withdrawalStart int
	withdrawalEnd   int
	withdrawal      string
	deathAge        int
	deathBenefit    string
}

func (pf *policyFlags) register(cmd *cobra.Command) {
	d := config.DefaultParameters()
	f := cmd.Flags()
	f.StringVar(&pf.name, "name", "Policy", "Scenario name used in reports")
	f.IntVar(&pf.premiumStart, "premium-start-age", d.PremiumStartAge, "First age at which a premium is paid")
	f.IntVar(&pf.premiumEnd, "premium-end-age", d.PremiumEndAge, "Last age at which a premium is paid")
	f.StringVar(&pf.premium, "annual-premium", d.AnnualPremium.String(), "Premium paid each year")
	f.IntVar(&pf.withdrawalStart, "withdrawal-start-age", d.WithdrawalStartAge, "First age at which a withdrawal is taken")
	f.IntVar(&pf.withdrawalEnd, "withdrawal-end-age", d.WithdrawalEndAge, "Last age at which a withdrawal is taken")
	f.StringVar(&pf.withdrawal, "annual-withdrawal", d.AnnualWithdrawal.String(), "Withdrawal taken each year")
	f.IntVar(&pf.deathAge, "death-age", d.DeathAge, "Age at death")
	f.StringVar(&pf.deathBenefit, "death-benefit", d.NetDeathBenefit.String(), "Net death benefit paid at death")
}

func (pf *policyFlags) scenario() (domain.Scenario, error) {
	amounts := map[string]string{
		"annual-premium":    pf.premium,
		"annual-withdrawal": pf.withdrawal,
		"death-benefit":     pf.deathBenefit,
	}
	parsed := make(map[string]decimal.Decimal, len(amounts))
	for flag, raw := range amounts {
		v, err := money.NewMoneyFromString(raw)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("invalid --%s %q: %w", flag, raw, err)
		}
		parsed[flag] = v.Decimal
	}
	return domain.Scenario{
		Name: pf.name,
		Parameters: domain.ScenarioParameters{
			PremiumStartAge:    pf.premiumStart,
			PremiumEndAge:      pf.premiumEnd,
			AnnualPremium:      parsed["annual-premium"],
			WithdrawalStartAge: pf.withdrawalStart,
			WithdrawalEndAge:   pf.withdrawalEnd,
			AnnualWithdrawal:   parsed["annual-withdrawal"],
			DeathAge:           pf.deathAge,
			NetDeathBenefit:    parsed["death-benefit"],
		},
	}, nil
}

var calcFlags policyFlags

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Build the cash-flow timeline and solve the IRR",
	Long: `Evaluates every scenario in --config, or a single scenario described by flags,
and prints the report in the chosen format.`,
	Example: `  policyirr calculate
  policyirr calculate --death-age 70 --format console-lite
  policyirr calculate --config scenarios.yaml --format html --output report.html
  policyirr calculate --config scenarios.yaml --format all --output reports/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		configFile, _ := cmd.Flags().GetString("config")
		format, _ := cmd.Flags().GetString("format")
		outFile, _ := cmd.Flags().GetString("output")

		parser := config.NewInputParser()
		var cfg *domain.Configuration
		if configFile != "" {
			cfg, err = parser.LoadFromFile(configFile)
			if err != nil {
				return err
			}
		} else {
			sc, err := calcFlags.scenario()
			if err != nil {
				return err
			}
			cfg = &domain.Configuration{Scenarios: []domain.Scenario{sc}}
			if err := parser.ValidateConfiguration(cfg); err != nil {
				return fmt.Errorf("invalid parameters: %w", err)
			}
		}

		engine := calculation.NewCalculationEngine()
		engine.SetLogger(calculation.NewSlogLogger(logger))
		results, err := engine.RunScenarios(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		if output.NormalizeFormatName(format) == "all" {
			dir := outFile
			if dir == "" {
				dir = "."
			}
			files, err := output.GenerateReport(results, format, dir)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
			}
			return nil
		}

		data, err := output.Render(results, format)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outFile, data)
	},
}

// writeOutput writes data to filename, or to w when filename is empty.
func writeOutput(w io.Writer, filename string, data []byte) error {
	if filename == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	fmt.Fprintf(w, "Report written to %s\n", filename)
	return nil
}

func init() {
	rootCmd.AddCommand(calculateCmd)
	calculateCmd.Flags().StringP("config", "c", "", "YAML scenario file (overrides the parameter flags)")
	calculateCmd.Flags().StringP("format", "f", "console", "Output format: console, console-lite, csv, detailed-csv, html, json, or all")
	calculateCmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout (with --format all, a directory)")
	calcFlags.register(calculateCmd)
}
