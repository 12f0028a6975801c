package main

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/policy-irr/internal/calculation"
	"github.com/rpgo/policy-irr/internal/config"
	"github.com/rpgo/policy-irr/internal/domain"
	"github.com/rpgo/policy-irr/internal/output"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Re-evaluate a scenario across a range of one parameter",
	Long: `Without --parameter, runs every sweep listed in --config.
With --parameter, sweeps that parameter for --scenario (default: the first scenario,
or the default policy when no config is given).`,
	Example: `  policyirr sweep --parameter death_age --from 70 --to 100 --step 5
  policyirr sweep --config scenarios.yaml --format csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		configFile, _ := cmd.Flags().GetString("config")
		scenarioName, _ := cmd.Flags().GetString("scenario")
		parameter, _ := cmd.Flags().GetString("parameter")
		format, _ := cmd.Flags().GetString("format")
		outFile, _ := cmd.Flags().GetString("output")

		parser := config.NewInputParser()
		cfg := &domain.Configuration{Scenarios: []domain.Scenario{{Name: "Default policy", Parameters: config.DefaultParameters()}}}
		if configFile != "" {
			if cfg, err = parser.LoadFromFile(configFile); err != nil {
				return err
			}
		}

		specs := cfg.Sweeps
		if parameter != "" {
			spec, err := sweepFromFlags(cmd, cfg, scenarioName, parameter)
			if err != nil {
				return err
			}
			specs = []domain.SweepSpec{spec}
		}
		if len(specs) == 0 {
			return fmt.Errorf("nothing to sweep: pass --parameter or list sweeps in the config file (parameters: %v)", calculation.SweepParameters())
		}

		engine := calculation.NewCalculationEngine()
		engine.SetLogger(calculation.NewSlogLogger(logger))

		var buf bytes.Buffer
		for i, spec := range specs {
			sc := cfg.FindScenario(spec.Scenario)
			if sc == nil {
				return fmt.Errorf("%w: %q", config.ErrScenarioNotFound, spec.Scenario)
			}
			if err := parser.ValidateSweep(&sc.Parameters, spec); err != nil {
				return fmt.Errorf("sweep %s: %w", spec.Parameter, err)
			}
			res, err := engine.RunSweep(cmd.Context(), sc.Parameters, spec)
			if err != nil {
				return err
			}
			data, err := output.FormatSweep(res, format)
			if err != nil {
				return err
			}
			if i > 0 {
				buf.WriteString("\n")
			}
			buf.Write(data)
		}
		return writeOutput(cmd.OutOrStdout(), outFile, buf.Bytes())
	},
}

// sweepFromFlags builds a SweepSpec from --from/--to/--step for the named (or first) scenario.
func sweepFromFlags(cmd *cobra.Command, cfg *domain.Configuration, scenarioName, parameter string) (domain.SweepSpec, error) {
	if scenarioName == "" {
		scenarioName = cfg.Scenarios[0].Name
	}
	spec := domain.SweepSpec{Scenario: scenarioName, Parameter: parameter}
	for _, b := range []struct {
		flag string
		dst  *decimal.Decimal
	}{
		{"from", &spec.From},
		{"to", &spec.To},
		{"step", &spec.Step},
	} {
		raw, _ := cmd.Flags().GetString(b.flag)
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.SweepSpec{}, fmt.Errorf("invalid --%s %q: %w", b.flag, raw, err)
		}
		*b.dst = v
	}
	return spec, nil
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().StringP("config", "c", "", "YAML scenario file")
	sweepCmd.Flags().String("scenario", "", "Scenario to sweep (default: first scenario)")
	sweepCmd.Flags().String("parameter", "", "Parameter to sweep, e.g. death_age or annual_premium")
	sweepCmd.Flags().String("from", "70", "First value")
	sweepCmd.Flags().String("to", "100", "Last value (inclusive)")
	sweepCmd.Flags().String("step", "5", "Increment")
	sweepCmd.Flags().StringP("format", "f", "console", "Output format: console, csv, json")
	sweepCmd.Flags().StringP("output", "o", "", "Write the result to this file instead of stdout")
}
