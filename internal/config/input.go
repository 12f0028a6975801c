package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rpgo/policy-irr/internal/calculation"
	"github.com/rpgo/policy-irr/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrScenarioNotFound is returned when a sweep or lookup names a scenario that does not exist.
var ErrScenarioNotFound = errors.New("scenario not found")

// ErrSweepOutOfLimits is returned when a sweep visits a value the limits reject.
var ErrSweepOutOfLimits = errors.New("sweep leaves the allowed input range")

// AgeRange is an inclusive bound on an age input
type AgeRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

func (r AgeRange) contains(age int) bool { return age >= r.Min && age <= r.Max }

// Limits bounds the values a scenario may carry. The calculation itself accepts anything;
// these keep inputs inside the ranges the calculator is meant to be used with.
type Limits struct {
	PremiumAges     AgeRange        `yaml:"premium_ages" json:"premium_ages"`
	WithdrawalAges  AgeRange        `yaml:"withdrawal_ages" json:"withdrawal_ages"`
	DeathAges       AgeRange        `yaml:"death_ages" json:"death_ages"`
	MaxPremium      decimal.Decimal `yaml:"max_premium" json:"max_premium"`
	MaxWithdrawal   decimal.Decimal `yaml:"max_withdrawal" json:"max_withdrawal"`
	MaxDeathBenefit decimal.Decimal `yaml:"max_death_benefit" json:"max_death_benefit"`
}

// DefaultLimits mirrors the input ranges of the interactive calculator.
var DefaultLimits = Limits{
	PremiumAges:     AgeRange{Min: 15, Max: 75},
	WithdrawalAges:  AgeRange{Min: 20, Max: 120},
	DeathAges:       AgeRange{Min: 20, Max: 120},
	MaxPremium:      decimal.NewFromInt(120000),
	MaxWithdrawal:   decimal.NewFromInt(300000),
	MaxDeathBenefit: decimal.NewFromInt(4000000),
}

// InputParser handles parsing of input configuration files
type InputParser struct {
	Limits Limits
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Limits: DefaultLimits}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if scenario.Name == "" {
			return fmt.Errorf("scenario %d validation failed: scenario name is required", i)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate scenario name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true

		if err := ip.ValidateParameters(&scenario.Parameters); err != nil {
			return fmt.Errorf("scenario %q validation failed: %w", scenario.Name, err)
		}
	}

	for i, sweep := range config.Sweeps {
		if err := ip.validateSweep(config, &sweep); err != nil {
			return fmt.Errorf("sweep %d validation failed: %w", i, err)
		}
	}

	return nil
}

// ValidateParameters checks one parameter set against the parser's limits
func (ip *InputParser) ValidateParameters(p *domain.ScenarioParameters) error {
	lim := ip.Limits

	// Premium schedule
	if p.PremiumStartAge > p.PremiumEndAge {
		return fmt.Errorf("premium start age %d is after premium end age %d", p.PremiumStartAge, p.PremiumEndAge)
	}
	if !lim.PremiumAges.contains(p.PremiumStartAge) || !lim.PremiumAges.contains(p.PremiumEndAge) {
		return fmt.Errorf("premium ages must be between %d and %d", lim.PremiumAges.Min, lim.PremiumAges.Max)
	}
	if p.AnnualPremium.IsNegative() {
		return fmt.Errorf("annual premium cannot be negative")
	}
	if p.AnnualPremium.GreaterThan(lim.MaxPremium) {
		return fmt.Errorf("annual premium cannot exceed %s", lim.MaxPremium)
	}

	// Withdrawal schedule
	if p.WithdrawalStartAge > p.WithdrawalEndAge {
		return fmt.Errorf("withdrawal start age %d is after withdrawal end age %d", p.WithdrawalStartAge, p.WithdrawalEndAge)
	}
	if !lim.WithdrawalAges.contains(p.WithdrawalStartAge) || !lim.WithdrawalAges.contains(p.WithdrawalEndAge) {
		return fmt.Errorf("withdrawal ages must be between %d and %d", lim.WithdrawalAges.Min, lim.WithdrawalAges.Max)
	}
	if p.AnnualWithdrawal.IsNegative() {
		return fmt.Errorf("annual withdrawal cannot be negative")
	}
	if p.AnnualWithdrawal.GreaterThan(lim.MaxWithdrawal) {
		return fmt.Errorf("annual withdrawal cannot exceed %s", lim.MaxWithdrawal)
	}

	// Death benefit
	if !lim.DeathAges.contains(p.DeathAge) {
		return fmt.Errorf("death age must be between %d and %d", lim.DeathAges.Min, lim.DeathAges.Max)
	}
	if p.NetDeathBenefit.IsNegative() {
		return fmt.Errorf("net death benefit cannot be negative")
	}
	if p.NetDeathBenefit.GreaterThan(lim.MaxDeathBenefit) {
		return fmt.Errorf("net death benefit cannot exceed %s", lim.MaxDeathBenefit)
	}

	return nil
}

// validateSweep checks that a configured sweep names a known scenario and stays in limits
func (ip *InputParser) validateSweep(config *domain.Configuration, sweep *domain.SweepSpec) error {
	scenario := config.FindScenario(sweep.Scenario)
	if scenario == nil {
		return fmt.Errorf("%w: %q", ErrScenarioNotFound, sweep.Scenario)
	}
	return ip.ValidateSweep(&scenario.Parameters, *sweep)
}

// ValidateSweep checks the shape of spec and that every value it visits, applied to base,
// still passes ValidateParameters. Each limit bounds a single input, so checking the
// first and last values covers the whole range.
func (ip *InputParser) ValidateSweep(base *domain.ScenarioParameters, spec domain.SweepSpec) error {
	count, err := calculation.CheckSweep(spec)
	if err != nil {
		return err
	}
	first, last := calculation.SweepEndpoints(spec, count)
	for _, v := range []decimal.Decimal{first, last} {
		p := *base
		if err := calculation.ApplySweepValue(&p, spec.Parameter, v); err != nil {
			return err
		}
		if err := ip.ValidateParameters(&p); err != nil {
			return fmt.Errorf("%w: %s=%s: %v", ErrSweepOutOfLimits, spec.Parameter, v, err)
		}
	}
	return nil
}

// DefaultParameters returns the policy the calculator opens with
func DefaultParameters() domain.ScenarioParameters {
	return domain.ScenarioParameters{
		PremiumStartAge:    30,
		PremiumEndAge:      50,
		AnnualPremium:      decimal.NewFromInt(5000),
		WithdrawalStartAge: 60,
		WithdrawalEndAge:   90,
		AnnualWithdrawal:   decimal.NewFromInt(30000),
		DeathAge:           86,
		NetDeathBenefit:    decimal.NewFromInt(1000000),
	}
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	base := DefaultParameters()

	shortPay := base
	shortPay.PremiumEndAge = 40
	shortPay.AnnualPremium = decimal.NewFromInt(10000)

	earlyDeath := base
	earlyDeath.DeathAge = 65

	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "Default policy", Parameters: base},
			{Name: "Ten pay", Parameters: shortPay},
			{Name: "Early death", Parameters: earlyDeath},
		},
		Sweeps: []domain.SweepSpec{
			{
				Scenario:  "Default policy",
				Parameter: "death_age",
				From:      decimal.NewFromInt(70),
				To:        decimal.NewFromInt(100),
				Step:      decimal.NewFromInt(5),
			},
		},
	}
}
