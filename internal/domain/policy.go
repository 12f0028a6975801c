package domain

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ScenarioParameters describes a permanent life insurance policy as seen by the policy owner:
// when premiums are paid, when withdrawals are taken, and when the death benefit pays out.
// Ages are whole years. Amounts are annual and non-negative.
type ScenarioParameters struct {
	PremiumStartAge int             `yaml:"premium_start_age" json:"premium_start_age"`
	PremiumEndAge   int             `yaml:"premium_end_age" json:"premium_end_age"`
	AnnualPremium   decimal.Decimal `yaml:"annual_premium" json:"annual_premium"`

	WithdrawalStartAge int             `yaml:"withdrawal_start_age" json:"withdrawal_start_age"`
	WithdrawalEndAge   int             `yaml:"withdrawal_end_age" json:"withdrawal_end_age"`
	AnnualWithdrawal   decimal.Decimal `yaml:"annual_withdrawal" json:"annual_withdrawal"`

	DeathAge        int             `yaml:"death_age" json:"death_age"`
	NetDeathBenefit decimal.Decimal `yaml:"net_death_benefit" json:"net_death_benefit"`
}

// UnmarshalYAML implements custom YAML unmarshaling for ScenarioParameters
func (sp *ScenarioParameters) UnmarshalYAML(value *yaml.Node) error {
	// Amounts are read as strings so that decimal precision survives the YAML float path
	type Alias struct {
		PremiumStartAge    int    `yaml:"premium_start_age"`
		PremiumEndAge      int    `yaml:"premium_end_age"`
		AnnualPremium      string `yaml:"annual_premium"`
		WithdrawalStartAge int    `yaml:"withdrawal_start_age"`
		WithdrawalEndAge   int    `yaml:"withdrawal_end_age"`
		AnnualWithdrawal   string `yaml:"annual_withdrawal"`
		DeathAge           int    `yaml:"death_age"`
		NetDeathBenefit    string `yaml:"net_death_benefit"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	sp.PremiumStartAge = aux.PremiumStartAge
	sp.PremiumEndAge = aux.PremiumEndAge
	sp.WithdrawalStartAge = aux.WithdrawalStartAge
	sp.WithdrawalEndAge = aux.WithdrawalEndAge
	sp.DeathAge = aux.DeathAge

	var err error
	if sp.AnnualPremium, err = parseAmount(aux.AnnualPremium); err != nil {
		return err
	}
	if sp.AnnualWithdrawal, err = parseAmount(aux.AnnualWithdrawal); err != nil {
		return err
	}
	if sp.NetDeathBenefit, err = parseAmount(aux.NetDeathBenefit); err != nil {
		return err
	}
	return nil
}

// MarshalYAML writes amounts as plain numbers rather than decimal internals.
func (sp ScenarioParameters) MarshalYAML() (interface{}, error) {
	return struct {
		PremiumStartAge    int         `yaml:"premium_start_age"`
		PremiumEndAge      int         `yaml:"premium_end_age"`
		AnnualPremium      yamlDecimal `yaml:"annual_premium"`
		WithdrawalStartAge int         `yaml:"withdrawal_start_age"`
		WithdrawalEndAge   int         `yaml:"withdrawal_end_age"`
		AnnualWithdrawal   yamlDecimal `yaml:"annual_withdrawal"`
		DeathAge           int         `yaml:"death_age"`
		NetDeathBenefit    yamlDecimal `yaml:"net_death_benefit"`
	}{
		sp.PremiumStartAge, sp.PremiumEndAge, yamlDecimal(sp.AnnualPremium),
		sp.WithdrawalStartAge, sp.WithdrawalEndAge, yamlDecimal(sp.AnnualWithdrawal),
		sp.DeathAge, yamlDecimal(sp.NetDeathBenefit),
	}, nil
}

type yamlDecimal decimal.Decimal

func (d yamlDecimal) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: decimal.Decimal(d).String()}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// Scenario is a named set of policy parameters
type Scenario struct {
	Name       string             `yaml:"name" json:"name"`
	Parameters ScenarioParameters `yaml:"parameters" json:"parameters"`
}

// SweepSpec re-evaluates a scenario while stepping one parameter across a range
type SweepSpec struct {
	Scenario  string          `yaml:"scenario" json:"scenario"`
	Parameter string          `yaml:"parameter" json:"parameter"`
	From      decimal.Decimal `yaml:"from" json:"from"`
	To        decimal.Decimal `yaml:"to" json:"to"`
	Step      decimal.Decimal `yaml:"step" json:"step"`
}

// UnmarshalYAML implements custom YAML unmarshaling for SweepSpec
func (ss *SweepSpec) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Scenario  string `yaml:"scenario"`
		Parameter string `yaml:"parameter"`
		From      string `yaml:"from"`
		To        string `yaml:"to"`
		Step      string `yaml:"step"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	ss.Scenario = aux.Scenario
	ss.Parameter = aux.Parameter

	var err error
	if ss.From, err = parseAmount(aux.From); err != nil {
		return err
	}
	if ss.To, err = parseAmount(aux.To); err != nil {
		return err
	}
	if ss.Step, err = parseAmount(aux.Step); err != nil {
		return err
	}
	return nil
}

// MarshalYAML keeps sweep bounds readable in saved files.
func (ss SweepSpec) MarshalYAML() (interface{}, error) {
	return struct {
		Scenario  string      `yaml:"scenario"`
		Parameter string      `yaml:"parameter"`
		From      yamlDecimal `yaml:"from"`
		To        yamlDecimal `yaml:"to"`
		Step      yamlDecimal `yaml:"step"`
	}{ss.Scenario, ss.Parameter, yamlDecimal(ss.From), yamlDecimal(ss.To), yamlDecimal(ss.Step)}, nil
}

// Configuration represents the complete input configuration
type Configuration struct {
	Scenarios []Scenario  `yaml:"scenarios" json:"scenarios"`
	Sweeps    []SweepSpec `yaml:"sweeps,omitempty" json:"sweeps,omitempty"`
}

// FindScenario returns the scenario with the given name, or nil.
func (c *Configuration) FindScenario(name string) *Scenario {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i]
		}
	}
	return nil
}
