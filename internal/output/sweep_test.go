package output

import (
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/rpgo/policy-irr/internal/domain"
	"github.com/shopspring/decimal"
)

func testSweep() *domain.SweepResult {
	return &domain.SweepResult{
		Scenario:  "Default policy",
		Parameter: "death_age",
		Points: []domain.SweepPoint{
			{Value: decimal.NewFromInt(70), IRR: domain.Solution(0.1), Net: decimal.NewFromInt(1200000)},
			{Value: decimal.NewFromInt(75), IRR: domain.NoSolution, Net: decimal.NewFromInt(-100)},
		},
	}
}

func TestFormatSweep_Console(t *testing.T) {
	out, err := FormatSweep(testSweep(), "console")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title, rule, header and 2 rows, got %d: %q", len(lines), lines)
	}
	if lines[0] != "SWEEP: Default policy over death_age" {
		t.Fatalf("title = %q", lines[0])
	}
	if !strings.Contains(lines[3], "10.00%") || !strings.Contains(lines[3], "$1,200,000.00") {
		t.Fatalf("first row = %q", lines[3])
	}
	if !strings.Contains(lines[4], "n/a") || !strings.Contains(lines[4], "-$100.00") {
		t.Fatalf("second row = %q", lines[4])
	}
}

func TestFormatSweep_CSV(t *testing.T) {
	out, err := FormatSweep(testSweep(), "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Scenario,Parameter,Value,IRRSolved,IRR,NetCashFlow\n" +
		"Default policy,death_age,70,true,0.10000000,1200000.00\n" +
		"Default policy,death_age,75,false,,-100.00\n"
	if string(out) != want {
		t.Fatalf("csv = %q, want %q", string(out), want)
	}
}

func TestFormatSweep_JSON(t *testing.T) {
	out, err := FormatSweep(testSweep(), "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded domain.SweepResult
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded.Points) != 2 || decoded.Points[1].IRR.Solved {
		t.Fatalf("unexpected decoded sweep: %+v", decoded)
	}
}

func TestFormatSweep_Unsupported(t *testing.T) {
	_, err := FormatSweep(testSweep(), "html")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
