package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/rpgo/policy-irr/internal/domain"
)

// FormatSweep renders a sweep as a console table, CSV or JSON.
func FormatSweep(res *domain.SweepResult, format string) ([]byte, error) {
	switch NormalizeFormatName(format) {
	case "console", "console-lite":
		return sweepConsole(res), nil
	case "csv", "detailed-csv":
		return sweepCSV(res)
	case "json":
		return json.MarshalIndent(res, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q. Sweeps support console, csv and json", ErrUnsupportedFormat, format)
	}
}

func sweepConsole(res *domain.SweepResult) []byte {
	var buf bytes.Buffer
	title := fmt.Sprintf("SWEEP: %s over %s", res.Scenario, res.Parameter)
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	fmt.Fprintf(&buf, "%16s %12s %18s\n", strings.ToUpper(res.Parameter), "IRR", "NET")
	for _, pt := range res.Points {
		fmt.Fprintf(&buf, "%16s %12s %18s\n", pt.Value.String(), FormatRate(pt.IRR), FormatCurrency(pt.Net))
	}
	return buf.Bytes()
}

func sweepCSV(res *domain.SweepResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Scenario", "Parameter", "Value", "IRRSolved", "IRR", "NetCashFlow"}); err != nil {
		return nil, err
	}
	for _, pt := range res.Points {
		rate := ""
		if pt.IRR.Solved {
			rate = strconv.FormatFloat(pt.IRR.Rate, 'f', 8, 64)
		}
		row := []string{res.Scenario, res.Parameter, pt.Value.String(), boolToString(pt.IRR.Solved), rate, pt.Net.StringFixed(2)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
