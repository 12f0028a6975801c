package output

import (
	"bytes"
	_ "embed"
	"html/template"

	json "github.com/goccy/go-json"

	"github.com/rpgo/policy-irr/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an inline SVG chart per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"rate": FormatRate,
	"irr":  FormatIRR,
	"add":  func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

const (
	chartWidth  = 640.0
	chartHeight = 200.0
	inflowFill  = "steelblue"
	outflowFill = "red"
)

type chartBar struct {
	Age    int
	X, Y   float64
	Width  float64
	Height float64
	Fill   string
	Label  string
}

type barChart struct {
	Width, Height float64
	ZeroY         float64
	Bars          []chartBar
}

type scenarioView struct {
	domain.ScenarioResult
	Chart barChart
}

// buildChart lays out one bar per age. Positive flows rise from the zero line, negative ones hang below it.
func buildChart(tl *domain.CashFlowTimeline) barChart {
	c := barChart{Width: chartWidth, Height: chartHeight, ZeroY: chartHeight / 2}
	if len(tl.Flows) == 0 {
		return c
	}
	var maxPos, maxNeg float64
	for _, f := range tl.Flows {
		v := f.NetAmount.InexactFloat64()
		if v > maxPos {
			maxPos = v
		}
		if -v > maxNeg {
			maxNeg = -v
		}
	}
	span := maxPos + maxNeg
	if span > 0 {
		c.ZeroY = chartHeight * maxPos / span
	}
	slot := chartWidth / float64(len(tl.Flows))
	c.Bars = make([]chartBar, 0, len(tl.Flows))
	for i, f := range tl.Flows {
		v := f.NetAmount.InexactFloat64()
		b := chartBar{
			Age:   f.Age,
			X:     float64(i)*slot + slot*0.1,
			Width: slot * 0.8,
			Fill:  inflowFill,
			Label: FormatCurrency(f.NetAmount),
		}
		if span > 0 {
			if v >= 0 {
				b.Height = v / span * chartHeight
				b.Y = c.ZeroY - b.Height
			} else {
				b.Height = -v / span * chartHeight
				b.Y = c.ZeroY
				b.Fill = outflowFill
			}
		} else {
			b.Y = c.ZeroY
		}
		c.Bars = append(c.Bars, b)
	}
	return c
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	views := make([]scenarioView, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		views = append(views, scenarioView{ScenarioResult: sc, Chart: buildChart(&sc.Timeline)})
	}
	data := struct {
		*domain.ScenarioComparison
		Views          []scenarioView
		Recommendation Recommendation
	}{results, views, AnalyzeScenarios(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
