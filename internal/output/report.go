package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/policy-irr/internal/domain"
	"gopkg.in/yaml.v3"
)

// Render formats results with the named formatter (aliases allowed).
func Render(results *domain.ScenarioComparison, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupportedFormat(format)
	}
	return f.Format(results)
}

// extensionFor picks the file extension for a canonical formatter name.
func extensionFor(name string) string {
	switch {
	case strings.Contains(name, "csv"):
		return "csv"
	case name == "json", name == "html":
		return name
	default:
		return "txt"
	}
}

// GenerateReport writes results to timestamped files in dir and returns their paths.
// "all" writes the verbose console report, the detailed CSV and the HTML report.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	var formatters []Formatter
	if f := GetFormatterByName(format); f != nil {
		formatters = []Formatter{f}
	} else if NormalizeFormatName(format) == "all" {
		formatters = []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, HTMLFormatter{}}
	} else {
		return nil, unsupportedFormat(format)
	}

	files := make([]string, 0, len(formatters))
	for _, f := range formatters {
		name, err := WriteFormatted(f, results, dir, extensionFor(f.Name()))
		if err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

// SaveConfiguration writes a configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}
