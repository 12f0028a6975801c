package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/policy-irr/internal/calculation"
	"github.com/rpgo/policy-irr/internal/config"
	"github.com/rpgo/policy-irr/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputGeneration(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	results, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	for _, name := range output.AvailableFormatterNames() {
		data, err := output.Render(results, name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	console, err := output.Render(results, "console")
	require.NoError(t, err)
	text := string(console)
	assert.Contains(t, text, "Estimated IRR: 7.68%")
	assert.Contains(t, text, output.NoIRRMessage)
	assert.Contains(t, text, "Best scenario: Early death")

	dir := t.TempDir()
	files, err := output.GenerateReport(results, "all", dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	var exts []string
	for _, f := range files {
		assert.Equal(t, dir, filepath.Dir(f))
		assert.True(t, strings.HasPrefix(filepath.Base(f), "policy_irr_report_"), f)
		exts = append(exts, filepath.Ext(f))
	}
	assert.Equal(t, []string{".txt", ".csv", ".html"}, exts)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSaveConfiguration_WritesLoadableFile(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, output.SaveConfiguration(cfg, out))

	reloaded, err := parser.LoadFromFile(out)
	require.NoError(t, err)
	assert.Equal(t, len(cfg.Scenarios), len(reloaded.Scenarios))
	assert.Equal(t, cfg.Scenarios[2].Parameters.DeathAge, reloaded.Scenarios[2].Parameters.DeathAge)
}
