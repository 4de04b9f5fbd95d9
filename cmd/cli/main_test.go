package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var examplesDir = filepath.Join("..", "..", "examples")

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--log-level", "error"))
	return cmd.Execute()
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExampleConfigsExist(t *testing.T) {
	configFlag := regexp.MustCompile(`--config (\S+)`)
	for _, sub := range newRootCmd().Commands() {
		for _, m := range configFlag.FindAllStringSubmatch(sub.Example, -1) {
			rel, err := filepath.Rel("examples", m[1])
			require.NoError(t, err)
			_, err = os.Stat(filepath.Join(examplesDir, rel))
			assert.NoError(t, err, "%s example references %s", sub.Name(), m[1])
		}
	}
}

func TestProject_IntervalFromConfig(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, execute(t, "project", "--config", filepath.Join(examplesDir, "scenario.yaml"), "--out", out))

	// scenario.yaml asks for a yearly ledger over 132 months.
	records := readCSV(t, out)
	assert.Len(t, records, 1+11)
	assert.Equal(t, "index", records[0][0])
}

func TestProject_IntervalFlagOverridesConfig(t *testing.T) {
	out := filepath.Join(t.TempDir(), "monthly.csv")
	require.NoError(t, execute(t, "project",
		"--config", filepath.Join(examplesDir, "scenario.yaml"),
		"--interval", "1",
		"--out", out,
	))
	assert.Len(t, readCSV(t, out), 1+132)
}

func TestProject_BadInterval(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ledger.csv")
	err := execute(t, "project", "--config", filepath.Join(examplesDir, "scenario.yaml"), "--interval", "5", "--out", out)
	assert.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestRank_Outputs(t *testing.T) {
	for _, format := range []string{"table", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			assert.NoError(t, execute(t, "rank", "--config", filepath.Join(examplesDir, "scenario.yaml"), "-n", "3", "-o", format))
		})
	}
	assert.Error(t, execute(t, "rank", "--config", filepath.Join(examplesDir, "scenario.yaml"), "-o", "xml"))
}
