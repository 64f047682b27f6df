package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRoot creates a fresh cobra root command wired to all subcommands.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "court-metrics",
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("verbose", false, "")
	root.AddCommand(NewServeCmd())
	root.AddCommand(NewConsumeCmd())
	root.AddCommand(NewAnalyzeCmd())
	return root
}

func executeCommand(root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const matchesCSV = `date,opponent,outcome,first_serves_made,first_serves_attempted,winners,unforced_errors,break_points_won,break_points_total
2024-01-01,Smith,Win,4,10,20,10,2,4
2024-01-08,Jones,loss,6,10,10,10,,
,Nobody,Win,1,1,1,1,1,1
`

func TestAnalyze_Text(t *testing.T) {
	path := writeTestFile(t, "m.csv", matchesCSV)
	out, _, err := executeCommand(newTestRoot(), "analyze", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Matches analysed: 2 (of 3 rows)")
	assert.Contains(t, out, "First serve %:             50.0")
	assert.Contains(t, out, "Break points converted %:  50.0")
	assert.Contains(t, out, "Return points won %:       n/a")
	assert.Contains(t, out, "Winners / UE:              1.50")
	assert.Contains(t, out, "Win rate %:                50.0")
}

func TestAnalyze_JSON(t *testing.T) {
	path := writeTestFile(t, "m.csv", matchesCSV)
	out, _, err := executeCommand(newTestRoot(), "analyze", "--json", path)
	require.NoError(t, err)

	var dash struct {
		Matches int `json:"matches"`
		KPIs    struct {
			FirstServePct float64 `json:"firstServePct"`
		} `json:"kpis"`
		Series struct {
			FirstServePct []struct {
				Date string  `json:"date"`
				Pct  float64 `json:"pct"`
			} `json:"firstServePct"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Equal(t, 2, dash.Matches)
	assert.Equal(t, 50.0, dash.KPIs.FirstServePct)
	require.Len(t, dash.Series.FirstServePct, 2)
	assert.Equal(t, "2024-01-08", dash.Series.FirstServePct[1].Date)
	assert.Equal(t, 60.0, dash.Series.FirstServePct[1].Pct)
}

func TestAnalyze_Errors(t *testing.T) {
	_, _, err := executeCommand(newTestRoot(), "analyze", filepath.Join(t.TempDir(), "missing.csv"))
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitInput, exitErr.Code)

	empty := writeTestFile(t, "empty.csv", "")
	_, _, err = executeCommand(newTestRoot(), "analyze", empty)
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitInput, exitErr.Code)

	_, _, err = executeCommand(newTestRoot(), "analyze")
	assert.Error(t, err)
}

func TestServe_ConfigError(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, _, err := executeCommand(newTestRoot(), "serve")
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitConfig, exitErr.Code)
	assert.Contains(t, exitErr.Message, "SESSION_SECRET")
}
