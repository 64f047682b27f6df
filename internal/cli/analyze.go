package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/court-metrics/internal/stats"
)

// NewAnalyzeCmd creates the "analyze" subcommand: it prints the dashboard
// for a match CSV without touching any store.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file.csv>",
		Short: "Print KPIs for a match CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	cmd.Flags().Bool("json", false, "Print the full dashboard as JSON")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return exitError(ExitInput, "open %s: %v", args[0], err)
	}
	defer f.Close()

	records, err := stats.ParseCSV(f)
	if err != nil {
		return exitError(ExitInput, "parse %s: %v", args[0], err)
	}
	dash := stats.BuildDashboard(stats.Sanitize(records))

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dash)
	}
	printKPIs(out, len(records), dash)
	return nil
}

func printKPIs(w io.Writer, read int, d stats.Dashboard) {
	k := d.KPIs
	fmt.Fprintf(w, "Matches analysed: %d (of %d rows)\n", d.Matches, read)
	fmt.Fprintf(w, "First serve %%:             %s\n", pctText(&k.FirstServePct))
	fmt.Fprintf(w, "First serve points won %%:  %s\n", pctText(&k.FirstServePtsWonPct))
	fmt.Fprintf(w, "Second serve points won %%: %s\n", pctText(&k.SecondServePtsWonPct))
	fmt.Fprintf(w, "Break points converted %%:  %s\n", pctText(k.BPConversionPct))
	fmt.Fprintf(w, "Return points won %%:       %s\n", pctText(k.ReturnPtsWonPct))
	fmt.Fprintf(w, "Winners / UE:              %s\n", ratioText(k.WUERatio))
	fmt.Fprintf(w, "Win rate %%:                %s\n", pctText(k.WinRatePct))
}

func pctText(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *v)
}

func ratioText(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
