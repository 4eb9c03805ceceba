package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	core "github.com/abhisek/perfil/internal/questionnaire"
	"github.com/abhisek/perfil/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past submissions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent submission attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := st.SubmissionRepo().List(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No submissions found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-2s  %-5s  %-6s  %-20s  %s\n",
			"Seq", "Timestamp", "OK", "Total", "Ms", "Profile", "Answers / Error")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, r := range recs {
			ok := "✓"
			detail := joinInts(r.Answers)
			if !r.Success {
				ok = "✗"
				detail = r.Error
			}
			profile := r.Profile
			if r.Success {
				profile += " (" + core.FormatScore(r.Score) + ")"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-2s  %-5d  %-6d  %-20s  %s\n",
				r.Sequence,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ok,
				r.Total,
				r.LatencyMs,
				profile,
				detail,
			)
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how submissions are distributed across profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		counts, err := st.SubmissionRepo().ProfileCounts(cmd.Context())
		if err != nil {
			return fmt.Errorf("count profiles: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(counts) == 0 {
			fmt.Fprintln(out, "No successful submissions yet.")
			return nil
		}

		total := 0
		for _, c := range counts {
			total += c.Count
		}
		for _, c := range counts {
			pct := float64(c.Count) * 100 / float64(total)
			bar := strings.Repeat("█", int(pct/5))
			fmt.Fprintf(out, "%-24s %4d  %5.1f%%  %s\n", c.Profile, c.Count, pct, bar)
		}
		fmt.Fprintf(out, "%-24s %4d\n", "total", total)
		return nil
	},
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Max submissions to show (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
}
