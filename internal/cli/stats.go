package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/flowdeck/internal/wire"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus statistics",
	Long:  "Aggregate counters over completed sessions, plus recent history",
	// Bare "flowdeck stats" shows the summary.
	RunE: func(cmd *cobra.Command, args []string) error {
		return statsSummaryCmd.RunE(cmd, args)
	},
}

var statsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregate totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		summary, err := wire.StatsService().Summary(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Focus sessions: %d (%s)\n", summary.FocusSessions, formatClock(summary.FocusSeconds))
		fmt.Printf("Breaks taken:   %d (%s)\n", summary.BreaksCompleted, formatClock(summary.BreakSeconds))

		if len(summary.TaskSummaries) > 0 || summary.UnlinkedSeconds > 0 {
			fmt.Println("\nFocus time by task:")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, t := range summary.TaskSummaries {
				name := t.TaskName
				if name == "" {
					name = "(deleted task)"
				}
				fmt.Fprintf(w, "  %s\t%s\t%d sessions\t%s\n", t.TaskID, name, t.Sessions, formatClock(t.TotalSeconds))
			}
			if summary.UnlinkedSeconds > 0 {
				fmt.Fprintf(w, "  -\t(no task)\t\t%s\n", formatClock(summary.UnlinkedSeconds))
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
		return nil
	},
}

var statsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		sessions, err := wire.StatsService().RecentSessions(ctx, limit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tTYPE\tDURATION\tTASK")
		for _, s := range sessions {
			task := s.TaskID
			if task == "" {
				task = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.OccurredAt, s.SessionType, formatClock(s.DurationSeconds), task)
		}
		return w.Flush()
	},
}

func init() {
	statsHistoryCmd.Flags().Int("limit", 10, "Number of sessions to show")

	statsCmd.AddCommand(statsSummaryCmd)
	statsCmd.AddCommand(statsHistoryCmd)
}

// StatsCmd returns the stats command tree.
func StatsCmd() *cobra.Command {
	return statsCmd
}
