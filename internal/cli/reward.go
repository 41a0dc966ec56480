package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/flowdeck/internal/wire"
)

var rewardCmd = &cobra.Command{
	Use:   "reward",
	Short: "Browse rewards",
	Long:  "List earned rewards, browse the catalog, and track progress",
}

var rewardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List earned rewards",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		earned, err := wire.RewardService().ListEarned(ctx)
		if err != nil {
			return err
		}
		if len(earned) == 0 {
			fmt.Println("Nothing earned yet. Complete a task or a focus session to get started.")
			return nil
		}

		for _, r := range earned {
			star := color.New(color.FgYellow).Sprint("★")
			fmt.Printf("%s %s  %s\n    %s\n", star, r.Name, r.EarnedAt, r.Description)
		}
		return nil
	},
}

var rewardCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the full reward catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		rules, err := wire.RewardService().Catalog(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCONDITION\tTHRESHOLD")
		for _, r := range rules {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.ID, r.Name, r.ConditionType, r.Threshold)
		}
		return w.Flush()
	},
}

var rewardProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show progress toward each reward",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		progress, err := wire.RewardService().Progress(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPROGRESS\tSTATUS")
		for _, p := range progress {
			status := "in progress"
			if p.Earned {
				status = color.New(color.FgGreen).Sprint("earned")
			}
			current := p.Current
			if current > p.Rule.Threshold {
				current = p.Rule.Threshold
			}
			fmt.Fprintf(w, "%s\t%d/%d\t%s\n", p.Rule.Name, current, p.Rule.Threshold, status)
		}
		return w.Flush()
	},
}

func init() {
	rewardCmd.AddCommand(rewardListCmd)
	rewardCmd.AddCommand(rewardCatalogCmd)
	rewardCmd.AddCommand(rewardProgressCmd)
}

// RewardCmd returns the reward command tree.
func RewardCmd() *cobra.Command {
	return rewardCmd
}
