package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/flowdeck/internal/cli"
	"github.com/example/flowdeck/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "flowdeck",
		Short:   "flowdeck - a focus timer with tasks, rewards, and a vision board",
		Version: version.String(),
		Long: `flowdeck is a CLI for deliberate focus work. It runs pomodoro-style
focus and break countdowns, links sessions to tasks, and hands out rewards
for consistent habits.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.FocusCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.VisionCmd())
	rootCmd.AddCommand(cli.RewardCmd())
	rootCmd.AddCommand(cli.StatsCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
