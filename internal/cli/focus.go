package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/flowdeck/internal/ports/primary"
	"github.com/example/flowdeck/internal/wire"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Drive the focus timer",
	Long:  "Start, pause, resume, and watch focus and break countdowns",
}

var focusStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current timer state",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		snap, err := wire.FlowService().Status(ctx)
		if err != nil {
			return err
		}
		printSnapshot(snap)
		return nil
	},
}

var focusModeCmd = &cobra.Command{
	Use:   "mode [focus|short-break|long-break]",
	Short: "Switch the timer mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		// Accept both hyphen and underscore spellings.
		mode := strings.ReplaceAll(args[0], "-", "_")
		snap, err := wire.FlowService().SetMode(ctx, mode)
		if err != nil {
			return err
		}
		printSnapshot(snap)
		return nil
	},
}

var focusStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		snap, err := wire.FlowService().Start(ctx)
		if err != nil {
			return err
		}
		printSnapshot(snap)
		return nil
	},
}

var focusPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		snap, err := wire.FlowService().Pause(ctx)
		if err != nil {
			return err
		}
		printSnapshot(snap)
		return nil
	},
}

var focusResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		snap, err := wire.FlowService().Resume(ctx)
		if err != nil {
			return err
		}
		printSnapshot(snap)
		return nil
	},
}

var focusResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Cancel the current segment",
	Long:  "Cancel the current segment and return to ready. Partial time is discarded, not credited.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		snap, err := wire.FlowService().Reset(ctx)
		if err != nil {
			return err
		}
		printSnapshot(snap)
		return nil
	},
}

var focusTickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Poll the timer once",
	Long:  "Refresh remaining time once. When the segment has elapsed this records the session and checks rewards; scripts can poll it at any cadence.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		result, err := wire.FlowService().Tick(ctx)
		if err != nil {
			return err
		}
		if result.Completed {
			printCompletion(result)
		} else {
			printSnapshot(result.Snapshot)
		}
		return nil
	},
}

var focusRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the countdown until the segment completes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}
		service := wire.FlowService()

		snap, err := service.Status(ctx)
		if err != nil {
			return err
		}
		if snap.Stage == "ready" {
			if snap, err = service.Start(ctx); err != nil {
				return err
			}
		}
		if snap.Stage != "running" || snap.Paused {
			return fmt.Errorf("timer is not running (stage: %s)", snap.Stage)
		}
		printWarnings(snap.Warnings)

		label := modeLabel(snap.Mode)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for range ticker.C {
			result, err := service.Tick(ctx)
			if err != nil {
				return err
			}
			if result.Completed {
				fmt.Println()
				printCompletion(result)
				return nil
			}
			fmt.Printf("\r%s  %s remaining ", label, formatClock(result.Snapshot.RemainingSeconds))
		}
		return nil
	},
}

var focusLinkCmd = &cobra.Command{
	Use:   "link [task-id]",
	Short: "Link the timer to a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		snap, err := wire.FlowService().LinkTask(ctx, args[0])
		if err != nil {
			return err
		}
		printWarnings(snap.Warnings)
		fmt.Printf("✓ Linked to %s: %s\n", snap.LinkedTaskID, snap.LinkedTaskName)
		return nil
	},
}

var focusUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Clear the task link",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		snap, err := wire.FlowService().UnlinkTask(ctx)
		if err != nil {
			return err
		}
		printWarnings(snap.Warnings)
		fmt.Println("✓ Task link cleared")
		return nil
	},
}

var focusSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change timer durations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}
		service := wire.FlowService()

		focusMin, _ := cmd.Flags().GetString("focus")
		shortMin, _ := cmd.Flags().GetString("short-break")
		longMin, _ := cmd.Flags().GetString("long-break")

		if focusMin == "" && shortMin == "" && longMin == "" {
			settings, err := service.GetSettings(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Focus:       %d min\n", settings.FocusMinutes)
			fmt.Printf("Short break: %d min\n", settings.ShortBreakMinutes)
			fmt.Printf("Long break:  %d min\n", settings.LongBreakMinutes)
			return nil
		}

		settings, err := service.GetSettings(ctx)
		if err != nil {
			return err
		}
		if err := applyMinutes(focusMin, &settings.FocusMinutes); err != nil {
			return err
		}
		if err := applyMinutes(shortMin, &settings.ShortBreakMinutes); err != nil {
			return err
		}
		if err := applyMinutes(longMin, &settings.LongBreakMinutes); err != nil {
			return err
		}

		if err := service.UpdateSettings(ctx, *settings); err != nil {
			return err
		}
		fmt.Println("✓ Timer durations updated")
		return nil
	},
}

func applyMinutes(value string, target *int) error {
	if value == "" {
		return nil
	}
	minutes, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid minutes value %q", value)
	}
	*target = minutes
	return nil
}

func modeLabel(mode string) string {
	switch mode {
	case "focus":
		return color.New(color.FgCyan, color.Bold).Sprint("FOCUS")
	case "short_break":
		return color.New(color.FgGreen, color.Bold).Sprint("SHORT BREAK")
	case "long_break":
		return color.New(color.FgGreen, color.Bold).Sprint("LONG BREAK")
	default:
		return mode
	}
}

func printSnapshot(snap *primary.FlowSnapshot) {
	printWarnings(snap.Warnings)

	stage := snap.Stage
	if snap.Paused {
		stage = "paused"
	}
	fmt.Printf("%s  %s  %s\n", modeLabel(snap.Mode), stage, formatClock(snap.RemainingSeconds))
	if snap.LinkedTaskID != "" {
		name := snap.LinkedTaskName
		if name == "" {
			name = "(deleted task)"
		}
		fmt.Printf("  Task: %s %s\n", snap.LinkedTaskID, name)
	}
}

func printCompletion(result *primary.TickResult) {
	printWarnings(result.Snapshot.Warnings)

	done := color.New(color.FgGreen, color.Bold).Sprint("✓ Segment complete")
	fmt.Printf("%s (%s)\n", done, modeLabel(result.Snapshot.Mode))
	for _, reward := range result.Granted {
		banner := color.New(color.FgYellow, color.Bold).Sprintf("★ Reward earned: %s", reward.Name)
		fmt.Printf("%s\n  %s\n", banner, reward.Description)
	}
}

func init() {
	focusSettingsCmd.Flags().String("focus", "", "Focus duration in minutes (5-60)")
	focusSettingsCmd.Flags().String("short-break", "", "Short break duration in minutes (5-15)")
	focusSettingsCmd.Flags().String("long-break", "", "Long break duration in minutes (15-30)")

	focusCmd.AddCommand(focusStatusCmd)
	focusCmd.AddCommand(focusModeCmd)
	focusCmd.AddCommand(focusStartCmd)
	focusCmd.AddCommand(focusPauseCmd)
	focusCmd.AddCommand(focusResumeCmd)
	focusCmd.AddCommand(focusResetCmd)
	focusCmd.AddCommand(focusTickCmd)
	focusCmd.AddCommand(focusRunCmd)
	focusCmd.AddCommand(focusLinkCmd)
	focusCmd.AddCommand(focusUnlinkCmd)
	focusCmd.AddCommand(focusSettingsCmd)
}

// FocusCmd returns the focus command tree.
func FocusCmd() *cobra.Command {
	return focusCmd
}
