package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/flowdeck/internal/ports/primary"
	"github.com/example/flowdeck/internal/wire"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the task list",
	Long:  "Create, list, complete, and delete tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}
		note, _ := cmd.Flags().GetString("note")

		task, err := wire.TaskService().CreateTask(ctx, primary.CreateTaskRequest{
			Name: args[0],
			Note: note,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Created task %s: %s\n", task.ID, task.Name)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		filters := primary.TaskFilters{}
		if pending, _ := cmd.Flags().GetBool("pending"); pending {
			open := false
			filters.Completed = &open
		}
		if done, _ := cmd.Flags().GetBool("done"); done {
			completed := true
			filters.Completed = &completed
		}

		tasks, err := wire.TaskService().ListTasks(ctx, filters)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tNAME\tNOTE")
		for _, t := range tasks {
			status := "open"
			if t.Completed {
				status = "done"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, status, t.Name, t.Note)
		}
		return w.Flush()
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show one task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		task, err := wire.TaskService().GetTask(ctx, args[0])
		if err != nil {
			return err
		}

		status := "open"
		if task.Completed {
			status = color.New(color.FgGreen).Sprint("done")
		}
		fmt.Printf("%s  %s  [%s]\n", task.ID, task.Name, status)
		if task.Note != "" {
			fmt.Printf("  Note: %s\n", task.Note)
		}
		fmt.Printf("  Created: %s\n", task.CreatedAt)
		if task.CompletedAt != "" {
			fmt.Printf("  Completed: %s\n", task.CompletedAt)
		}
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		resp, err := wire.TaskService().CompleteTask(ctx, args[0])
		if err != nil {
			return err
		}
		printWarnings(resp.Skipped)

		fmt.Printf("✓ Completed %s: %s\n", resp.Task.ID, resp.Task.Name)
		for _, reward := range resp.Granted {
			banner := color.New(color.FgYellow, color.Bold).Sprintf("★ Reward earned: %s", reward.Name)
			fmt.Printf("%s\n  %s\n", banner, reward.Description)
		}
		return nil
	},
}

var taskReopenCmd = &cobra.Command{
	Use:   "reopen [task-id]",
	Short: "Reopen a completed task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		if err := wire.TaskService().ReopenTask(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Reopened %s\n", args[0])
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		if err := wire.TaskService().DeleteTask(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	taskAddCmd.Flags().String("note", "", "Free-form note on the task")
	taskListCmd.Flags().Bool("pending", false, "Only open tasks")
	taskListCmd.Flags().Bool("done", false, "Only completed tasks")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskReopenCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

// TaskCmd returns the task command tree.
func TaskCmd() *cobra.Command {
	return taskCmd
}
