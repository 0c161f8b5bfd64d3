package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mizanapp/mizan/internal/planner/application/intent"
)

var (
	taskDuration   int
	taskCategory   string
	taskNotes      string
	taskRecurrence string
	taskAt         string
	taskIn         int
	taskDate       string
	taskCompleted  bool
	taskPending    bool
	taskConfirm    bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage commitments",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a commitment",
	Long: `Add a commitment, optionally scheduled at a concrete time.

Examples:
  mizan task add "Deep work" --duration 90 --category work --at 09:00
  mizan task add "Groceries" --duration 30 --in 45
  mizan task add "Quran review" --duration 20 --recur "FREQ=DAILY"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := intent.Intent{
			Kind:        intent.KindCreateTask,
			Title:       strings.Join(args, " "),
			DurationMin: taskDuration,
			Category:    taskCategory,
			Notes:       taskNotes,
			Recurrence:  taskRecurrence,
			When:        whenFromFlags(),
		}
		return runIntent(cmd, in)
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List commitments",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := intent.Intent{
			Kind:     intent.KindQueryTasks,
			Date:     taskDate,
			Category: taskCategory,
		}
		if taskCompleted {
			done := true
			in.Completed = &done
		}
		if taskPending {
			done := false
			in.Completed = &done
		}
		return runIntent(cmd, in)
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <reference>",
	Short: "Mark a commitment completed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntent(cmd, intent.Intent{
			Kind:      intent.KindCompleteTask,
			Reference: strings.Join(args, " "),
		})
	},
}

var taskUndoneCmd = &cobra.Command{
	Use:   "undone <reference>",
	Short: "Mark a commitment not completed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntent(cmd, intent.Intent{
			Kind:      intent.KindUncompleteTask,
			Reference: strings.Join(args, " "),
		})
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <reference>",
	Short: "Delete a commitment (asks for confirmation)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntent(cmd, intent.Intent{
			Kind:      intent.KindDeleteTask,
			Reference: strings.Join(args, " "),
			Confirmed: taskConfirm,
		})
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <reference>",
	Short: "Reschedule a commitment, or unschedule it with --unschedule",
	Long: `Move a commitment to a new time.

Examples:
  mizan task move "deep work" --at 14:00
  mizan task move groceries --in 30
  mizan task move groceries --unschedule`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unschedule, _ := cmd.Flags().GetBool("unschedule")
		ref := strings.Join(args, " ")
		if unschedule {
			return runIntent(cmd, intent.Intent{
				Kind:      intent.KindMoveToUnscheduled,
				Reference: ref,
			})
		}
		when := whenFromFlags()
		if when == nil {
			return fmt.Errorf("either --at/--in or --unschedule is required")
		}
		return runIntent(cmd, intent.Intent{
			Kind:      intent.KindRescheduleTask,
			Reference: ref,
			When:      when,
		})
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <reference>",
	Short: "Edit a commitment's fields",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		return runIntent(cmd, intent.Intent{
			Kind:        intent.KindEditTask,
			Reference:   strings.Join(args, " "),
			Title:       title,
			DurationMin: taskDuration,
			Category:    taskCategory,
			Notes:       taskNotes,
			Recurrence:  taskRecurrence,
		})
	},
}

// whenFromFlags maps --at/--in to a time spec; nil when neither is set.
func whenFromFlags() *intent.TimeSpec {
	if taskAt == "" && taskIn == 0 {
		return nil
	}
	ts := &intent.TimeSpec{InMinutes: taskIn}
	if taskAt != "" {
		// Bare HH:MM means today's time of day; longer forms are
		// absolute timestamps.
		if len(taskAt) == 5 && taskAt[2] == ':' {
			ts.TimeOfDay = taskAt
		} else {
			ts.At = taskAt
		}
	}
	return ts
}

func runIntent(cmd *cobra.Command, in intent.Intent) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("application not initialized")
	}
	if err := in.Validate(); err != nil {
		return err
	}
	out, err := app.Dispatcher.Dispatch(cmd.Context(), in)
	if err != nil {
		return err
	}
	return printOutcome(out)
}

func init() {
	taskAddCmd.Flags().IntVarP(&taskDuration, "duration", "d", 0, "duration in minutes")
	taskAddCmd.Flags().StringVar(&taskCategory, "category", "", "category (worship|work|personal|errand|rest)")
	taskAddCmd.Flags().StringVar(&taskNotes, "notes", "", "free-form notes")
	taskAddCmd.Flags().StringVar(&taskRecurrence, "recur", "", "RRULE recurrence, e.g. FREQ=DAILY")
	taskAddCmd.Flags().StringVar(&taskAt, "at", "", "start time (HH:MM or RFC3339)")
	taskAddCmd.Flags().IntVar(&taskIn, "in", 0, "start in N minutes")

	taskListCmd.Flags().StringVar(&taskDate, "date", "", "day filter (2006-01-02)")
	taskListCmd.Flags().StringVar(&taskCategory, "category", "", "category filter")
	taskListCmd.Flags().BoolVar(&taskCompleted, "completed", false, "only completed")
	taskListCmd.Flags().BoolVar(&taskPending, "pending", false, "only not completed")

	taskDeleteCmd.Flags().BoolVar(&taskConfirm, "confirm", false, "skip the confirmation round-trip")

	taskMoveCmd.Flags().StringVar(&taskAt, "at", "", "new start time (HH:MM or RFC3339)")
	taskMoveCmd.Flags().IntVar(&taskIn, "in", 0, "new start in N minutes")
	taskMoveCmd.Flags().Bool("unschedule", false, "drop the scheduled time")

	taskEditCmd.Flags().String("title", "", "new title")
	taskEditCmd.Flags().IntVarP(&taskDuration, "duration", "d", 0, "new duration in minutes")
	taskEditCmd.Flags().StringVar(&taskCategory, "category", "", "new category")
	taskEditCmd.Flags().StringVar(&taskNotes, "notes", "", "new notes")
	taskEditCmd.Flags().StringVar(&taskRecurrence, "recur", "", "new RRULE recurrence")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskDoneCmd, taskUndoneCmd, taskDeleteCmd, taskMoveCmd, taskEditCmd)
	AddCommand(taskCmd)
}
