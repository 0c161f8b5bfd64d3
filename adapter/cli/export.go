package cli

import (
	"fmt"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/spf13/cobra"

	"github.com/mizanapp/mizan/internal/planner/application/intent"
)

var (
	exportOutput  string
	exportDays    int
	exportAnchors bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the schedule as iCalendar",
	Long: `Export scheduled commitments (and optionally prayer anchors) to
ICS for import into Google Calendar, Outlook, or Apple Calendar.

Examples:
  mizan export                    # next 7 days to stdout
  mizan export -o mizan.ics       # write to file
  mizan export --days 30 --anchors`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		cal := ics.NewCalendar()
		cal.SetMethod(ics.MethodPublish)
		cal.SetProductId("-//Mizan//Mizan CLI//EN")
		cal.SetXWRCalName("Mizan Schedule")

		count := 0
		now := time.Now()
		for i := 0; i < exportDays; i++ {
			day := now.AddDate(0, 0, i)
			date := formatDay(day)

			out, err := app.Dispatcher.Dispatch(cmd.Context(), intent.Intent{
				Kind: intent.KindQueryTasks,
				Date: date,
			})
			if err != nil {
				return err
			}
			for _, t := range out.Tasks {
				if t.ScheduledStart == nil {
					continue
				}
				ev := cal.AddEvent(t.ID.String() + "@mizan")
				ev.SetDtStampTime(now)
				ev.SetStartAt(*t.ScheduledStart)
				ev.SetEndAt(t.ScheduledStart.Add(time.Duration(t.DurationMin) * time.Minute))
				ev.SetSummary(t.Title)
				desc := "Category: " + t.Category
				if t.Completed {
					desc += "\nStatus: completed"
				}
				ev.SetDescription(desc)
				count++
			}

			if exportAnchors {
				anchors, err := app.Anchors.AnchorsFor(cmd.Context(), day)
				if err != nil {
					return err
				}
				for _, a := range anchors {
					ev := cal.AddEvent(fmt.Sprintf("%s-%s@mizan", a.Kind, date))
					ev.SetDtStampTime(now)
					ev.SetStartAt(a.At)
					ev.SetEndAt(a.At.Add(a.Duration))
					ev.SetSummary(string(a.Kind))
					count++
				}
			}
		}

		if count == 0 {
			fmt.Fprintf(os.Stderr, "nothing scheduled in the next %d days\n", exportDays)
			return nil
		}

		serialized := cal.Serialize()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, []byte(serialized), 0600); err != nil {
				return fmt.Errorf("write %s: %w", exportOutput, err)
			}
			fmt.Fprintf(os.Stderr, "exported %d events to %s\n", count, exportOutput)
			return nil
		}
		fmt.Print(serialized)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().IntVar(&exportDays, "days", 7, "number of days to export")
	exportCmd.Flags().BoolVar(&exportAnchors, "anchors", false, "include prayer anchors")
	AddCommand(exportCmd)
}
