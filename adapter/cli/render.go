package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/mizanapp/mizan/internal/planner/application/intent"
)

var (
	headline = color.New(color.Bold)
	okMark   = color.New(color.FgGreen)
	warnMark = color.New(color.FgYellow)
	failMark = color.New(color.FgRed)
	faint    = color.New(color.Faint)
)

// printOutcome renders one dispatch outcome, honoring the global --json flag.
func printOutcome(out intent.Outcome) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	switch out.Kind {
	case intent.OutcomeCreated:
		_, _ = okMark.Print("created  ")
		printCommitment(*out.Commitment)
	case intent.OutcomeEdited:
		_, _ = okMark.Print("edited   ")
		printCommitment(*out.Commitment)
	case intent.OutcomeDeleted:
		_, _ = okMark.Print("deleted  ")
		printCommitment(*out.Commitment)
	case intent.OutcomeCompleted:
		_, _ = okMark.Print("done     ")
		printCommitment(*out.Commitment)
	case intent.OutcomeUncompleted:
		_, _ = okMark.Print("reopened ")
		printCommitment(*out.Commitment)
	case intent.OutcomeRescheduled, intent.OutcomeMovedToUnscheduled:
		_, _ = okMark.Print("moved    ")
		printCommitment(*out.Commitment)
	case intent.OutcomeDeletePending:
		_, _ = warnMark.Printf("delete %q? re-run with --confirm\n", out.Commitment.Title)
	case intent.OutcomeRearranged:
		if len(out.Changes) == 0 {
			fmt.Println("nothing to move, schedule already fits")
			return nil
		}
		_, _ = headline.Printf("rearranged %d commitments\n", len(out.Changes))
		for _, ch := range out.Changes {
			from := "unscheduled"
			if ch.OldStart != nil {
				from = ch.OldStart.Format("15:04")
			}
			fmt.Printf("  %-28s %s -> %s", ch.CommitmentTitle, from, ch.NewStart.Format("15:04"))
			_, _ = faint.Printf("  (%s)\n", ch.Reason)
		}
	case intent.OutcomeTaskList:
		if len(out.Tasks) == 0 {
			fmt.Println("no commitments")
			return nil
		}
		for _, t := range out.Tasks {
			printCommitment(t)
		}
	case intent.OutcomeAnchorList:
		for _, a := range out.Anchors {
			_, _ = headline.Printf("%-8s", a.Kind)
			fmt.Printf(" %s", a.At.Format("15:04"))
			_, _ = faint.Printf("  blocked %s-%s\n",
				a.BlockedFrom.Format("15:04"), a.BlockedUntil.Format("15:04"))
		}
	case intent.OutcomeFreeWindows:
		if len(out.Windows) == 0 {
			fmt.Println("no free windows")
			return nil
		}
		for _, w := range out.Windows {
			fmt.Printf("%s - %s", w.Start.Format("15:04"), w.End.Format("15:04"))
			_, _ = faint.Printf("  %d min\n", w.DurationMin)
		}
	case intent.OutcomePrayerConflict:
		_, _ = warnMark.Println(out.Message)
		if out.Suggestion != nil {
			fmt.Printf("next free start: %s\n", out.Suggestion.Format("15:04"))
		}
	case intent.OutcomeNeedsClarification:
		_, _ = warnMark.Println(out.Message)
		for _, c := range out.Candidates {
			fmt.Print("  ")
			printCommitment(c)
		}
	case intent.OutcomeNotFound:
		_, _ = failMark.Printf("%s: %q\n", out.Message, out.Reason)
	case intent.OutcomeInfeasible:
		_, _ = failMark.Println(out.Reason)
		if out.Suggestion != nil {
			fmt.Printf("earliest alternative: %s\n", out.Suggestion.Format("15:04"))
		}
	default:
		fmt.Println(out.Message)
	}
	return nil
}

func printCommitment(c intent.CommitmentView) {
	when := "unscheduled"
	if c.ScheduledStart != nil {
		when = c.ScheduledStart.Format("Mon 15:04")
	}
	mark := " "
	if c.Completed {
		mark = "x"
	}
	fmt.Printf("[%s] %-28s %-10s %3dm", mark, c.Title, when, c.DurationMin)
	_, _ = faint.Printf("  %s %s\n", c.Category, shortID(c.ID.String()))
	if verbose && c.Notes != "" {
		_, _ = faint.Printf("    %s\n", c.Notes)
	}
}

// shortID truncates a UUID for compact listings; --verbose keeps it whole.
func shortID(id string) string {
	if verbose || len(id) <= 8 {
		return id
	}
	return id[:8]
}

func formatDay(t time.Time) string {
	return t.Format("2006-01-02")
}
