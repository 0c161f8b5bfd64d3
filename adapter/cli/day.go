package cli

import (
	"github.com/spf13/cobra"

	"github.com/mizanapp/mizan/internal/planner/application/intent"
	"github.com/mizanapp/mizan/internal/planner/strategies"
)

var (
	dayDate       string
	dayFutureOnly bool
	dayStrategy   string
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Inspect and rearrange a day",
}

var dayAnchorsCmd = &cobra.Command{
	Use:   "anchors",
	Short: "Show the day's prayer anchors",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntent(cmd, intent.Intent{
			Kind: intent.KindQueryAnchors,
			Date: dayDate,
		})
	},
}

var dayFreeCmd = &cobra.Command{
	Use:   "free",
	Short: "Show the day's free windows",
	Long: `Show the free windows between prayer anchors and scheduled
commitments. With --remaining only windows from now on are reported,
starting at the next quarter-hour.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntent(cmd, intent.Intent{
			Kind:       intent.KindQueryFreeWindows,
			Date:       dayDate,
			FutureOnly: dayFutureOnly,
		})
	},
}

var dayRearrangeCmd = &cobra.Command{
	Use:   "rearrange",
	Short: "Rearrange the day's open commitments",
	Long: `Rearrange the day's not-yet-completed commitments with one of
the strategies: ` + joinNames() + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntent(cmd, intent.Intent{
			Kind:     intent.KindRearrangeDay,
			Date:     dayDate,
			Strategy: dayStrategy,
		})
	},
}

func joinNames() string {
	names := strategies.Names()
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

func init() {
	dayCmd.PersistentFlags().StringVar(&dayDate, "date", "", "day to inspect (2006-01-02, default today)")
	dayFreeCmd.Flags().BoolVar(&dayFutureOnly, "remaining", false, "only windows from now on")
	dayRearrangeCmd.Flags().StringVarP(&dayStrategy, "strategy", "s", "", "rearrangement strategy")

	dayCmd.AddCommand(dayAnchorsCmd, dayFreeCmd, dayRearrangeCmd)
	AddCommand(dayCmd)
}
