package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizanapp/mizan/internal/planner/application/intent"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch [file]",
	Short: "Dispatch a structured intent payload",
	Long: `Dispatch a JSON intent, the same payload shape the assistant's
language layer produces. Reads from the given file, or stdin when the
argument is "-" or omitted.

Examples:
  echo '{"kind":"query_free_windows"}' | mizan dispatch
  mizan dispatch intent.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		var (
			payload []byte
			err     error
		)
		if len(args) == 0 || args[0] == "-" {
			payload, err = io.ReadAll(os.Stdin)
		} else {
			payload, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read intent: %w", err)
		}

		in, err := intent.Parse(payload)
		if err != nil {
			return err
		}

		out, err := app.Dispatcher.Dispatch(cmd.Context(), in)
		if err != nil {
			return err
		}
		return printOutcome(out)
	},
}

func init() {
	AddCommand(dispatchCmd)
}
