package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vpath/internal/engine"
)

var (
	watchAll      bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <uri>",
	Short: "Re-resolve a URI whenever registered directories change",
	Long: `Resolve a URI, then watch every registered directory and resolve it again
whenever files are created, removed or renamed. Stops on Ctrl-C.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeURI,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		var (
			last     string
			reported bool
		)
		return eng.Watch(ctx, engine.WatchRequest{
			URI:      args[0],
			All:      watchAll,
			Debounce: watchDebounce,
		}, func(result *engine.ResolveResult) error {
			key := strings.Join(result.Paths, "\n")
			if reported && key == last {
				return nil
			}
			last, reported = key, true

			if jsonOutput {
				return outputJSON(out, result)
			}
			if !result.Found {
				PrintWarning(out, "no match for "+result.URI)
				return nil
			}
			for _, p := range result.Paths {
				PrintSuccess(out, p)
			}
			return nil
		})
	},
}

func init() {
	watchCmd.Flags().BoolVarP(&watchAll, "all", "a", false, "Report every match in priority order")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "Quiet period before re-resolving")
}
