package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vpath/internal/engine"
)

var (
	resolveAll      bool
	resolveRelative bool
	resolveMissing  bool
	resolveDigest   bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <uri>",
	Short: "Print the physical path of a URI",
	Long: `Resolve a scheme://path URI to the physical path that wins.

With --all every match is printed in priority order. With --missing
candidates that do not exist yet are accepted, which shows where a new file
would be created. With --digest each file is printed after its SHA-256, so
overrides identical to the copy they shadow stand out. A URI without "://"
belongs to the file scheme.`,
	Example: `  vpath resolve theme://page.html
  vpath resolve --all --digest theme://css/site.css
  vpath resolve --missing --relative theme://new.html`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeURI,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Resolve(cmd.Context(), engine.ResolveRequest{
			URI:      args[0],
			All:      resolveAll,
			Relative: resolveRelative,
			Missing:  resolveMissing,
			Digest:   resolveDigest,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := outputJSON(out, result); err != nil {
				return err
			}
		} else {
			for _, p := range result.Paths {
				if !resolveDigest {
					PrintInfo(out, p)
					continue
				}
				digest, ok := result.Digests[p]
				if !ok {
					digest = "-"
				}
				PrintInfo(out, digest+"  "+p)
			}
		}

		if !result.Found {
			return fmt.Errorf("%w: %s", engine.ErrNotFound, args[0])
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVarP(&resolveAll, "all", "a", false, "Print every match in priority order")
	resolveCmd.Flags().BoolVarP(&resolveRelative, "relative", "r", false, "Print paths relative to the base directory")
	resolveCmd.Flags().BoolVarP(&resolveMissing, "missing", "m", false, "Accept candidates that do not exist")
	resolveCmd.Flags().BoolVar(&resolveDigest, "digest", false, "Print the SHA-256 of each matched file")
}
