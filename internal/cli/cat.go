package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/vpath/internal/engine"
)

var catCmd = &cobra.Command{
	Use:               "cat <uri>",
	Short:             "Print the contents of the file a URI resolves to",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeURI,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Cat(cmd.Context(), engine.CatRequest{URI: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}
		_, err = cmd.OutOrStdout().Write(result.Data)
		return err
	},
}
