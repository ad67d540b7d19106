package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gabarit/internal/mathspec"
	"github.com/abhisek/gabarit/internal/visibility"
)

var visibilityCmd = &cobra.Command{
	Use:   "visibility <spec.json>",
	Short: "Show which figure elements the sujet must hide",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		asJSON, _ := cmd.Flags().GetBool("json")

		spec, err := mathspec.ReadFile(args[0])
		if err != nil {
			return err
		}
		if kind == "" {
			kind = spec.Kind
		}

		d := visibility.Decide(kind, visibility.MetadataFromSpec(spec))
		if asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(d)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderer(cmd).Decision(d))
		return nil
	},
}

func init() {
	visibilityCmd.Flags().String("kind", "", "Pedagogical kind, overrides the spec's type_exercice")
	visibilityCmd.Flags().Bool("json", false, "Print the decision as JSON")
}
