package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gabarit/internal/mathspec"
)

var previewCmd = &cobra.Command{
	Use:   "preview <spec.json>",
	Short: "Render the sujet and corrigé for an exercise spec",
	Long: `Generate one statement and render it twice: the sujet, with the elements
the visibility decision hides masked, and the corrigé, with every element
and the solution values.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("style", "", "Force a style")
	previewCmd.Flags().String("theme", "", "Theme tag, overrides the spec's theme")
	previewCmd.Flags().Bool("sujet-only", false, "Do not render the corrigé")
}

func runPreview(cmd *cobra.Command, args []string) error {
	sujetOnly, _ := cmd.Flags().GetBool("sujet-only")

	spec, err := mathspec.ReadFile(args[0])
	if err != nil {
		return err
	}
	opts, err := generateOptions(cmd)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stmt, err := a.Statements.Generate(cmd.Context(), spec, opts)
	if err != nil {
		return err
	}

	r := renderer(cmd)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, r.Sujet(stmt, spec))
	if !sujetOnly {
		fmt.Fprintln(out, r.Corrige(stmt, spec))
	}
	return nil
}
