package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gabarit/internal/mathspec"
	"github.com/abhisek/gabarit/internal/statement"
	"github.com/abhisek/gabarit/internal/style"
)

var generateCmd = &cobra.Command{
	Use:   "generate <spec.json>",
	Short: "Generate statements for an exercise spec",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("style", "", "Force a style (default: random, avoiding recent ones)")
	f.String("theme", "", "Theme tag, overrides the spec's theme")
	f.IntP("count", "n", 1, "Number of statements to generate")
	f.Bool("json", false, "Print statements as JSON lines")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	asJSON, _ := cmd.Flags().GetBool("json")

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

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	var texts []string
	for range max(count, 1) {
		stmt, err := a.Statements.Generate(cmd.Context(), spec, opts)
		if err != nil {
			return err
		}
		texts = append(texts, stmt.Text)
		if asJSON {
			if err := enc.Encode(stmt); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "[%s/%s] %s\n", stmt.Style, stmt.Source, stmt.Text)
	}

	if count > 1 && !asJSON {
		fmt.Fprintf(out, "variabilité : %.2f\n", style.VariabilityScore(texts))
	}
	return nil
}

func generateOptions(cmd *cobra.Command) (statement.Options, error) {
	var opts statement.Options
	if v, _ := cmd.Flags().GetString("style"); v != "" {
		st, ok := style.Parse(v)
		if !ok {
			return opts, fmt.Errorf("unknown style %q (known: %v)", v, style.All())
		}
		opts.Style = st
	}
	opts.Theme, _ = cmd.Flags().GetString("theme")
	return opts, nil
}
