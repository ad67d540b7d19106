package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/gabarit/internal/app"
	"github.com/abhisek/gabarit/internal/render"
)

var rootCmd = &cobra.Command{
	Use:   "gabarit",
	Short: "Exercise statements from templates, with answer-safe figures",
	Long: `gabarit turns structured math exercise specs into French statements.

Templates come from authored gabarit files first, then from the template
cache, and only then from the configured LLM fallback. Each statement comes
with the list of figure elements the sujet must hide.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("gabarits", "", "Gabarit directory (overrides GABARIT_DIR)")
	pf.String("cache", "", "Template cache snapshot file (overrides GABARIT_CACHE_FILE)")
	pf.String("db", "", "Path to SQLite database file (overrides GABARIT_DB)")
	pf.Bool("no-color", false, "Disable colored output (also honors NO_COLOR)")
	pf.BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(gabaritsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(visibilityCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration: flags, then GABARIT_* env vars,
// then defaults.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	cfg, err := app.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if v, _ := cmd.Flags().GetString("gabarits"); v != "" {
		cfg.GabaritDir = v
	}
	if v, _ := cmd.Flags().GetString("cache"); v != "" {
		cfg.CacheFile = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg, nil
}

// openApp builds the service graph. Callers must Close it.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cmd.Context(), cfg)
}

func renderer(cmd *cobra.Command) *render.Renderer {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return render.New(!noColor && os.Getenv("NO_COLOR") == "", 0)
}
