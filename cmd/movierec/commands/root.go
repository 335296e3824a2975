package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"movierec/internal/config"
	"movierec/internal/logging"
)

var (
	// Global flags
	cfgFile       string
	catalogSource string
	logLevel      string
	outputJSON    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "movierec",
	Short: "Content-based movie recommendations",
	Long: `movierec recommends movies with similar synopses.

The catalog is a CSV/TSV file or SQLite table with title, overview and an
optional poster column. Synopses are vectorised with TF-IDF and ranked by
cosine similarity.

Examples:
  # Run the HTTP API
  movierec serve --catalog movies.csv

  # Recommend from the command line
  movierec recommend "The Matrix" -n 3

  # Pipe results to jq
  movierec search star --json | jq '.movies[].title'

  # Chat in the terminal
  movierec chat
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.config/movierec/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogSource, "catalog", "", "catalog source, overrides catalog.source")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides logging.level")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration, applies flag overrides and
// initialises logging.
func loadConfig() (*config.AppConfig, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if cfgFile == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if catalogSource != "" {
		cfg.Catalog.Source = catalogSource
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	return cfg, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
