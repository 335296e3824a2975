package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"movierec/internal/api"
	"movierec/internal/summarizer"
)

// loglineWidth bounds the synopsis column of text output.
const loglineWidth = 60

var (
	recommendLimit int
	searchLimit    int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <title>",
	Short: "Print movies similar to a title",
	Long: `Print movies whose synopses are most similar to the given title.

The title is matched case-insensitively, exactly first and then as a
substring; the first catalog match wins.

Example:
  movierec recommend the matrix -n 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		limit := recommendLimit
		if limit == 0 {
			limit = cfg.Recommend.DefaultLimit
		}
		if limit < 1 || limit > cfg.Recommend.MaxLimit {
			return fmt.Errorf("-n must be between 1 and %d", cfg.Recommend.MaxLimit)
		}
		engine, err := buildEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		res, err := engine.Recommend(strings.Join(args, " "), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if outputJSON {
			return writeJSON(out, res)
		}
		fmt.Fprintf(out, "Because you liked %q:\n\n", res.RequestedMovie)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		sum := summarizer.NewFrequencySummarizer()
		fmt.Fprintln(tw, "#\tSCORE\tTITLE\tSYNOPSIS")
		for i, r := range res.Recommendations {
			fmt.Fprintf(tw, "%d\t%.3f\t%s\t%s\n", i+1, r.SimilarityScore, r.Title, sum.Logline(r.Overview, loglineWidth))
		}
		return tw.Flush()
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find movies by title substring",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		limit := searchLimit
		if limit == 0 {
			limit = cfg.Search.DefaultLimit
		}
		if limit < 1 || limit > cfg.Search.MaxLimit {
			return fmt.Errorf("-n must be between 1 and %d", cfg.Search.MaxLimit)
		}
		engine, err := buildEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		movies, err := engine.Search(query, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if outputJSON {
			return writeJSON(out, &api.SearchResponse{Query: query, Count: len(movies), Movies: movies})
		}
		if len(movies) == 0 {
			fmt.Fprintf(out, "No movies matching %q.\n", query)
			return nil
		}
		sum := summarizer.NewFrequencySummarizer()
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, m := range movies {
			fmt.Fprintf(tw, "%s\t%s\n", m.Title, sum.Logline(m.Overview, loglineWidth))
		}
		return tw.Flush()
	},
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", 0, "number of recommendations (default from config)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
}
