package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leonardcser/xai-web-search/internal/livesearch"
	"github.com/leonardcser/xai-web-search/internal/logger"
	"github.com/leonardcser/xai-web-search/internal/ui"
)

var searchFlags struct {
	mode       string
	sources    string
	fromDate   string
	toDate     string
	maxResults int
	citations  bool
	plain      bool
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Run a single live search and print the answer",
	Example: `  xai-web-search search what changed in Go 1.25
  xai-web-search search "SpaceX launch schedule" --sources x,news --citations`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.mode, "mode", "", "Search mode: auto, on or off")
	f.StringVar(&searchFlags.sources, "sources", "", "Comma or space separated sources: web, news, x, rss")
	f.StringVar(&searchFlags.fromDate, "from-date", "", "Earliest date, YYYY-MM-DD")
	f.StringVar(&searchFlags.toDate, "to-date", "", "Latest date, YYYY-MM-DD")
	f.IntVar(&searchFlags.maxResults, "max-results", 0, "Maximum number of search results to consider")
	f.BoolVar(&searchFlags.citations, "citations", false, "Ask for and print source citations")
	f.BoolVar(&searchFlags.plain, "plain", false, "Print plain text instead of styled markdown")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := initLogger(false); err != nil {
		return err
	}
	query := strings.Join(args, " ")
	params := searchParams(cmd.Flags())
	logger.Infof("CLI search: %q (%d params)", query, len(params))

	res, err := newSearchClient().Search(cmd.Context(), query, cfg.Search(), params)
	if err != nil {
		return err
	}
	return ui.NewRenderer(cmd.OutOrStdout(), searchFlags.plain).Render(res)
}

// searchParams forwards only the flags the user actually set, so unset
// flags never override upstream defaults.
func searchParams(flags *pflag.FlagSet) []livesearch.Pair {
	var pairs []livesearch.Pair
	add := func(flag, key string, value any) {
		if flags.Changed(flag) {
			pairs = append(pairs, livesearch.Pair{Key: key, Value: value})
		}
	}
	add("mode", livesearch.ParamMode, searchFlags.mode)
	add("sources", livesearch.ParamSources, searchFlags.sources)
	add("from-date", livesearch.ParamFromDate, searchFlags.fromDate)
	add("to-date", livesearch.ParamToDate, searchFlags.toDate)
	add("max-results", livesearch.ParamMaxSearchResults, searchFlags.maxResults)
	add("citations", livesearch.ParamReturnCitations, searchFlags.citations)
	return pairs
}
