package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/poke-data/src/ranges"
)

const (
	defaultFirstId = 1
	defaultLastId  = 1025
)

func newFetchCommand(app *App) *cobra.Command {
	var start, end int
	cmd := &cobra.Command{
		Use:   "fetch [ids...]",
		Short: "Fetch, transform and index Pokémon",
		Long: "Fetch every id from PokeAPI, write one flattened JSON record per Pokémon and variety and add base Pokémon to index.json.\n\n" +
			"Ids are N, A-B or A-B:S tokens; without any, --start to --end is fetched.",
		Example: "  poke-data fetch --start 1 --end 151\n  poke-data fetch 25 133-136 10033-10040:2",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := idsFromArgs(args, start, end)
			if err != nil {
				return err
			}
			api, err := app.Client()
			if err != nil {
				return err
			}
			fetcher := app.Fetcher(api, app.Store())
			app.Sugar.Infof("Fetching %d Pokémon into %s", len(ids), app.Config.Data.Dir)
			counters, err := app.Driver("Fetching").Run(cmd.Context(), ids, fetcher.Fetch)
			counters.WriteSummary(cmd.OutOrStdout(), "Fetch")
			return err
		},
	}
	cmd.Flags().IntVar(&start, "start", defaultFirstId, "First id when no ids are given")
	cmd.Flags().IntVar(&end, "end", defaultLastId, "Last id when no ids are given")
	return cmd
}

func idsFromArgs(args []string, start, end int) ([]int, error) {
	if len(args) > 0 {
		return ranges.Parse(args)
	}
	if start <= 0 || end < start {
		return nil, fmt.Errorf("invalid id range %d-%d", start, end)
	}
	return ranges.Span(start, end)
}
