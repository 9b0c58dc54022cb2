package cmd

import (
	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/poke-data/src/enrich"
	"github.com/BielosX/wombat/poke-data/src/ranges"
)

func newEnrichCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich [ids...]",
		Short: "Add localized names to stored records",
		Long:  "Add the language to name mapping from the species endpoint to every stored record, or only the given ids. Records that already have names are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Store()
			var ids []int
			var err error
			if len(args) > 0 {
				ids, err = ranges.Parse(args)
			} else {
				ids, err = s.IDs()
			}
			if err != nil {
				return err
			}
			api, err := app.Client()
			if err != nil {
				return err
			}
			enricher := enrich.NewEnricher(app.Sugar, s, api)
			app.Sugar.Infof("Found %d Pokemon files to process", len(ids))
			counters, err := app.Driver("Enriching").Run(cmd.Context(), ids, enricher.Enrich)
			counters.WriteSummary(cmd.OutOrStdout(), "Enrichment")
			return err
		},
	}
}
