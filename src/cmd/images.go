package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/poke-data/src/images"
	"github.com/BielosX/wombat/poke-data/src/ranges"
)

var errNoIds = errors.New("at least one id or range is required")

func newImagesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "images <ids...>",
		Short: "Download sprites and point records at the local copies",
		Long: "Download every artwork slot of the given records into the public directory and rewrite the record to the local path.\n\n" +
			"Ids are N, A-B or A-B:S tokens.",
		Example: "  poke-data images 1-151\n  poke-data images 1-10 25 100-200:10",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errNoIds
			}
			ids, err := ranges.Parse(args)
			if err != nil {
				return err
			}
			downloader := images.NewDownloader(app.Sugar, app.Store(), images.Options{
				PublicDir:     app.Config.Data.PublicDir,
				SpriteBaseUrl: app.Config.Sprites.BaseUrl,
				Timeout:       app.Config.API.Timeout,
			})
			counters, err := app.Driver("Processing").Run(cmd.Context(), ids, downloader.Process)
			counters.WriteSummary(cmd.OutOrStdout(), "Images")
			return err
		},
	}
}
