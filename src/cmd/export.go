package cmd

import (
	"github.com/spf13/cobra"

	"github.com/BielosX/wombat/poke-data/src/export"
)

func newExportCommand(app *App) *cobra.Command {
	var out, name string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored records as parquet and csv tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := app.Store()
			ids, err := s.IDs()
			if err != nil {
				return err
			}
			result, err := export.Export(app.Sugar, s, ids)
			if err != nil {
				return err
			}
			paths, err := result.WriteFiles(out, name)
			if err != nil {
				return err
			}
			app.Sugar.Infof("Exported %d rows (%d skipped) to %v", result.Rows, result.Skipped, paths)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "exports", "Output directory")
	cmd.Flags().StringVar(&name, "name", "pokemon", "Base name of the output files")
	return cmd
}
