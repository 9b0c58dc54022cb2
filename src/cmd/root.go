// Package cmd holds the poke-data command line.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flagKeys = map[string]string{
	"data-dir":   "data.dir",
	"public-dir": "data.public_dir",
	"api-url":    "api.base_url",
	"delay":      "api.delay",
	"cache-dir":  "cache.dir",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// newRootCommand returns the root command with every subcommand attached.
// app is loaded before any subcommand runs.
func newRootCommand(app *App) *cobra.Command {
	v := viper.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "poke-data",
		Short:        "poke-data - builds the local Pokémon dataset from PokeAPI",
		Long:         "poke-data - builds the local Pokémon dataset from PokeAPI\n\nFetches and flattens PokeAPI records into one JSON file per Pokémon plus index.json, adds localized names, downloads sprites and exports or publishes the result.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := NewApp(v, configFile)
			if err != nil {
				return fmt.Errorf("incorrect configuration:\n%w", err)
			}
			*app = *loaded
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default ./poke-data.yaml)")
	flags.String("data-dir", "", "Directory of the per-Pokémon JSON files (default src/data/pokemon)")
	flags.String("public-dir", "", "Directory images are stored under (default public)")
	flags.String("api-url", "", "PokeAPI base url")
	flags.Duration("delay", 0, "Pause between consecutive ids (default 600ms)")
	flags.String("cache-dir", "", "Persist API responses in this badger directory")
	flags.StringP("log-level", "l", "", "The log level. Valid levels are debug, info, warn, and error.")
	flags.String("log-format", "", "console or json")
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %s", name, err))
		}
	}

	rootCmd.AddCommand(
		newFetchCommand(app),
		newEnrichCommand(app),
		newImagesCommand(app),
		newExportCommand(app),
		newPublishCommand(app),
	)
	return rootCmd
}

// Execute runs the command line and releases whatever the command opened,
// whether or not it succeeded.
func Execute(ctx context.Context) error {
	app := &App{}
	err := newRootCommand(app).ExecuteContext(ctx)
	if app.Sugar != nil {
		err = errors.Join(err, app.Close())
	}
	return err
}
