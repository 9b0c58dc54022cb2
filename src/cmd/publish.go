package cmd

import (
	"errors"
	"os"
	"path"

	"github.com/spf13/cobra"
)

var errNoBucket = errors.New("s3.bucket (or --bucket) is required")

func newPublishCommand(app *App) *cobra.Command {
	var exportsDir, bucket, prefix string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload records, images and exports to S3",
		Long:  "Upload the data directory, the public directory and the exports directory to the configured bucket, under <prefix>/data, <prefix>/public and <prefix>/exports.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bucket == "" {
				bucket = app.Config.S3.Bucket
			}
			if prefix == "" {
				prefix = app.Config.S3.Prefix
			}
			if bucket == "" {
				return errNoBucket
			}
			client, err := app.S3(cmd.Context())
			if err != nil {
				return err
			}
			dirs := []struct{ dir, key string }{
				{app.Config.Data.Dir, "data"},
				{app.Config.Data.PublicDir, "public"},
				{exportsDir, "exports"},
			}
			total := 0
			for _, d := range dirs {
				if _, err := os.Stat(d.dir); err != nil {
					app.Sugar.Infof("Skipping %s: %s", d.dir, err)
					continue
				}
				count, err := client.UploadDir(cmd.Context(), d.dir, bucket, path.Join(prefix, d.key))
				if err != nil {
					return err
				}
				total += count
			}
			app.Sugar.Infof("Published %d files to s3://%s/%s", total, bucket, prefix)
			return nil
		},
	}
	cmd.Flags().StringVar(&exportsDir, "exports-dir", "exports", "Directory written by export")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Target bucket (default s3.bucket)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default s3.prefix)")
	return cmd
}
