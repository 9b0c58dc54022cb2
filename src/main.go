package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/viper"

	"github.com/BielosX/wombat/poke-data/src/batch"
	"github.com/BielosX/wombat/poke-data/src/cmd"
	"github.com/BielosX/wombat/poke-data/src/pipeline"
	"github.com/BielosX/wombat/poke-data/src/store"
)

var errUnknownHandler = errors.New("unknown handler")

// startLambda serves the handler named by _HANDLER. Configuration comes from
// POKEDATA_* variables; BUCKET_NAME is accepted for the target bucket.
func startLambda(handler string) error {
	app, err := cmd.NewApp(viper.New(), "")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	defer func() { _ = app.Close() }()

	h, err := newHandler(app, handler)
	if err != nil {
		app.Sugar.Errorf("Cannot start handler %s: %s", handler, err)
		return err
	}
	lambda.Start(h)
	return nil
}

func newHandler(app *cmd.App, handler string) (any, error) {
	sugar := app.Sugar
	switch handler {
	case "scheduler":
		return func(request batch.ScheduleRequest) ([]batch.Batch, error) {
			return batch.Schedule(sugar, request)
		}, nil
	case "scraper":
		bucket := app.Config.S3.Bucket
		if bucket == "" {
			bucket = os.Getenv("BUCKET_NAME")
		}
		s3Client, err := app.S3(context.Background())
		if err != nil {
			return nil, fmt.Errorf("loading SDK config: %w", err)
		}
		api, err := app.Client()
		if err != nil {
			return nil, fmt.Errorf("creating PokeAPI client: %w", err)
		}
		newStep := func(s *store.Store) pipeline.Step {
			return app.Fetcher(api, s).Fetch
		}
		scraper := batch.NewScraper(sugar, app.Driver("Fetching"), newStep, s3Client, bucket, app.Config.S3.Prefix)
		return scraper.Handle, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownHandler, handler)
	}
}

func main() {
	if handler := os.Getenv("_HANDLER"); handler != "" {
		if err := startLambda(handler); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
