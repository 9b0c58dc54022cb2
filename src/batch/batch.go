// Package batch implements the two lambda handlers: the scheduler splits an
// id range into batches, the scraper fetches one batch and uploads the
// results.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/export"
	"github.com/BielosX/wombat/poke-data/src/pipeline"
	"github.com/BielosX/wombat/poke-data/src/ranges"
	"github.com/BielosX/wombat/poke-data/src/store"
)

type ScheduleRequest struct {
	StartId   int `json:"startId"`
	EndId     int `json:"endId"`
	BatchSize int `json:"batchSize"`
}

type Batch struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type ScraperResult struct {
	ParquetFileName string `json:"parquetFileName,omitempty"`
	CsvFileName     string `json:"csvFileName,omitempty"`
	IndexFileName   string `json:"indexFileName,omitempty"`
	Successful      int    `json:"successful"`
	Skipped         int    `json:"skipped"`
	Failed          int    `json:"failed"`
}

var ErrInvalidRequest = errors.New("invalid schedule request")

// Schedule splits [StartId, EndId] into consecutive inclusive batches of at
// most BatchSize ids.
func Schedule(sugar *zap.SugaredLogger, request ScheduleRequest) ([]Batch, error) {
	sugar.Infof("Starting Schedule Tasks Handler, startId: %d, endId: %d, batchSize: %d",
		request.StartId,
		request.EndId,
		request.BatchSize)
	if request.BatchSize <= 0 || request.BatchSize > ranges.MaxSpan ||
		request.StartId <= 0 || request.EndId < request.StartId {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidRequest, request)
	}
	count := (request.EndId-request.StartId)/request.BatchSize + 1
	if count > ranges.MaxSpan {
		return nil, fmt.Errorf("%w: %d batches", ErrInvalidRequest, count)
	}
	result := make([]Batch, count)
	for i := range result {
		start := request.StartId + i*request.BatchSize
		result[i] = Batch{Start: start, End: start + min(request.BatchSize-1, request.EndId-start)}
	}
	return result, nil
}

type Uploader interface {
	PutFile(ctx context.Context, reader io.Reader, bucket, key string) error
	UploadDir(ctx context.Context, dir, bucket, prefix string, skip ...string) (int, error)
}

// StepFactory builds the fetch step writing into s.
type StepFactory func(s *store.Store) pipeline.Step

type Scraper struct {
	driver   *pipeline.Driver
	newStep  StepFactory
	uploader Uploader
	bucket   string
	prefix   string
	sugar    *zap.SugaredLogger
}

func NewScraper(sugar *zap.SugaredLogger, driver *pipeline.Driver, newStep StepFactory, uploader Uploader, bucket, prefix string) *Scraper {
	return &Scraper{
		driver:   driver,
		newStep:  newStep,
		uploader: uploader,
		bucket:   bucket,
		prefix:   prefix,
		sugar:    sugar,
	}
}

// Handle fetches every id of the batch into a scratch directory, then
// uploads the records and their parquet and csv export. The batch's partial
// index goes to its own key so concurrent batches never overwrite each
// other's index.
func (s *Scraper) Handle(ctx context.Context, b Batch) (*ScraperResult, error) {
	s.sugar.Infof("Starting Scraping Handler, start: %d end: %d", b.Start, b.End)
	dir, err := os.MkdirTemp("", "poke-data-batch")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	st := store.New(dir)

	ids, err := ranges.Span(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	counters, err := s.driver.Run(ctx, ids, s.newStep(st))
	if err != nil {
		return nil, err
	}
	result := &ScraperResult{
		Successful: counters.Successful,
		Skipped:    counters.Skipped,
		Failed:     counters.Failed,
	}
	ids, err = st.IDs()
	if err != nil || len(ids) == 0 {
		s.sugar.Infof("Nothing fetched for %d-%d", b.Start, b.End)
		return result, nil
	}

	exported, err := export.Export(s.sugar, st, ids)
	if err != nil {
		return nil, err
	}
	parquetFileName := path.Join(s.prefix, "pokemons", fmt.Sprintf("%d_%d.parquet", b.Start, b.End))
	csvFileName := path.Join(s.prefix, "pokemons", fmt.Sprintf("%d_%d.csv", b.Start, b.End))
	s.sugar.Infof("Sending parquet file of size %d to S3", exported.ParquetSize())
	if err := s.uploader.PutFile(ctx, exported.Parquet(), s.bucket, parquetFileName); err != nil {
		return nil, err
	}
	s.sugar.Infof("Sending CSV file of size %d to S3", exported.CsvSize())
	if err := s.uploader.PutFile(ctx, exported.Csv(), s.bucket, csvFileName); err != nil {
		return nil, err
	}
	dataPrefix := path.Join(s.prefix, "data")
	if _, err := s.uploader.UploadDir(ctx, dir, s.bucket, dataPrefix, store.IndexFileName); err != nil {
		return nil, err
	}
	indexFileName := path.Join(dataPrefix, "index", fmt.Sprintf("%d_%d.json", b.Start, b.End))
	uploaded, err := s.uploadIndex(ctx, st, indexFileName)
	if err != nil {
		return nil, err
	}
	if uploaded {
		result.IndexFileName = indexFileName
	}
	result.ParquetFileName = parquetFileName
	result.CsvFileName = csvFileName
	return result, nil
}

func (s *Scraper) uploadIndex(ctx context.Context, st *store.Store, key string) (bool, error) {
	file, err := os.Open(st.IndexPath())
	if errors.Is(err, os.ErrNotExist) {
		s.sugar.Warnf("No index written to %s", st.Dir())
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer file.Close()
	s.sugar.Infof("Sending batch index to s3://%s/%s", s.bucket, key)
	if err := s.uploader.PutFile(ctx, file, s.bucket, key); err != nil {
		return false, err
	}
	return true, nil
}
