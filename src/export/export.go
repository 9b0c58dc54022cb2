// Package export turns stored records into parquet and csv tables.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/csv"
	"github.com/BielosX/wombat/poke-data/src/parquet"
	"github.com/BielosX/wombat/poke-data/src/store"
)

type Result struct {
	Rows    int
	Skipped int
	parquet *parquet.TableWriter
	csv     *csv.TableWriter
}

// Export writes one row per id. Records that fail to load are logged and
// left out.
func Export(sugar *zap.SugaredLogger, s *store.Store, ids []int) (*Result, error) {
	parquetTable, err := parquet.NewTableWriter(sugar)
	if err != nil {
		sugar.Errorf("Failed to create parquet writer: %s", err)
		return nil, err
	}
	csvTable := csv.NewTableWriter()
	if err := csvTable.WriteHeader(); err != nil {
		return nil, err
	}
	result := &Result{parquet: parquetTable, csv: csvTable}
	for _, id := range ids {
		record, err := s.Load(id)
		if err != nil {
			sugar.Warnf("Skipping #%d: %s", id, err)
			result.Skipped++
			continue
		}
		row := parquet.ToPokemon(record)
		if err := parquetTable.Append(&row); err != nil {
			sugar.Errorf("Error writing #%d to parquet: %s", id, err)
			return nil, err
		}
		if err := csvTable.Append(row); err != nil {
			sugar.Errorf("Error writing #%d to csv: %s", id, err)
			return nil, err
		}
		result.Rows++
	}
	if err := parquetTable.Close(); err != nil {
		return nil, err
	}
	if err := csvTable.Close(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Result) Parquet() io.Reader {
	return r.parquet.Reader()
}

func (r *Result) Csv() io.Reader {
	return r.csv.Reader()
}

func (r *Result) ParquetSize() int {
	return r.parquet.Size()
}

func (r *Result) CsvSize() int {
	return r.csv.Size()
}

// WriteFiles stores the tables as <dir>/<name>.parquet and <dir>/<name>.csv.
func (r *Result) WriteFiles(dir, name string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	files := []struct {
		path   string
		reader io.Reader
	}{
		{filepath.Join(dir, name+".parquet"), r.Parquet()},
		{filepath.Join(dir, name+".csv"), r.Csv()},
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if err := writeFile(f.path, f.reader); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.path, err)
		}
		paths = append(paths, f.path)
	}
	return paths, nil
}

func writeFile(path string, r io.Reader) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
