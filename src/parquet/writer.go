// Package parquet buffers exported rows as an in-memory parquet file.
package parquet

import (
	"io"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"
)

const (
	InitialCapacity = 4 * 1024 * 1024
	parallelism     = 4
)

// TableWriter appends Pokemon rows to a parquet file held in memory.
type TableWriter struct {
	file  *buffer.BufferFile
	pw    *writer.ParquetWriter
	rows  int
	sugar *zap.SugaredLogger
}

func NewTableWriter(sugar *zap.SugaredLogger) (*TableWriter, error) {
	file := buffer.NewBufferFileCapacity(InitialCapacity)
	pw, err := writer.NewParquetWriter(file, new(Pokemon), parallelism)
	if err != nil {
		return nil, err
	}
	return &TableWriter{file: file, pw: pw, sugar: sugar}, nil
}

func (t *TableWriter) Append(row *Pokemon) error {
	if err := t.pw.Write(row); err != nil {
		return err
	}
	t.rows++
	return nil
}

func (t *TableWriter) Rows() int {
	return t.rows
}

// Close writes the footer and rewinds the file for Reader. No rows may be
// appended afterwards.
func (t *TableWriter) Close() error {
	if err := t.pw.WriteStop(); err != nil {
		return err
	}
	t.sugar.Debugf("Parquet table closed with %d rows, %d bytes", t.rows, t.Size())
	_, err := t.file.Seek(0, io.SeekStart)
	return err
}

func (t *TableWriter) Size() int {
	return len(t.file.Bytes())
}

func (t *TableWriter) Reader() io.Reader {
	return t.file
}
