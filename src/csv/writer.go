// Package csv writes exported rows with the same columns as the parquet
// table, taking the header from the parquet struct tags.
package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"reflect"

	"github.com/BielosX/wombat/poke-data/src/parquet"
	"github.com/BielosX/wombat/poke-data/src/utils"
)

type TableWriter struct {
	out    *bytes.Buffer
	cw     *csv.Writer
	fields []reflect.StructField
}

func NewTableWriter() *TableWriter {
	out := new(bytes.Buffer)
	return &TableWriter{
		out:    out,
		cw:     csv.NewWriter(out),
		fields: utils.GetFields(parquet.Pokemon{}),
	}
}

func (t *TableWriter) WriteHeader() error {
	return t.cw.Write(utils.ColumnNames(parquet.Pokemon{}))
}

func (t *TableWriter) Append(row parquet.Pokemon) error {
	value := reflect.ValueOf(row)
	record := make([]string, len(t.fields))
	for i, field := range t.fields {
		record[i] = fmt.Sprint(value.FieldByIndex(field.Index).Interface())
	}
	return t.cw.Write(record)
}

func (t *TableWriter) Close() error {
	t.cw.Flush()
	return t.cw.Error()
}

func (t *TableWriter) Size() int {
	return t.out.Len()
}

func (t *TableWriter) Reader() io.Reader {
	return bytes.NewReader(t.out.Bytes())
}
