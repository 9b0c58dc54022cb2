package utils

import (
	"io"
	"reflect"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// GetFields lists the exported fields of the struct type of t, in
// declaration order.
func GetFields(t any) []reflect.StructField {
	typeOf := reflect.TypeOf(t)
	if typeOf.Kind() == reflect.Pointer {
		typeOf = typeOf.Elem()
	}
	var result []reflect.StructField
	for i := 0; i < typeOf.NumField(); i++ {
		if field := typeOf.Field(i); field.IsExported() {
			result = append(result, field)
		}
	}
	return result
}

// ParquetTagToKeyValue splits a parquet-go struct tag such as
// "name=id, type=INT32" into its properties.
func ParquetTagToKeyValue(tag string) map[string]string {
	result := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || key == "" {
			continue
		}
		result[key] = value
	}
	return result
}

// ColumnNames returns the parquet column name of every tagged field of t.
func ColumnNames(t any) []string {
	var names []string
	for _, field := range GetFields(t) {
		if name := ParquetTagToKeyValue(field.Tag.Get("parquet"))["name"]; name != "" {
			names = append(names, name)
		}
	}
	return names
}

func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}
