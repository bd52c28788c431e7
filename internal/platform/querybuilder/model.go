package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// taggedField is a struct field mapped to a column through its db tag.
type taggedField struct {
	index  int
	column string
}

var fieldCache sync.Map // reflect.Type -> []taggedField

func taggedFields(typ reflect.Type) []taggedField {
	if cached, ok := fieldCache.Load(typ); ok {
		return cached.([]taggedField)
	}

	fields := make([]taggedField, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		column, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		column = strings.TrimSpace(column)
		if column == "" || column == "-" {
			continue
		}
		fields = append(fields, taggedField{index: i, column: column})
	}

	actual, _ := fieldCache.LoadOrStore(typ, fields)
	return actual.([]taggedField)
}

func structValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model must be struct, got %s", value.Kind())
	}
	return value, nil
}

// Columns lists the db-tagged columns of a struct in field order.
func Columns(model any) ([]string, error) {
	value, err := structValue(model)
	if err != nil {
		return nil, err
	}
	fields := taggedFields(value.Type())
	if len(fields) == 0 {
		return nil, fmt.Errorf("model %s has no db columns", value.Type())
	}

	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.column
	}
	return cols, nil
}

// MustColumns is Columns for package-level column lists.
func MustColumns(model any) []string {
	cols, err := Columns(model)
	if err != nil {
		panic(err)
	}
	return cols
}

// Values returns the db-tagged field values in the same order as Columns.
func Values(model any) ([]any, error) {
	value, err := structValue(model)
	if err != nil {
		return nil, err
	}
	fields := taggedFields(value.Type())
	if len(fields) == 0 {
		return nil, fmt.Errorf("model %s has no db columns", value.Type())
	}

	vals := make([]any, len(fields))
	for i, f := range fields {
		vals[i] = value.Field(f.index).Interface()
	}
	return vals, nil
}

// InsertModel builds a single-row insert from a db-tagged struct.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, err := Columns(model)
	if err != nil {
		return "", nil, err
	}
	vals, err := Values(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}
