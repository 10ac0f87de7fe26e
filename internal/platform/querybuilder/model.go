package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from the db-tagged exported fields of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return InsertModels(table, []any{model}, suffix)
}

// InsertModels builds a multi-row INSERT. Every model must share one type.
func InsertModels(table string, models []any, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}

	builder := InsertInto(table).Suffix(suffix)
	var firstType reflect.Type
	for i, model := range models {
		cols, vals, typ, err := columnsAndValues(model)
		if err != nil {
			return "", nil, err
		}
		if i == 0 {
			firstType = typ
			builder.Columns(cols...)
		} else if typ != firstType {
			return "", nil, fmt.Errorf("insert model %d has type %s, expected %s", i, typ, firstType)
		}
		builder.Values(vals...)
	}
	return builder.ToSQL()
}

// Columns lists the db columns of a model type, optionally qualified.
func Columns(model any, qualifier string) ([]string, error) {
	cols, _, _, err := columnsAndValues(model)
	if err != nil {
		return nil, err
	}
	if qualifier == "" {
		return cols, nil
	}
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		out = append(out, qualifier+"."+col)
	}
	return out, nil
}

// ExcludedSet renders "col = EXCLUDED.col" assignments for an upsert.
func ExcludedSet(columns ...string) string {
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, col+" = EXCLUDED."+col)
	}
	return strings.Join(parts, ", ")
}

func columnsAndValues(model any) ([]string, []any, reflect.Type, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, typ, nil
}
