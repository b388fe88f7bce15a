package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// UpsertModel inserts model and, on a conflict over conflictColumns,
// overwrites every other mapped column with the excluded row.
// An empty update list turns the conflict into a no-op.
func UpsertModel(table string, model any, conflictColumns []string, returning ...string) (string, []any, error) {
	if len(conflictColumns) == 0 {
		return "", nil, fmt.Errorf("conflict columns are required")
	}
	cols, _, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}

	updates := make([]string, 0, len(cols))
	for _, col := range cols {
		if slices.Contains(conflictColumns, col) {
			continue
		}
		updates = append(updates, col+" = EXCLUDED."+col)
	}

	var suffix strings.Builder
	suffix.WriteString("ON CONFLICT (")
	suffix.WriteString(strings.Join(conflictColumns, ", "))
	suffix.WriteString(") ")
	if len(updates) == 0 {
		suffix.WriteString("DO NOTHING")
	} else {
		suffix.WriteString("DO UPDATE SET ")
		suffix.WriteString(strings.Join(updates, ", "))
	}
	if len(returning) > 0 {
		suffix.WriteString(" RETURNING ")
		suffix.WriteString(strings.Join(returning, ", "))
	}

	return InsertModel(table, model, suffix.String())
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
