package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from the db-tagged exported fields of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// UpsertModel builds an INSERT that overwrites every non-key column on a
// conflict over keyCols, refreshes updated_at and returns whether the row
// was newly created.
func UpsertModel(table string, model any, keyCols ...string) (string, []any, error) {
	if len(keyCols) == 0 {
		return "", nil, fmt.Errorf("upsert requires conflict columns")
	}
	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}

	keys := make(map[string]struct{}, len(keyCols))
	for _, col := range keyCols {
		keys[col] = struct{}{}
	}
	sets := make([]string, 0, len(cols)+1)
	for _, col := range cols {
		if _, isKey := keys[col]; isKey {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	sets = append(sets, "updated_at = NOW()")

	suffix := fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s RETURNING (xmax = 0) AS created",
		strings.Join(keyCols, ", "), strings.Join(sets, ", "))
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

func modelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return cols, vals, nil
}
