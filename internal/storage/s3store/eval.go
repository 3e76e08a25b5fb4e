package s3store

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"construction-cms/internal/storage"
)

// In-memory evaluation of the shared query expressions. Semantics must
// match what gormstore compiles to SQL: case-insensitive contains,
// nil-pointer fields behave like NULL columns (Eq nil / Ne nil hit them,
// ordering comparisons never do).

func matches(fs *storage.FieldSet, item reflect.Value, e storage.Expr) (bool, error) {
	switch v := e.(type) {
	case storage.Eq:
		val, null, err := fieldValue(fs, item, v.Field)
		if err != nil {
			return false, err
		}
		if v.Value == nil {
			return null, nil
		}
		if null {
			return false, nil
		}
		return equalValues(val, v.Value)
	case storage.Ne:
		val, null, err := fieldValue(fs, item, v.Field)
		if err != nil {
			return false, err
		}
		if v.Value == nil {
			return !null, nil
		}
		if null {
			// SQL: col <> ? is unknown for NULL, so the row drops out.
			return false, nil
		}
		eq, err := equalValues(val, v.Value)
		return !eq, err
	case storage.Contains:
		val, null, err := fieldValue(fs, item, v.Field)
		if err != nil {
			return false, err
		}
		if null {
			return false, nil
		}
		s, ok := asString(val)
		if !ok {
			return false, fmt.Errorf("contains on non-string field %q", v.Field)
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(v.Value)), nil
	case storage.Lt:
		return ordered(fs, item, v.Field, v.Value, func(c int) bool { return c < 0 })
	case storage.Gt:
		return ordered(fs, item, v.Field, v.Value, func(c int) bool { return c > 0 })
	case storage.Or:
		for _, b := range v {
			ok, err := matches(fs, item, b)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case storage.And:
		for _, b := range v {
			ok, err := matches(fs, item, b)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, fmt.Errorf("unsupported query expression %T", e)
	}
}

func ordered(fs *storage.FieldSet, item reflect.Value, field string, rhs any, keep func(int) bool) (bool, error) {
	val, null, err := fieldValue(fs, item, field)
	if err != nil {
		return false, err
	}
	if null || rhs == nil {
		return false, nil
	}
	c, err := compareValues(val, rhs)
	if err != nil {
		return false, err
	}
	return keep(c), nil
}

// fieldValue resolves a query field on one record. The bool reports a
// NULL (nil pointer) value.
func fieldValue(fs *storage.FieldSet, item reflect.Value, name string) (any, bool, error) {
	f, ok := fs.Lookup(name)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", storage.ErrUnknownField, name)
	}
	v := item.FieldByIndex(f.Index)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, true, nil
		}
		v = v.Elem()
	}
	return v.Interface(), false, nil
}

func asString(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func equalValues(a, b any) (bool, error) {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		if !ok {
			return false, fmt.Errorf("cannot compare time with %T", b)
		}
		return at.Equal(bt), nil
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case av.Kind() == reflect.String && bv.Kind() == reflect.String:
		return av.String() == bv.String(), nil
	case av.Kind() == reflect.Bool && bv.Kind() == reflect.Bool:
		return av.Bool() == bv.Bool(), nil
	case isNumeric(av) && isNumeric(bv):
		return numeric(av) == numeric(bv), nil
	default:
		return false, fmt.Errorf("cannot compare %T with %T", a, b)
	}
}

func compareValues(a, b any) (int, error) {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		if !ok {
			return 0, fmt.Errorf("cannot compare time with %T", b)
		}
		return at.Compare(bt), nil
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case av.Kind() == reflect.String && bv.Kind() == reflect.String:
		return strings.Compare(av.String(), bv.String()), nil
	case isNumeric(av) && isNumeric(bv):
		an, bn := numeric(av), numeric(bv)
		switch {
		case an < bn:
			return -1, nil
		case an > bn:
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("cannot order %T against %T", a, b)
	}
}

func isNumeric(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func numeric(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	default:
		return float64(v.Int())
	}
}

// filterSlice applies the options to a loaded collection, mirroring the
// relational adapter's WHERE and ORDER BY.
func filterSlice[T any](items []T, opts storage.ListOptions) ([]T, error) {
	fs := storage.FieldsOf(new(T))
	out := items
	if opts.Where != nil {
		out = make([]T, 0, len(items))
		for i := range items {
			ok, err := matches(fs, reflect.ValueOf(&items[i]).Elem(), opts.Where)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, items[i])
			}
		}
	}
	if opts.OrderBy != nil {
		if _, ok := fs.Lookup(opts.OrderBy.Field); !ok {
			return nil, fmt.Errorf("%w: %q", storage.ErrUnknownField, opts.OrderBy.Field)
		}
		var sortErr error
		sort.SliceStable(out, func(i, j int) bool {
			a, anull, err := fieldValue(fs, reflect.ValueOf(&out[i]).Elem(), opts.OrderBy.Field)
			if err != nil {
				sortErr = err
				return false
			}
			b, bnull, err := fieldValue(fs, reflect.ValueOf(&out[j]).Elem(), opts.OrderBy.Field)
			if err != nil {
				sortErr = err
				return false
			}
			var c int
			switch {
			case anull && bnull:
				c = 0
			case anull:
				// Sortable fields (order, createdAt, title) are all
				// non-nullable; this branch only keeps the sort total.
				c = -1
			case bnull:
				c = 1
			default:
				c, err = compareValues(a, b)
				if err != nil {
					sortErr = err
					return false
				}
			}
			if opts.OrderBy.Desc {
				return c > 0
			}
			return c < 0
		})
		if sortErr != nil {
			return nil, sortErr
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
