package gormstore

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"construction-cms/internal/storage"
)

// compileExpr turns a shared query expression into a SQL fragment with
// placeholder args. LOWER(...) LIKE keeps contains case-insensitive on
// every supported driver.
func compileExpr(fs *storage.FieldSet, e storage.Expr) (string, []any, error) {
	switch v := e.(type) {
	case storage.Eq:
		col, err := column(fs, v.Field)
		if err != nil {
			return "", nil, err
		}
		if v.Value == nil {
			return col + " IS NULL", nil, nil
		}
		return col + " = ?", []any{v.Value}, nil
	case storage.Ne:
		col, err := column(fs, v.Field)
		if err != nil {
			return "", nil, err
		}
		if v.Value == nil {
			return col + " IS NOT NULL", nil, nil
		}
		return col + " <> ?", []any{v.Value}, nil
	case storage.Contains:
		col, err := column(fs, v.Field)
		if err != nil {
			return "", nil, err
		}
		return "LOWER(" + col + ") LIKE ?", []any{"%" + strings.ToLower(v.Value) + "%"}, nil
	case storage.Lt:
		col, err := column(fs, v.Field)
		if err != nil {
			return "", nil, err
		}
		return col + " < ?", []any{v.Value}, nil
	case storage.Gt:
		col, err := column(fs, v.Field)
		if err != nil {
			return "", nil, err
		}
		return col + " > ?", []any{v.Value}, nil
	case storage.Or:
		return compileBranches(fs, v, " OR ")
	case storage.And:
		return compileBranches(fs, v, " AND ")
	default:
		return "", nil, fmt.Errorf("unsupported query expression %T", e)
	}
}

func compileBranches(fs *storage.FieldSet, branches []storage.Expr, sep string) (string, []any, error) {
	if len(branches) == 0 {
		return "", nil, nil
	}
	var parts []string
	var args []any
	for _, b := range branches {
		sql, a, err := compileExpr(fs, b)
		if err != nil {
			return "", nil, err
		}
		if sql == "" {
			continue
		}
		parts = append(parts, "("+sql+")")
		args = append(args, a...)
	}
	return strings.Join(parts, sep), args, nil
}

func column(fs *storage.FieldSet, name string) (string, error) {
	f, ok := fs.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", storage.ErrUnknownField, name)
	}
	return f.Column, nil
}

// applyOptions attaches the compiled filter and sort to a gorm query.
func applyOptions(tx *gorm.DB, fs *storage.FieldSet, opts storage.ListOptions) (*gorm.DB, error) {
	if opts.Where != nil {
		sql, args, err := compileExpr(fs, opts.Where)
		if err != nil {
			return nil, err
		}
		if sql != "" {
			tx = tx.Where(sql, args...)
		}
	}
	if opts.OrderBy != nil {
		col, err := column(fs, opts.OrderBy.Field)
		if err != nil {
			return nil, err
		}
		dir := " ASC"
		if opts.OrderBy.Desc {
			dir = " DESC"
		}
		tx = tx.Order(col + dir)
	}
	return tx, nil
}
