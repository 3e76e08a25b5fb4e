package gormstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

func TestCompileExpr(t *testing.T) {
	fs := storage.FieldsOf(&domain.Document{})

	sql, args, err := compileExpr(fs, storage.Eq{Field: "category", Value: "reports"})
	require.NoError(t, err)
	assert.Equal(t, "category = ?", sql)
	assert.Equal(t, []any{"reports"}, args)

	sql, args, err = compileExpr(fs, storage.Eq{Field: "projectId", Value: nil})
	require.NoError(t, err)
	assert.Equal(t, "project_id IS NULL", sql)
	assert.Empty(t, args)

	sql, args, err = compileExpr(fs, storage.Contains{Field: "title", Value: "Mill"})
	require.NoError(t, err)
	assert.Equal(t, "LOWER(title) LIKE ?", sql)
	assert.Equal(t, []any{"%mill%"}, args)

	sql, args, err = compileExpr(fs, storage.Or{
		storage.Eq{Field: "isActive", Value: true},
		storage.Gt{Field: "order", Value: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "(is_active = ?) OR (sort_order > ?)", sql)
	assert.Equal(t, []any{true, 3}, args)

	_, _, err = compileExpr(fs, storage.Eq{Field: "colour", Value: "red"})
	assert.ErrorIs(t, err, storage.ErrUnknownField)
}

func TestCompileExprNeNull(t *testing.T) {
	fs := storage.FieldsOf(&domain.Document{})

	sql, args, err := compileExpr(fs, storage.Ne{Field: "projectId", Value: nil})
	require.NoError(t, err)
	assert.Equal(t, "project_id IS NOT NULL", sql)
	assert.Empty(t, args)
}
