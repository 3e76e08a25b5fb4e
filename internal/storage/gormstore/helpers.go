package gormstore

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"construction-cms/internal/core/metrics"
	"construction-cms/internal/storage"
	"construction-cms/pkg/utils"
)

// Generic per-entity plumbing. Every repository method funnels through
// these so the not-found mapping, metrics and logging stay uniform.

func getByID[T any](ctx context.Context, s *Store, entity, id string) (m *T, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, entity, "get", start, err) }(time.Now())
	var rec T
	err = s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.opError(entity, "get", id, err)
		return nil, err
	}
	return &rec, nil
}

func list[T any](ctx context.Context, s *Store, entity string, opts storage.ListOptions) (out []T, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, entity, "list", start, err) }(time.Now())
	tx, err := applyOptions(s.db.WithContext(ctx).Model(new(T)), storage.FieldsOf(new(T)), opts)
	if err != nil {
		return nil, err
	}
	if err = tx.Find(&out).Error; err != nil {
		s.opError(entity, "list", "", err)
		return nil, err
	}
	return out, nil
}

// createRec assigns the id and resolves a negative order to
// append-after-max within the scope before inserting.
func createRec[T any](ctx context.Context, s *Store, entity string, m *T, order *int, scopeQuery string, scopeArgs ...any) (err error) {
	defer func(start time.Time) { metrics.Observe(backendName, entity, "create", start, err) }(time.Now())
	if order != nil && *order < 0 {
		next, nerr := nextOrder[T](ctx, s, scopeQuery, scopeArgs...)
		if nerr != nil {
			return nerr
		}
		*order = next
	}
	// Owned rows are managed through their own repositories, never as
	// gorm associations on the parent.
	if err = s.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return storage.ErrDuplicateKey
		}
		s.opError(entity, "create", "", err)
		return err
	}
	return nil
}

func nextOrder[T any](ctx context.Context, s *Store, scopeQuery string, scopeArgs ...any) (int, error) {
	var n int
	tx := s.db.WithContext(ctx).Model(new(T)).Select("COALESCE(MAX(sort_order), 0)")
	if scopeQuery != "" {
		tx = tx.Where(scopeQuery, scopeArgs...)
	}
	if err := tx.Scan(&n).Error; err != nil {
		return 0, err
	}
	return n + 1, nil
}

// updateRec applies the non-empty change set and returns the fresh row.
func updateRec[T any](ctx context.Context, s *Store, entity, id string, changes map[string]any) (m *T, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, entity, "update", start, err) }(time.Now())
	var rec T
	if err = s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		s.opError(entity, "update", id, err)
		return nil, err
	}
	if len(changes) > 0 {
		err = s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, storage.ErrDuplicateKey
			}
			s.opError(entity, "update", id, err)
			return nil, err
		}
	}
	if err = s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// deleteByID is idempotent; FK constraints handle cascades.
func deleteByID[T any](ctx context.Context, s *Store, entity, id string) (err error) {
	defer func(start time.Time) { metrics.Observe(backendName, entity, "delete", start, err) }(time.Now())
	if err = s.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error; err != nil {
		s.opError(entity, "delete", id, err)
	}
	return err
}

type orderRow struct {
	ID        string
	SortOrder int
}

// moveRec swaps the target's order value with its neighbor. Boundary
// positions are a soft no-op: (false, nil).
func moveRec[T any](ctx context.Context, s *Store, entity, id string, up bool, scopeQuery string, scopeArgs ...any) (moved bool, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, entity, "move", start, err) }(time.Now())
	var rows []orderRow
	tx := s.db.WithContext(ctx).Model(new(T)).Select("id", "sort_order")
	if scopeQuery != "" {
		tx = tx.Where(scopeQuery, scopeArgs...)
	}
	if err = tx.Order("sort_order ASC, id ASC").Scan(&rows).Error; err != nil {
		s.opError(entity, "move", id, err)
		return false, err
	}
	idx := -1
	for i, r := range rows {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, storage.ErrNotFound
	}
	j := idx + 1
	if up {
		j = idx - 1
	}
	if j < 0 || j >= len(rows) {
		return false, nil
	}
	a, b := rows[idx], rows[j]
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e := tx.Model(new(T)).Where("id = ?", a.ID).Update("sort_order", b.SortOrder).Error; e != nil {
			return e
		}
		return tx.Model(new(T)).Where("id = ?", b.ID).Update("sort_order", a.SortOrder).Error
	})
	if err != nil {
		s.opError(entity, "move", id, err)
		return false, err
	}
	return true, nil
}

// reorderRecs rewrites the order sequence to match the id list (1-based).
func reorderRecs[T any](ctx context.Context, s *Store, entity string, ids []string, scopeQuery string, scopeArgs ...any) (err error) {
	defer func(start time.Time) { metrics.Observe(backendName, entity, "reorder", start, err) }(time.Now())
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			q := tx.Model(new(T)).Where("id = ?", id)
			if scopeQuery != "" {
				q = q.Where(scopeQuery, scopeArgs...)
			}
			res := q.Update("sort_order", i+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return storage.ErrNotFound
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.opError(entity, "reorder", "", err)
	}
	return err
}

// incrementDownloads bumps the counter without touching updated_at and
// returns the new value.
func incrementDownloads[T any](ctx context.Context, s *Store, entity, id string) (n int64, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, entity, "increment_downloads", start, err) }(time.Now())
	res := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1))
	if res.Error != nil {
		s.opError(entity, "increment_downloads", id, res.Error)
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, storage.ErrNotFound
	}
	err = s.db.WithContext(ctx).Model(new(T)).Select("download_count").Where("id = ?", id).Scan(&n).Error
	return n, err
}

func (s *Store) opError(entity, op, id string, err error) {
	s.log.Error("storage operation failed",
		zap.String("backend", backendName),
		zap.String("entity", entity),
		zap.String("op", op),
		zap.String("id", id),
		zap.Error(err),
	)
}

// newID is shared with the document backend so ids look identical in
// both modes.
func newID() string { return utils.NewID() }
