package s3store

import (
	"context"
	"time"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

func (s *Store) documentCol() collection[domain.Document] {
	return collection[domain.Document]{
		s:      s,
		entity: "document",
		key:    s.prefix + "documents.json",
		id:     func(m *domain.Document) string { return m.ID },
		setID:  func(m *domain.Document, id string) { m.ID = id },
		stamp: func(m *domain.Document, now time.Time, create bool) {
			stampTimes(&m.CreatedAt, &m.UpdatedAt, now, create)
		},
		order:    func(m *domain.Document) int { return m.Order },
		setOrder: func(m *domain.Document, o int) { m.Order = o },
	}
}

type documentRepo struct{ col collection[domain.Document] }

func (r documentRepo) Get(ctx context.Context, id string) (*domain.Document, error) {
	return r.col.get(ctx, id)
}

func (r documentRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.Document, error) {
	return r.col.list(ctx, opts)
}

func (r documentRepo) ByProject(ctx context.Context, projectID string) ([]domain.Document, error) {
	return r.col.list(ctx, storage.ListOptions{
		Where:   storage.Eq{Field: "projectId", Value: projectID},
		OrderBy: storage.Asc("order"),
	})
}

func (r documentRepo) Create(ctx context.Context, d *domain.Document) error {
	d.IsActive = true
	return r.col.create(ctx, d, nil)
}

func (r documentRepo) Update(ctx context.Context, id string, p storage.DocumentPatch) (*domain.Document, error) {
	return r.col.update(ctx, id, func(m *domain.Document) {
		if p.Title != nil {
			m.Title = *p.Title
		}
		if p.Description != nil {
			m.Description = p.Description
		}
		if p.FileURL != nil {
			m.FileURL = *p.FileURL
		}
		if p.ImageURL != nil {
			m.ImageURL = p.ImageURL
		}
		if p.FileType != nil {
			m.FileType = *p.FileType
		}
		if p.Category != nil {
			m.Category = *p.Category
		}
		if p.Order != nil {
			m.Order = *p.Order
		}
		if p.IsActive != nil {
			m.IsActive = *p.IsActive
		}
		if p.ClearProject {
			m.ProjectID = nil
		} else if p.ProjectID != nil {
			m.ProjectID = p.ProjectID
		}
	}, true)
}

func (r documentRepo) Delete(ctx context.Context, id string) error {
	return r.col.delete(ctx, id)
}

func (r documentRepo) Move(ctx context.Context, id string, up bool) (bool, error) {
	return r.col.move(ctx, id, up, nil)
}

func (r documentRepo) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	return r.col.increment(ctx, id, func(m *domain.Document) int64 {
		m.DownloadCount++
		return m.DownloadCount
	})
}
