package s3store

import (
	"context"
	"time"

	"construction-cms/internal/core/metrics"
	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

func (s *Store) handbookCol() collection[domain.Handbook] {
	return collection[domain.Handbook]{
		s:      s,
		entity: "handbook",
		key:    s.prefix + "handbooks.json",
		id:     func(m *domain.Handbook) string { return m.ID },
		setID:  func(m *domain.Handbook, id string) { m.ID = id },
		stamp: func(m *domain.Handbook, now time.Time, create bool) {
			stampTimes(&m.CreatedAt, &m.UpdatedAt, now, create)
		},
		order:    func(m *domain.Handbook) int { return m.Order },
		setOrder: func(m *domain.Handbook, o int) { m.Order = o },
	}
}

func (s *Store) handbookFileCol() collection[domain.HandbookFile] {
	return collection[domain.HandbookFile]{
		s:      s,
		entity: "handbook_file",
		key:    s.prefix + "handbook-files.json",
		id:     func(m *domain.HandbookFile) string { return m.ID },
		setID:  func(m *domain.HandbookFile, id string) { m.ID = id },
		stamp: func(m *domain.HandbookFile, now time.Time, create bool) {
			stampTimes(&m.CreatedAt, &m.UpdatedAt, now, create)
		},
		order:    func(m *domain.HandbookFile) int { return m.Order },
		setOrder: func(m *domain.HandbookFile, o int) { m.Order = o },
	}
}

type handbookRepo struct{ s *Store }

func (r handbookRepo) Get(ctx context.Context, id string) (*domain.Handbook, error) {
	return r.s.handbookCol().get(ctx, id)
}

func (r handbookRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.Handbook, error) {
	return r.s.handbookCol().list(ctx, opts)
}

func (r handbookRepo) ListPublic(ctx context.Context) ([]domain.Handbook, error) {
	books, err := r.s.handbookCol().list(ctx, storage.ListOptions{
		Where:   storage.Eq{Field: "isActive", Value: true},
		OrderBy: storage.Asc("order"),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Handbook, len(books))
	for i, h := range books {
		out[i] = h.Sanitized()
	}
	return out, nil
}

func (r handbookRepo) Create(ctx context.Context, h *domain.Handbook) error {
	h.Files = nil
	h.IsActive = true
	return r.s.handbookCol().create(ctx, h, nil)
}

func (r handbookRepo) Update(ctx context.Context, id string, p storage.HandbookPatch) (*domain.Handbook, error) {
	return r.s.handbookCol().update(ctx, id, func(m *domain.Handbook) {
		if p.Title != nil {
			m.Title = *p.Title
		}
		if p.CoverImageURL != nil {
			m.CoverImageURL = *p.CoverImageURL
		}
		if p.Password != nil {
			m.Password = *p.Password
		}
		if p.Description != nil {
			m.Description = p.Description
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

// Delete removes the handbook and scans out its files — the owned
// collection has no engine to cascade for it.
func (r handbookRepo) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { metrics.Observe(backendName, "handbook", "delete_cascade", start, err) }(time.Now())
	if err = r.s.handbookCol().delete(ctx, id); err != nil {
		return err
	}
	return dropMatching(ctx, r.s.handbookFileCol(), func(f *domain.HandbookFile) bool {
		return f.HandbookID == id
	})
}

func (r handbookRepo) Move(ctx context.Context, id string, up bool) (bool, error) {
	return r.s.handbookCol().move(ctx, id, up, nil)
}

type handbookFileRepo struct{ col collection[domain.HandbookFile] }

func (r handbookFileRepo) Get(ctx context.Context, id string) (*domain.HandbookFile, error) {
	return r.col.get(ctx, id)
}

func (r handbookFileRepo) ByHandbook(ctx context.Context, handbookID string) ([]domain.HandbookFile, error) {
	return r.col.list(ctx, storage.ListOptions{
		Where:   storage.Eq{Field: "handbookId", Value: handbookID},
		OrderBy: storage.Asc("order"),
	})
}

func (r handbookFileRepo) Create(ctx context.Context, f *domain.HandbookFile) error {
	hid := f.HandbookID
	return r.col.create(ctx, f, func(m *domain.HandbookFile) bool { return m.HandbookID == hid })
}

func (r handbookFileRepo) Update(ctx context.Context, id string, p storage.HandbookFilePatch) (*domain.HandbookFile, error) {
	return r.col.update(ctx, id, func(m *domain.HandbookFile) {
		if p.Title != nil {
			m.Title = *p.Title
		}
		if p.FileURL != nil {
			m.FileURL = *p.FileURL
		}
		if p.FileType != nil {
			m.FileType = *p.FileType
		}
		if p.FileSize != nil {
			m.FileSize = p.FileSize
		}
		if p.Order != nil {
			m.Order = *p.Order
		}
	}, true)
}

func (r handbookFileRepo) Delete(ctx context.Context, id string) error {
	return r.col.delete(ctx, id)
}

func (r handbookFileRepo) Reorder(ctx context.Context, handbookID string, ids []string) error {
	return r.col.reorder(ctx, ids, func(m *domain.HandbookFile) bool { return m.HandbookID == handbookID })
}

func (r handbookFileRepo) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	return r.col.increment(ctx, id, func(m *domain.HandbookFile) int64 {
		m.DownloadCount++
		return m.DownloadCount
	})
}
