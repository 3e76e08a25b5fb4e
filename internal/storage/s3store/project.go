package s3store

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"construction-cms/internal/core/metrics"
	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

func (s *Store) projectCol() collection[domain.Project] {
	return collection[domain.Project]{
		s:      s,
		entity: "project",
		key:    s.prefix + "projects.json",
		id:     func(m *domain.Project) string { return m.ID },
		setID:  func(m *domain.Project, id string) { m.ID = id },
		stamp: func(m *domain.Project, now time.Time, create bool) {
			stampTimes(&m.CreatedAt, &m.UpdatedAt, now, create)
		},
		order:    func(m *domain.Project) int { return m.Order },
		setOrder: func(m *domain.Project, o int) { m.Order = o },
	}
}

func (s *Store) imageCol() collection[domain.ProjectImage] {
	return collection[domain.ProjectImage]{
		s:      s,
		entity: "project_image",
		key:    s.prefix + "project-images.json",
		id:     func(m *domain.ProjectImage) string { return m.ID },
		setID:  func(m *domain.ProjectImage, id string) { m.ID = id },
		stamp: func(m *domain.ProjectImage, now time.Time, create bool) {
			stampTimes(&m.CreatedAt, &m.UpdatedAt, now, create)
		},
		order:    func(m *domain.ProjectImage) int { return m.Order },
		setOrder: func(m *domain.ProjectImage, o int) { m.Order = o },
	}
}

type projectRepo struct{ s *Store }

func (r projectRepo) Get(ctx context.Context, id string) (*domain.Project, error) {
	return r.s.projectCol().get(ctx, id)
}

func (r projectRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.Project, error) {
	return r.s.projectCol().list(ctx, opts)
}

func (r projectRepo) Create(ctx context.Context, p *domain.Project) error {
	p.Images = nil // owned rows live in their own collection
	p.IsActive = true
	return r.s.projectCol().create(ctx, p, nil)
}

func (r projectRepo) Update(ctx context.Context, id string, p storage.ProjectPatch) (*domain.Project, error) {
	return r.s.projectCol().update(ctx, id, func(m *domain.Project) {
		if p.Title != nil {
			m.Title = *p.Title
		}
		if p.Description != nil {
			m.Description = p.Description
		}
		if p.Category != nil {
			m.Category = *p.Category
		}
		if p.Details != nil {
			m.Details = *p.Details
		}
		if p.Order != nil {
			m.Order = *p.Order
		}
		if p.IsActive != nil {
			m.IsActive = *p.IsActive
		}
	}, true)
}

// Delete removes the project, then hand-rolls what the relational
// engine's constraints do: drop its images, null the projectId on
// documents and handbooks. The three passes touch three separate
// collections and run concurrently.
func (r projectRepo) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { metrics.Observe(backendName, "project", "delete_cascade", start, err) }(time.Now())
	if err = r.s.projectCol().delete(ctx, id); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dropMatching(gctx, r.s.imageCol(), func(img *domain.ProjectImage) bool {
			return img.ProjectID == id
		})
	})
	g.Go(func() error {
		return detachProject(gctx, r.s.documentCol(), id,
			func(d *domain.Document) *string { return d.ProjectID },
			func(d *domain.Document) { d.ProjectID = nil })
	})
	g.Go(func() error {
		return detachProject(gctx, r.s.handbookCol(), id,
			func(h *domain.Handbook) *string { return h.ProjectID },
			func(h *domain.Handbook) { h.ProjectID = nil })
	})
	return g.Wait()
}

func (r projectRepo) Move(ctx context.Context, id string, up bool) (bool, error) {
	return r.s.projectCol().move(ctx, id, up, nil)
}

func (r projectRepo) Reorder(ctx context.Context, ids []string) error {
	return r.s.projectCol().reorder(ctx, ids, nil)
}

// dropMatching removes every record the predicate selects. No matches
// means no write.
func dropMatching[T any](ctx context.Context, c collection[T], match func(*T) bool) error {
	items, err := c.loadExclusive(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	removed := false
	for i := range items {
		if match(&items[i]) {
			removed = true
			continue
		}
		kept = append(kept, items[i])
	}
	if !removed {
		return nil
	}
	return c.save(ctx, kept)
}

// detachProject nulls weak references to a deleted project. The
// referencing rows survive.
func detachProject[T any](ctx context.Context, c collection[T], projectID string, ref func(*T) *string, clear func(*T)) error {
	items, err := c.loadExclusive(ctx)
	if err != nil {
		return err
	}
	changed := false
	now := time.Now().UTC()
	for i := range items {
		if p := ref(&items[i]); p != nil && *p == projectID {
			clear(&items[i])
			c.stamp(&items[i], now, false)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return c.save(ctx, items)
}

type projectImageRepo struct{ col collection[domain.ProjectImage] }

func (r projectImageRepo) Get(ctx context.Context, id string) (*domain.ProjectImage, error) {
	return r.col.get(ctx, id)
}

func (r projectImageRepo) ByProject(ctx context.Context, projectID string) ([]domain.ProjectImage, error) {
	return r.col.list(ctx, storage.ListOptions{
		Where:   storage.Eq{Field: "projectId", Value: projectID},
		OrderBy: storage.Asc("order"),
	})
}

func (r projectImageRepo) Create(ctx context.Context, img *domain.ProjectImage) error {
	pid := img.ProjectID
	return r.col.create(ctx, img, func(m *domain.ProjectImage) bool { return m.ProjectID == pid })
}

func (r projectImageRepo) Update(ctx context.Context, id string, p storage.ProjectImagePatch) (*domain.ProjectImage, error) {
	return r.col.update(ctx, id, func(m *domain.ProjectImage) {
		if p.ImageURL != nil {
			m.ImageURL = *p.ImageURL
		}
		if p.Order != nil {
			m.Order = *p.Order
		}
	}, true)
}

func (r projectImageRepo) Delete(ctx context.Context, id string) error {
	return r.col.delete(ctx, id)
}

func (r projectImageRepo) Reorder(ctx context.Context, projectID string, ids []string) error {
	return r.col.reorder(ctx, ids, func(m *domain.ProjectImage) bool { return m.ProjectID == projectID })
}
