package s3store

import (
	"context"
	"time"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

func (s *Store) carouselCol() collection[domain.CarouselItem] {
	return collection[domain.CarouselItem]{
		s:      s,
		entity: "carousel",
		key:    s.prefix + "carousel.json",
		id:     func(m *domain.CarouselItem) string { return m.ID },
		setID:  func(m *domain.CarouselItem, id string) { m.ID = id },
		stamp: func(m *domain.CarouselItem, now time.Time, create bool) {
			stampTimes(&m.CreatedAt, &m.UpdatedAt, now, create)
		},
		order:    func(m *domain.CarouselItem) int { return m.Order },
		setOrder: func(m *domain.CarouselItem, o int) { m.Order = o },
	}
}

type carouselRepo struct{ col collection[domain.CarouselItem] }

func (r carouselRepo) Get(ctx context.Context, id string) (*domain.CarouselItem, error) {
	return r.col.get(ctx, id)
}

func (r carouselRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.CarouselItem, error) {
	return r.col.list(ctx, opts)
}

func (r carouselRepo) ListActive(ctx context.Context) ([]domain.CarouselItem, error) {
	return r.col.list(ctx, storage.ListOptions{
		Where:   storage.Eq{Field: "isActive", Value: true},
		OrderBy: storage.Asc("order"),
	})
}

func (r carouselRepo) Create(ctx context.Context, item *domain.CarouselItem) error {
	item.IsActive = true
	return r.col.create(ctx, item, nil)
}

func (r carouselRepo) Update(ctx context.Context, id string, p storage.CarouselPatch) (*domain.CarouselItem, error) {
	return r.col.update(ctx, id, func(m *domain.CarouselItem) {
		if p.Title != nil {
			m.Title = *p.Title
		}
		if p.ImageURL != nil {
			m.ImageURL = *p.ImageURL
		}
		if p.LinkURL != nil {
			m.LinkURL = p.LinkURL
		}
		if p.LinkText != nil {
			m.LinkText = p.LinkText
		}
		if p.Order != nil {
			m.Order = *p.Order
		}
		if p.IsActive != nil {
			m.IsActive = *p.IsActive
		}
		if p.TextPosition != nil {
			m.TextPosition = *p.TextPosition
		}
		if p.TextDirection != nil {
			m.TextDirection = *p.TextDirection
		}
	}, true)
}

func (r carouselRepo) Delete(ctx context.Context, id string) error {
	return r.col.delete(ctx, id)
}

func (r carouselRepo) Move(ctx context.Context, id string, up bool) (bool, error) {
	return r.col.move(ctx, id, up, nil)
}

func (r carouselRepo) Reorder(ctx context.Context, ids []string) error {
	return r.col.reorder(ctx, ids, nil)
}
