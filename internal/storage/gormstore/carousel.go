package gormstore

import (
	"context"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

type carouselRepo struct{ s *Store }

func (r carouselRepo) Get(ctx context.Context, id string) (*domain.CarouselItem, error) {
	return getByID[domain.CarouselItem](ctx, r.s, "carousel", id)
}

func (r carouselRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.CarouselItem, error) {
	return list[domain.CarouselItem](ctx, r.s, "carousel", opts)
}

func (r carouselRepo) ListActive(ctx context.Context) ([]domain.CarouselItem, error) {
	return r.List(ctx, storage.ListOptions{
		Where:   storage.Eq{Field: "isActive", Value: true},
		OrderBy: storage.Asc("order"),
	})
}

func (r carouselRepo) Create(ctx context.Context, item *domain.CarouselItem) error {
	item.ID = newID()
	item.IsActive = true
	return createRec(ctx, r.s, "carousel", item, &item.Order, "")
}

func (r carouselRepo) Update(ctx context.Context, id string, p storage.CarouselPatch) (*domain.CarouselItem, error) {
	changes := map[string]any{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.ImageURL != nil {
		changes["image_url"] = *p.ImageURL
	}
	if p.LinkURL != nil {
		changes["link_url"] = *p.LinkURL
	}
	if p.LinkText != nil {
		changes["link_text"] = *p.LinkText
	}
	if p.Order != nil {
		changes["sort_order"] = *p.Order
	}
	if p.IsActive != nil {
		changes["is_active"] = *p.IsActive
	}
	if p.TextPosition != nil {
		changes["text_position"] = *p.TextPosition
	}
	if p.TextDirection != nil {
		changes["text_direction"] = *p.TextDirection
	}
	return updateRec[domain.CarouselItem](ctx, r.s, "carousel", id, changes)
}

func (r carouselRepo) Delete(ctx context.Context, id string) error {
	return deleteByID[domain.CarouselItem](ctx, r.s, "carousel", id)
}

func (r carouselRepo) Move(ctx context.Context, id string, up bool) (bool, error) {
	return moveRec[domain.CarouselItem](ctx, r.s, "carousel", id, up, "")
}

func (r carouselRepo) Reorder(ctx context.Context, ids []string) error {
	return reorderRecs[domain.CarouselItem](ctx, r.s, "carousel", ids, "")
}
