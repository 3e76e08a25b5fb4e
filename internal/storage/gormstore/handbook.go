package gormstore

import (
	"context"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

type handbookRepo struct{ s *Store }

func (r handbookRepo) Get(ctx context.Context, id string) (*domain.Handbook, error) {
	return getByID[domain.Handbook](ctx, r.s, "handbook", id)
}

func (r handbookRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.Handbook, error) {
	return list[domain.Handbook](ctx, r.s, "handbook", opts)
}

func (r handbookRepo) ListPublic(ctx context.Context) ([]domain.Handbook, error) {
	books, err := r.List(ctx, storage.ListOptions{
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
	h.ID = newID()
	h.IsActive = true
	return createRec(ctx, r.s, "handbook", h, &h.Order, "")
}

func (r handbookRepo) Update(ctx context.Context, id string, p storage.HandbookPatch) (*domain.Handbook, error) {
	changes := map[string]any{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.CoverImageURL != nil {
		changes["cover_image_url"] = *p.CoverImageURL
	}
	if p.Password != nil {
		changes["password"] = *p.Password
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Order != nil {
		changes["sort_order"] = *p.Order
	}
	if p.IsActive != nil {
		changes["is_active"] = *p.IsActive
	}
	if p.ClearProject {
		changes["project_id"] = nil
	} else if p.ProjectID != nil {
		changes["project_id"] = *p.ProjectID
	}
	return updateRec[domain.Handbook](ctx, r.s, "handbook", id, changes)
}

// Delete cascades handbook_files through the declared FK.
func (r handbookRepo) Delete(ctx context.Context, id string) error {
	return deleteByID[domain.Handbook](ctx, r.s, "handbook", id)
}

func (r handbookRepo) Move(ctx context.Context, id string, up bool) (bool, error) {
	return moveRec[domain.Handbook](ctx, r.s, "handbook", id, up, "")
}

type handbookFileRepo struct{ s *Store }

func (r handbookFileRepo) Get(ctx context.Context, id string) (*domain.HandbookFile, error) {
	return getByID[domain.HandbookFile](ctx, r.s, "handbook_file", id)
}

func (r handbookFileRepo) ByHandbook(ctx context.Context, handbookID string) ([]domain.HandbookFile, error) {
	return list[domain.HandbookFile](ctx, r.s, "handbook_file", storage.ListOptions{
		Where:   storage.Eq{Field: "handbookId", Value: handbookID},
		OrderBy: storage.Asc("order"),
	})
}

func (r handbookFileRepo) Create(ctx context.Context, f *domain.HandbookFile) error {
	f.ID = newID()
	return createRec(ctx, r.s, "handbook_file", f, &f.Order, "handbook_id = ?", f.HandbookID)
}

func (r handbookFileRepo) Update(ctx context.Context, id string, p storage.HandbookFilePatch) (*domain.HandbookFile, error) {
	changes := map[string]any{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.FileURL != nil {
		changes["file_url"] = *p.FileURL
	}
	if p.FileType != nil {
		changes["file_type"] = *p.FileType
	}
	if p.FileSize != nil {
		changes["file_size"] = *p.FileSize
	}
	if p.Order != nil {
		changes["sort_order"] = *p.Order
	}
	return updateRec[domain.HandbookFile](ctx, r.s, "handbook_file", id, changes)
}

func (r handbookFileRepo) Delete(ctx context.Context, id string) error {
	return deleteByID[domain.HandbookFile](ctx, r.s, "handbook_file", id)
}

func (r handbookFileRepo) Reorder(ctx context.Context, handbookID string, ids []string) error {
	return reorderRecs[domain.HandbookFile](ctx, r.s, "handbook_file", ids, "handbook_id = ?", handbookID)
}

func (r handbookFileRepo) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	return incrementDownloads[domain.HandbookFile](ctx, r.s, "handbook_file", id)
}
