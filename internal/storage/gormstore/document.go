package gormstore

import (
	"context"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

type documentRepo struct{ s *Store }

func (r documentRepo) Get(ctx context.Context, id string) (*domain.Document, error) {
	return getByID[domain.Document](ctx, r.s, "document", id)
}

func (r documentRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.Document, error) {
	return list[domain.Document](ctx, r.s, "document", opts)
}

func (r documentRepo) ByProject(ctx context.Context, projectID string) ([]domain.Document, error) {
	return list[domain.Document](ctx, r.s, "document", storage.ListOptions{
		Where:   storage.Eq{Field: "projectId", Value: projectID},
		OrderBy: storage.Asc("order"),
	})
}

func (r documentRepo) Create(ctx context.Context, d *domain.Document) error {
	d.ID = newID()
	d.IsActive = true
	return createRec(ctx, r.s, "document", d, &d.Order, "")
}

func (r documentRepo) Update(ctx context.Context, id string, p storage.DocumentPatch) (*domain.Document, error) {
	changes := map[string]any{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.FileURL != nil {
		changes["file_url"] = *p.FileURL
	}
	if p.ImageURL != nil {
		changes["image_url"] = *p.ImageURL
	}
	if p.FileType != nil {
		changes["file_type"] = *p.FileType
	}
	if p.Category != nil {
		changes["category"] = *p.Category
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
	return updateRec[domain.Document](ctx, r.s, "document", id, changes)
}

func (r documentRepo) Delete(ctx context.Context, id string) error {
	return deleteByID[domain.Document](ctx, r.s, "document", id)
}

func (r documentRepo) Move(ctx context.Context, id string, up bool) (bool, error) {
	return moveRec[domain.Document](ctx, r.s, "document", id, up, "")
}

func (r documentRepo) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	return incrementDownloads[domain.Document](ctx, r.s, "document", id)
}
