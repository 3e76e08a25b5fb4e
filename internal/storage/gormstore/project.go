package gormstore

import (
	"context"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

type projectRepo struct{ s *Store }

func (r projectRepo) Get(ctx context.Context, id string) (*domain.Project, error) {
	return getByID[domain.Project](ctx, r.s, "project", id)
}

func (r projectRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.Project, error) {
	return list[domain.Project](ctx, r.s, "project", opts)
}

func (r projectRepo) Create(ctx context.Context, p *domain.Project) error {
	p.ID = newID()
	p.IsActive = true
	return createRec(ctx, r.s, "project", p, &p.Order, "")
}

func (r projectRepo) Update(ctx context.Context, id string, p storage.ProjectPatch) (*domain.Project, error) {
	changes := map[string]any{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Category != nil {
		changes["category"] = *p.Category
	}
	if p.Details != nil {
		changes["details"] = *p.Details
	}
	if p.Order != nil {
		changes["sort_order"] = *p.Order
	}
	if p.IsActive != nil {
		changes["is_active"] = *p.IsActive
	}
	return updateRec[domain.Project](ctx, r.s, "project", id, changes)
}

// Delete relies on the declared constraints: project_images rows go with
// the project, documents and handbooks get their project_id nulled.
func (r projectRepo) Delete(ctx context.Context, id string) error {
	return deleteByID[domain.Project](ctx, r.s, "project", id)
}

func (r projectRepo) Move(ctx context.Context, id string, up bool) (bool, error) {
	return moveRec[domain.Project](ctx, r.s, "project", id, up, "")
}

func (r projectRepo) Reorder(ctx context.Context, ids []string) error {
	return reorderRecs[domain.Project](ctx, r.s, "project", ids, "")
}

type projectImageRepo struct{ s *Store }

func (r projectImageRepo) Get(ctx context.Context, id string) (*domain.ProjectImage, error) {
	return getByID[domain.ProjectImage](ctx, r.s, "project_image", id)
}

func (r projectImageRepo) ByProject(ctx context.Context, projectID string) ([]domain.ProjectImage, error) {
	return list[domain.ProjectImage](ctx, r.s, "project_image", storage.ListOptions{
		Where:   storage.Eq{Field: "projectId", Value: projectID},
		OrderBy: storage.Asc("order"),
	})
}

func (r projectImageRepo) Create(ctx context.Context, img *domain.ProjectImage) error {
	img.ID = newID()
	return createRec(ctx, r.s, "project_image", img, &img.Order, "project_id = ?", img.ProjectID)
}

func (r projectImageRepo) Update(ctx context.Context, id string, p storage.ProjectImagePatch) (*domain.ProjectImage, error) {
	changes := map[string]any{}
	if p.ImageURL != nil {
		changes["image_url"] = *p.ImageURL
	}
	if p.Order != nil {
		changes["sort_order"] = *p.Order
	}
	return updateRec[domain.ProjectImage](ctx, r.s, "project_image", id, changes)
}

func (r projectImageRepo) Delete(ctx context.Context, id string) error {
	return deleteByID[domain.ProjectImage](ctx, r.s, "project_image", id)
}

func (r projectImageRepo) Reorder(ctx context.Context, projectID string, ids []string) error {
	return reorderRecs[domain.ProjectImage](ctx, r.s, "project_image", ids, "project_id = ?", projectID)
}
