package gormstore

import (
	"context"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

type contactRepo struct{ s *Store }

func (r contactRepo) Get(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	return getByID[domain.ContactSubmission](ctx, r.s, "contact", id)
}

func (r contactRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.ContactSubmission, error) {
	return list[domain.ContactSubmission](ctx, r.s, "contact", opts)
}

func (r contactRepo) Create(ctx context.Context, c *domain.ContactSubmission) error {
	c.ID = newID()
	if c.Status == "" {
		c.Status = domain.ContactNew
	}
	return createRec(ctx, r.s, "contact", c, nil, "")
}

func (r contactRepo) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.ContactSubmission, error) {
	return updateRec[domain.ContactSubmission](ctx, r.s, "contact", id, map[string]any{"status": status})
}

func (r contactRepo) Delete(ctx context.Context, id string) error {
	return deleteByID[domain.ContactSubmission](ctx, r.s, "contact", id)
}
