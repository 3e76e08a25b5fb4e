package s3store

import (
	"context"
	"time"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

func (s *Store) contactCol() collection[domain.ContactSubmission] {
	return collection[domain.ContactSubmission]{
		s:      s,
		entity: "contact",
		key:    s.prefix + "contact-submissions.json",
		id:     func(m *domain.ContactSubmission) string { return m.ID },
		setID:  func(m *domain.ContactSubmission, id string) { m.ID = id },
		stamp: func(m *domain.ContactSubmission, now time.Time, create bool) {
			stampTimes(&m.CreatedAt, &m.UpdatedAt, now, create)
		},
	}
}

type contactRepo struct{ col collection[domain.ContactSubmission] }

func (r contactRepo) Get(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	return r.col.get(ctx, id)
}

func (r contactRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.ContactSubmission, error) {
	return r.col.list(ctx, opts)
}

func (r contactRepo) Create(ctx context.Context, c *domain.ContactSubmission) error {
	if c.Status == "" {
		c.Status = domain.ContactNew
	}
	return r.col.create(ctx, c, nil)
}

func (r contactRepo) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.ContactSubmission, error) {
	return r.col.update(ctx, id, func(m *domain.ContactSubmission) {
		m.Status = status
	}, true)
}

func (r contactRepo) Delete(ctx context.Context, id string) error {
	return r.col.delete(ctx, id)
}
