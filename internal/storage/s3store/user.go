package s3store

import (
	"context"
	"strings"
	"time"

	"construction-cms/internal/core/metrics"
	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
	"construction-cms/pkg/utils"
)

func (s *Store) userCol() collection[domain.User] {
	return collection[domain.User]{
		s:      s,
		entity: "user",
		key:    s.prefix + "users.json",
		id:     func(m *domain.User) string { return m.ID },
		setID:  func(m *domain.User, id string) { m.ID = id },
		stamp: func(m *domain.User, now time.Time, create bool) {
			stampTimes(&m.CreatedAt, &m.UpdatedAt, now, create)
		},
	}
}

type userRepo struct{ col collection[domain.User] }

func (r userRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	return r.col.get(ctx, id)
}

func (r userRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.User, error) {
	return r.col.list(ctx, opts)
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (u *domain.User, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, "user", "find_by_email", start, err) }(time.Now())
	users, err := r.col.loadShared(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			rec := users[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// Create enforces email uniqueness with an explicit scan, so both
// backends reject a duplicate the same way. Best effort only: a racing
// create on another process can still slip past the scan, which is the
// same last-writer-wins exposure every collection write has.
func (r userRepo) Create(ctx context.Context, u *domain.User) (err error) {
	defer func(start time.Time) { metrics.Observe(backendName, "user", "create", start, err) }(time.Now())
	users, err := r.col.loadExclusive(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, u.Email) {
			return storage.ErrDuplicateKey
		}
	}
	u.ID = utils.NewID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	users = append(users, *u)
	return r.col.save(ctx, users)
}

func (r userRepo) Update(ctx context.Context, id string, p storage.UserPatch) (*domain.User, error) {
	return r.col.update(ctx, id, func(m *domain.User) {
		if p.Name != nil {
			m.Name = *p.Name
		}
		if p.Password != nil {
			m.Password = *p.Password
		}
		if p.Role != nil {
			m.Role = *p.Role
		}
		if p.ClearResetToken {
			m.ResetToken = nil
			m.ResetTokenExpiry = nil
		} else {
			if p.ResetToken != nil {
				m.ResetToken = p.ResetToken
			}
			if p.ResetTokenExpiry != nil {
				m.ResetTokenExpiry = p.ResetTokenExpiry
			}
		}
		if p.HasChangedPassword != nil {
			m.HasChangedPassword = *p.HasChangedPassword
		}
	}, true)
}

func (r userRepo) Delete(ctx context.Context, id string) error {
	return r.col.delete(ctx, id)
}
