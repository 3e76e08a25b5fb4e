package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"construction-cms/internal/core/metrics"
	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

type userRepo struct{ s *Store }

func (r userRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	return getByID[domain.User](ctx, r.s, "user", id)
}

func (r userRepo) List(ctx context.Context, opts storage.ListOptions) ([]domain.User, error) {
	return list[domain.User](ctx, r.s, "user", opts)
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (u *domain.User, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, "user", "find_by_email", start, err) }(time.Now())
	var rec domain.User
	err = r.s.db.WithContext(ctx).First(&rec, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.s.opError("user", "find_by_email", "", err)
		return nil, err
	}
	return &rec, nil
}

// Create surfaces an email collision as storage.ErrDuplicateKey via the
// database unique index.
func (r userRepo) Create(ctx context.Context, u *domain.User) error {
	u.ID = newID()
	return createRec(ctx, r.s, "user", u, nil, "")
}

func (r userRepo) Update(ctx context.Context, id string, p storage.UserPatch) (*domain.User, error) {
	changes := map[string]any{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Password != nil {
		changes["password"] = *p.Password
	}
	if p.Role != nil {
		changes["role"] = *p.Role
	}
	if p.ClearResetToken {
		changes["reset_token"] = nil
		changes["reset_token_expiry"] = nil
	} else {
		if p.ResetToken != nil {
			changes["reset_token"] = *p.ResetToken
		}
		if p.ResetTokenExpiry != nil {
			changes["reset_token_expiry"] = *p.ResetTokenExpiry
		}
	}
	if p.HasChangedPassword != nil {
		changes["has_changed_password"] = *p.HasChangedPassword
	}
	return updateRec[domain.User](ctx, r.s, "user", id, changes)
}

func (r userRepo) Delete(ctx context.Context, id string) error {
	return deleteByID[domain.User](ctx, r.s, "user", id)
}
