package storage

import (
	"time"

	"construction-cms/internal/domain"
)

// Patch types carry partial updates: nil fields are left untouched.
// Weak project references get an explicit Clear flag so "set to null"
// and "leave alone" stay distinguishable.

type CarouselPatch struct {
	Title         *string
	ImageURL      *string
	LinkURL       *string
	LinkText      *string
	Order         *int
	IsActive      *bool
	TextPosition  *domain.TextPosition
	TextDirection *domain.TextDirection
}

type ProjectPatch struct {
	Title       *string
	Description *string
	Category    *domain.ProjectCategory
	Details     *domain.ProjectDetails
	Order       *int
	IsActive    *bool
}

type ProjectImagePatch struct {
	ImageURL *string
	Order    *int
}

type DocumentPatch struct {
	Title        *string
	Description  *string
	FileURL      *string
	ImageURL     *string
	FileType     *string
	Category     *string
	Order        *int
	IsActive     *bool
	ProjectID    *string
	ClearProject bool
}

type HandbookPatch struct {
	Title         *string
	CoverImageURL *string
	Password      *string // already hashed by the caller
	Description   *string
	Order         *int
	IsActive      *bool
	ProjectID     *string
	ClearProject  bool
}

type HandbookFilePatch struct {
	Title    *string
	FileURL  *string
	FileType *string
	FileSize *int64
	Order    *int
}

type UserPatch struct {
	Name               *string
	Password           *string // already hashed by the caller
	Role               *string
	ResetToken         *string
	ResetTokenExpiry   *time.Time
	ClearResetToken    bool
	HasChangedPassword *bool
}
