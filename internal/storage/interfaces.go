package storage

import (
	"context"

	"construction-cms/internal/domain"
)

// Store is the uniform persistence contract. Both backends implement it
// in full; callers never learn which one is active.
//
// Shared semantics:
//   - Create assigns ID, CreatedAt and UpdatedAt. A negative Order means
//     "append after the current maximum". Entities with an isActive flag
//     are stored active; deactivation goes through Update.
//   - Get returns (nil, nil) when the id is absent.
//   - Update applies only the non-nil patch fields and returns the
//     updated record, or ErrNotFound.
//   - Delete is idempotent: deleting an absent id is not an error.
//   - List applies the ListOptions filter and sort identically in both
//     backends.
type Store interface {
	Carousel() CarouselRepository
	Projects() ProjectRepository
	ProjectImages() ProjectImageRepository
	Documents() DocumentRepository
	Handbooks() HandbookRepository
	HandbookFiles() HandbookFileRepository
	Users() UserRepository
	Contacts() ContactRepository

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend's shared resources.
	Close() error
}

type CarouselRepository interface {
	Get(ctx context.Context, id string) (*domain.CarouselItem, error)
	List(ctx context.Context, opts ListOptions) ([]domain.CarouselItem, error)
	// ListActive returns active slides ordered for display.
	ListActive(ctx context.Context) ([]domain.CarouselItem, error)
	Create(ctx context.Context, item *domain.CarouselItem) error
	Update(ctx context.Context, id string, patch CarouselPatch) (*domain.CarouselItem, error)
	Delete(ctx context.Context, id string) error
	// Move swaps the item's order value with its neighbor above (up) or
	// below. Returns false without error when already at the boundary.
	Move(ctx context.Context, id string, up bool) (bool, error)
	// Reorder rewrites order values to match the given id sequence.
	Reorder(ctx context.Context, ids []string) error
}

type ProjectRepository interface {
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	// Delete removes the project, cascades its images, and detaches
	// (nulls projectId on) documents and handbooks that reference it.
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, up bool) (bool, error)
	Reorder(ctx context.Context, ids []string) error
}

type ProjectImageRepository interface {
	Get(ctx context.Context, id string) (*domain.ProjectImage, error)
	// ByProject returns the project's images ordered for display.
	ByProject(ctx context.Context, projectID string) ([]domain.ProjectImage, error)
	Create(ctx context.Context, img *domain.ProjectImage) error
	Update(ctx context.Context, id string, patch ProjectImagePatch) (*domain.ProjectImage, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, projectID string, ids []string) error
}

type DocumentRepository interface {
	Get(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Document, error)
	ByProject(ctx context.Context, projectID string) ([]domain.Document, error)
	Create(ctx context.Context, d *domain.Document) error
	Update(ctx context.Context, id string, patch DocumentPatch) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, up bool) (bool, error)
	// IncrementDownloads bumps the counter and returns the new value.
	IncrementDownloads(ctx context.Context, id string) (int64, error)
}

type HandbookRepository interface {
	Get(ctx context.Context, id string) (*domain.Handbook, error)
	// List is admin-facing and includes the stored password hash.
	List(ctx context.Context, opts ListOptions) ([]domain.Handbook, error)
	// ListPublic returns active handbooks ordered for display with
	// password material stripped.
	ListPublic(ctx context.Context) ([]domain.Handbook, error)
	Create(ctx context.Context, h *domain.Handbook) error
	Update(ctx context.Context, id string, patch HandbookPatch) (*domain.Handbook, error)
	// Delete removes the handbook and cascades its files.
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, up bool) (bool, error)
}

type HandbookFileRepository interface {
	Get(ctx context.Context, id string) (*domain.HandbookFile, error)
	ByHandbook(ctx context.Context, handbookID string) ([]domain.HandbookFile, error)
	Create(ctx context.Context, f *domain.HandbookFile) error
	Update(ctx context.Context, id string, patch HandbookFilePatch) (*domain.HandbookFile, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, handbookID string, ids []string) error
	IncrementDownloads(ctx context.Context, id string) (int64, error)
}

type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, opts ListOptions) ([]domain.User, error)
	// FindByEmail is the auth layer's lookup. Returns (nil, nil) when no
	// user has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns ErrDuplicateKey when the email is taken.
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type ContactRepository interface {
	Get(ctx context.Context, id string) (*domain.ContactSubmission, error)
	List(ctx context.Context, opts ListOptions) ([]domain.ContactSubmission, error)
	Create(ctx context.Context, c *domain.ContactSubmission) error
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.ContactSubmission, error)
	Delete(ctx context.Context, id string) error
}
