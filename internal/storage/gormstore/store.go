package gormstore

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

const backendName = "relational"

// Store implements storage.Store on a relational database through gorm.
// Atomicity, unique constraints and FK cascade behavior are delegated to
// the database engine.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// New wraps an open gorm handle. The returned value is safe for
// concurrent use; the connection pool is shared.
func New(db *gorm.DB, log *zap.Logger) (storage.Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}, nil
}

// AutoMigrate creates or updates every entity table, including the FK
// constraints the delete semantics rely on (CASCADE for owned children,
// SET NULL for weak project references).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.CarouselItem{},
		&domain.Project{},
		&domain.ProjectImage{},
		&domain.Document{},
		&domain.Handbook{},
		&domain.HandbookFile{},
		&domain.ContactSubmission{},
	)
}

func (s *Store) Carousel() storage.CarouselRepository          { return carouselRepo{s} }
func (s *Store) Projects() storage.ProjectRepository           { return projectRepo{s} }
func (s *Store) ProjectImages() storage.ProjectImageRepository { return projectImageRepo{s} }
func (s *Store) Documents() storage.DocumentRepository         { return documentRepo{s} }
func (s *Store) Handbooks() storage.HandbookRepository         { return handbookRepo{s} }
func (s *Store) HandbookFiles() storage.HandbookFileRepository { return handbookFileRepo{s} }
func (s *Store) Users() storage.UserRepository                 { return userRepo{s} }
func (s *Store) Contacts() storage.ContactRepository           { return contactRepo{s} }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
