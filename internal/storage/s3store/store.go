package s3store

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"construction-cms/internal/storage"
)

const backendName = "document"

// ObjectAPI is the whole-blob contract the adapter needs from an object
// store: read a key (absent keys return nil, nil) and replace a key.
// objectstore.Client satisfies it; tests use an in-memory fake.
type ObjectAPI interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Ping(ctx context.Context) error
}

// Store implements storage.Store over one JSON array object per entity
// collection. Every mutation is a whole-collection read-modify-write;
// two writers racing on one collection resolve last-writer-wins. The
// engine gives nothing for free here: ids, cascades, filtering and
// ordering are all done in this package.
type Store struct {
	objects ObjectAPI
	prefix  string
	log     *zap.Logger
	sf      singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix overrides the default "data/" object key prefix.
func WithKeyPrefix(p string) Option {
	return func(s *Store) { s.prefix = p }
}

func New(objects ObjectAPI, log *zap.Logger, opts ...Option) (storage.Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{objects: objects, prefix: "data/", log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Carousel() storage.CarouselRepository          { return carouselRepo{s.carouselCol()} }
func (s *Store) Projects() storage.ProjectRepository           { return projectRepo{s} }
func (s *Store) ProjectImages() storage.ProjectImageRepository { return projectImageRepo{s.imageCol()} }
func (s *Store) Documents() storage.DocumentRepository         { return documentRepo{s.documentCol()} }
func (s *Store) Handbooks() storage.HandbookRepository         { return handbookRepo{s} }
func (s *Store) HandbookFiles() storage.HandbookFileRepository { return handbookFileRepo{s.handbookFileCol()} }
func (s *Store) Users() storage.UserRepository                 { return userRepo{s.userCol()} }
func (s *Store) Contacts() storage.ContactRepository           { return contactRepo{s.contactCol()} }

func (s *Store) Ping(ctx context.Context) error { return s.objects.Ping(ctx) }

// Close is a no-op; the object store client owns no per-store state.
func (s *Store) Close() error { return nil }

// Migrate prepares an object store for use: every collection object
// that does not exist yet is initialized to an empty array. The
// document-mode counterpart of gormstore.AutoMigrate.
func Migrate(ctx context.Context, objects ObjectAPI, opts ...Option) error {
	s := &Store{objects: objects, prefix: "data/", log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s.InitCollections(ctx)
}

// CollectionKeys lists every object key the store uses, in a stable
// order. The migrate command initializes them to empty arrays.
func (s *Store) CollectionKeys() []string {
	return []string{
		s.prefix + "carousel.json",
		s.prefix + "projects.json",
		s.prefix + "project-images.json",
		s.prefix + "documents.json",
		s.prefix + "handbooks.json",
		s.prefix + "handbook-files.json",
		s.prefix + "users.json",
		s.prefix + "contact-submissions.json",
	}
}

// InitCollections writes an empty array for every collection object that
// does not exist yet. Existing data is left untouched.
func (s *Store) InitCollections(ctx context.Context) error {
	for _, key := range s.CollectionKeys() {
		data, err := s.objects.Get(ctx, key)
		if err != nil {
			return err
		}
		if data != nil {
			continue
		}
		if err := s.objects.Put(ctx, key, []byte("[]")); err != nil {
			return err
		}
	}
	return nil
}
