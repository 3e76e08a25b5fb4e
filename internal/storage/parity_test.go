package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
	"construction-cms/internal/storage/gormstore"
	"construction-cms/internal/storage/s3store"
)

// Both adapters must be indistinguishable through the Store interface.
// The same scripted session runs against each and asserts the same
// observable results.
func TestBackendParity(t *testing.T) {
	backends := map[string]func(t *testing.T) storage.Store{
		"relational": func(t *testing.T) storage.Store {
			db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
				Logger:         glogger.Default.LogMode(glogger.Silent),
				TranslateError: true,
			})
			require.NoError(t, err)
			sqlDB, err := db.DB()
			require.NoError(t, err)
			sqlDB.SetMaxOpenConns(1)
			require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
			require.NoError(t, gormstore.AutoMigrate(db))
			st, err := gormstore.New(db, zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = st.Close() })
			return st
		},
		"document": func(t *testing.T) storage.Store {
			st, err := s3store.New(s3store.NewMemoryObjects(), zap.NewNop())
			require.NoError(t, err)
			return st
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			runScenario(t, open(t))
		})
	}
}

func runScenario(t *testing.T, st storage.Store) {
	ctx := context.Background()

	// Ordered content: three slides, then push the last to the top.
	var slideIDs []string
	for _, title := range []string{"first", "second", "third"} {
		item := &domain.CarouselItem{Title: title, ImageURL: "/i.jpg", IsActive: true, Order: -1}
		require.NoError(t, st.Carousel().Create(ctx, item))
		require.NotEmpty(t, item.ID)
		slideIDs = append(slideIDs, item.ID)
	}
	for {
		moved, err := st.Carousel().Move(ctx, slideIDs[2], true)
		require.NoError(t, err)
		if !moved {
			break
		}
	}
	slides, err := st.Carousel().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, slides, 3)
	assert.Equal(t, "third", slides[0].Title)
	assert.Equal(t, "first", slides[1].Title)
	assert.Equal(t, "second", slides[2].Title)

	// Swapping up then back down restores the original sequence.
	moved, err := st.Carousel().Move(ctx, slideIDs[0], true)
	require.NoError(t, err)
	require.True(t, moved)
	moved, err = st.Carousel().Move(ctx, slideIDs[0], false)
	require.NoError(t, err)
	require.True(t, moved)
	again, err := st.Carousel().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, again, len(slides))
	for i := range slides {
		assert.Equal(t, slides[i].Title, again[i].Title)
		assert.Equal(t, slides[i].Order, again[i].Order)
	}

	// New records come out active without the caller saying so.
	plain := &domain.CarouselItem{Title: "auto-active", ImageURL: "/i.jpg", Order: -1}
	require.NoError(t, st.Carousel().Create(ctx, plain))
	created, err := st.Carousel().Get(ctx, plain.ID)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.IsActive)

	// An empty patch changes nothing, including the update stamp.
	time.Sleep(5 * time.Millisecond)
	untouched, err := st.Carousel().Update(ctx, plain.ID, storage.CarouselPatch{})
	require.NoError(t, err)
	assert.True(t, untouched.UpdatedAt.Equal(created.UpdatedAt))

	off := false
	_, err = st.Carousel().Update(ctx, plain.ID, storage.CarouselPatch{IsActive: &off})
	require.NoError(t, err)
	visible, err := st.Carousel().ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, visible, 3, "deactivated slide drops out")

	// Project graph: owned images cascade, weak references detach.
	proj := &domain.Project{Title: "Mill Conversion", Category: domain.CategoryClassic, Order: -1}
	require.NoError(t, st.Projects().Create(ctx, proj))
	img := &domain.ProjectImage{ImageURL: "/p/1.jpg", ProjectID: proj.ID, Order: -1}
	require.NoError(t, st.ProjectImages().Create(ctx, img))
	doc := &domain.Document{Title: "Mill Plans", FileURL: "/f.pdf", Order: 1, ProjectID: &proj.ID}
	require.NoError(t, st.Documents().Create(ctx, doc))

	docs, err := st.Documents().ByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	require.NoError(t, st.Projects().Delete(ctx, proj.ID))
	gotImg, err := st.ProjectImages().Get(ctx, img.ID)
	require.NoError(t, err)
	assert.Nil(t, gotImg)
	gotDoc, err := st.Documents().Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, gotDoc)
	assert.Nil(t, gotDoc.ProjectID)

	// Filtering: contains is case-insensitive in both engines.
	found, err := st.Documents().List(ctx, storage.ListOptions{
		Where: storage.Contains{Field: "title", Value: "mill"},
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Mill Plans", found[0].Title)

	// Unknown fields fail identically.
	_, err = st.Documents().List(ctx, storage.ListOptions{
		Where: storage.Eq{Field: "nope", Value: 1},
	})
	assert.ErrorIs(t, err, storage.ErrUnknownField)

	// Users: unique email, lookup, not-found mapping.
	u := &domain.User{Name: "Admin", Email: "admin@example.com", Password: "hash", Role: "admin"}
	require.NoError(t, st.Users().Create(ctx, u))
	dup := &domain.User{Name: "Dup", Email: "admin@example.com", Password: "hash"}
	assert.ErrorIs(t, st.Users().Create(ctx, dup), storage.ErrDuplicateKey)

	absent, err := st.Users().Get(ctx, "no-such-user")
	require.NoError(t, err)
	assert.Nil(t, absent)

	name := "x"
	_, err = st.Users().Update(ctx, "no-such-user", storage.UserPatch{Name: &name})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, st.Users().Delete(ctx, "no-such-user"))

	// Public handbook listing never leaks hashes.
	hb := &domain.Handbook{Title: "Owners", Password: "$2a$10$hashvalue", IsActive: true, Order: -1}
	require.NoError(t, st.Handbooks().Create(ctx, hb))
	public, err := st.Handbooks().ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Empty(t, public[0].Password)

	require.NoError(t, st.Ping(ctx))
}
