package gormstore

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
)

// newTestStore opens an in-memory sqlite database. One connection at
// most, so every query sees the same memory database and the foreign
// key pragma sticks.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         glogger.Default.LogMode(glogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, AutoMigrate(db))
	st, err := New(db, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestCarouselCRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	item := &domain.CarouselItem{
		Title:        "Opening",
		ImageURL:     "/img/a.jpg",
		IsActive:     true,
		Order:        -1,
		TextPosition: domain.PosCenter,
	}
	require.NoError(t, st.Carousel().Create(ctx, item))
	require.NotEmpty(t, item.ID)
	assert.Equal(t, 1, item.Order)

	got, err := st.Carousel().Get(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Opening", got.Title)
	assert.False(t, got.CreatedAt.IsZero())

	title := "Renamed"
	inactive := false
	updated, err := st.Carousel().Update(ctx, item.ID, storage.CarouselPatch{Title: &title, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "/img/a.jpg", updated.ImageURL)

	require.NoError(t, st.Carousel().Delete(ctx, item.ID))
	require.NoError(t, st.Carousel().Delete(ctx, item.ID))

	got, err = st.Carousel().Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateAbsentRowReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	title := "x"
	_, err := st.Carousel().Update(ctx, "missing", storage.CarouselPatch{Title: &title})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNegativeOrderAppendsAfterMax(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	first := &domain.CarouselItem{Title: "a", ImageURL: "/i.jpg", Order: 7}
	require.NoError(t, st.Carousel().Create(ctx, first))
	second := &domain.CarouselItem{Title: "b", ImageURL: "/i.jpg", Order: -1}
	require.NoError(t, st.Carousel().Create(ctx, second))
	assert.Equal(t, 8, second.Order)
}

func TestMoveAndReorder(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		item := &domain.CarouselItem{Title: title, ImageURL: "/i.jpg", Order: -1}
		require.NoError(t, st.Carousel().Create(ctx, item))
		ids = append(ids, item.ID)
	}

	moved, err := st.Carousel().Move(ctx, ids[0], false)
	require.NoError(t, err)
	assert.True(t, moved)

	items, err := st.Carousel().List(ctx, storage.ListOptions{OrderBy: storage.Asc("order")})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].Title)
	assert.Equal(t, "a", items[1].Title)

	moved, err = st.Carousel().Move(ctx, ids[1], true)
	require.NoError(t, err)
	assert.False(t, moved, "already first")

	require.NoError(t, st.Carousel().Reorder(ctx, []string{ids[2], ids[1], ids[0]}))
	items, err = st.Carousel().List(ctx, storage.ListOptions{OrderBy: storage.Asc("order")})
	require.NoError(t, err)
	assert.Equal(t, "c", items[0].Title)
	assert.Equal(t, "b", items[1].Title)
	assert.Equal(t, "a", items[2].Title)

	assert.ErrorIs(t, st.Carousel().Reorder(ctx, []string{"missing"}), storage.ErrNotFound)
}

func TestDuplicateUserEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := &domain.User{Name: "Ann", Email: "ann@example.com", Password: "hash", Role: "admin"}
	require.NoError(t, st.Users().Create(ctx, u))

	dup := &domain.User{Name: "Copycat", Email: "ann@example.com", Password: "hash2"}
	assert.ErrorIs(t, st.Users().Create(ctx, dup), storage.ErrDuplicateKey)

	found, err := st.Users().FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)
}

func TestProjectDeleteCascadeAndDetach(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	proj := &domain.Project{Title: "Mill Site", Category: domain.CategoryNew, Order: -1}
	require.NoError(t, st.Projects().Create(ctx, proj))

	img := &domain.ProjectImage{ImageURL: "/img/1.jpg", ProjectID: proj.ID, Order: -1}
	require.NoError(t, st.ProjectImages().Create(ctx, img))

	doc := &domain.Document{Title: "Plans", FileURL: "/f.pdf", Order: 1, ProjectID: &proj.ID}
	require.NoError(t, st.Documents().Create(ctx, doc))
	hb := &domain.Handbook{Title: "Guide", Order: 1, ProjectID: &proj.ID}
	require.NoError(t, st.Handbooks().Create(ctx, hb))

	require.NoError(t, st.Projects().Delete(ctx, proj.ID))

	gotImg, err := st.ProjectImages().Get(ctx, img.ID)
	require.NoError(t, err)
	assert.Nil(t, gotImg, "FK cascade removes owned images")

	gotDoc, err := st.Documents().Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, gotDoc)
	assert.Nil(t, gotDoc.ProjectID, "weak reference is nulled")

	gotHb, err := st.Handbooks().Get(ctx, hb.ID)
	require.NoError(t, err)
	require.NotNil(t, gotHb)
	assert.Nil(t, gotHb.ProjectID)
}

func TestHandbookDeleteCascadesFiles(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	hb := &domain.Handbook{Title: "Bundle", Order: -1}
	require.NoError(t, st.Handbooks().Create(ctx, hb))
	f := &domain.HandbookFile{HandbookID: hb.ID, Title: "Guide", FileURL: "/g.pdf", Order: -1}
	require.NoError(t, st.HandbookFiles().Create(ctx, f))

	require.NoError(t, st.Handbooks().Delete(ctx, hb.ID))

	gotFile, err := st.HandbookFiles().Get(ctx, f.ID)
	require.NoError(t, err)
	assert.Nil(t, gotFile)
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	off := false
	for _, d := range []domain.Document{
		{Title: "Annual Report", Category: "reports", Order: 2},
		{Title: "Safety Handbook", Category: "guides", Order: 1},
		{Title: "price LIST", Category: "reports", Order: 3},
	} {
		rec := d
		require.NoError(t, st.Documents().Create(ctx, &rec))
		if rec.Title == "price LIST" {
			_, err := st.Documents().Update(ctx, rec.ID, storage.DocumentPatch{IsActive: &off})
			require.NoError(t, err)
		}
	}

	out, err := st.Documents().List(ctx, storage.ListOptions{
		Where: storage.Contains{Field: "title", Value: "PRICE"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "price LIST", out[0].Title)

	out, err = st.Documents().List(ctx, storage.ListOptions{
		Where: storage.Or{
			storage.Eq{Field: "category", Value: "guides"},
			storage.Eq{Field: "isActive", Value: false},
		},
		OrderBy: storage.Asc("order"),
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Safety Handbook", out[0].Title)
	assert.Equal(t, "price LIST", out[1].Title)

	_, err = st.Documents().List(ctx, storage.ListOptions{
		Where: storage.Eq{Field: "colour", Value: "red"},
	})
	assert.ErrorIs(t, err, storage.ErrUnknownField)
}

func TestIncrementDownloads(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	doc := &domain.Document{Title: "Price list", FileURL: "/f.pdf", Order: 1}
	require.NoError(t, st.Documents().Create(ctx, doc))

	n, err := st.Documents().IncrementDownloads(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = st.Documents().IncrementDownloads(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = st.Documents().IncrementDownloads(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateStoresRecordsActive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	item := &domain.CarouselItem{Title: "fresh", ImageURL: "/i.jpg", Order: -1}
	require.NoError(t, st.Carousel().Create(ctx, item))

	got, err := st.Carousel().Get(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsActive)
}

func TestEmptyPatchKeepsUpdateStamp(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	item := &domain.CarouselItem{Title: "still", ImageURL: "/i.jpg", Order: 1}
	require.NoError(t, st.Carousel().Create(ctx, item))
	created, err := st.Carousel().Get(ctx, item.ID)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	got, err := st.Carousel().Update(ctx, item.ID, storage.CarouselPatch{})
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))
}

func TestHandbookListPublicMasksPasswords(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	hb := &domain.Handbook{Title: "Owners", Password: "$2a$10$hash", IsActive: true, Order: -1}
	require.NoError(t, st.Handbooks().Create(ctx, hb))

	public, err := st.Handbooks().ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Empty(t, public[0].Password)
}
