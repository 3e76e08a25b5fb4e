package s3store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

func TestProjectDeleteCascadesImagesAndDetachesReferences(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	proj := &domain.Project{Title: "Harbor Warehouse", Category: domain.CategoryNew, Order: -1}
	require.NoError(t, st.Projects().Create(ctx, proj))
	other := &domain.Project{Title: "Untouched", Category: domain.CategoryClassic, Order: -1}
	require.NoError(t, st.Projects().Create(ctx, other))

	img := &domain.ProjectImage{ImageURL: "/img/1.jpg", ProjectID: proj.ID, Order: -1}
	require.NoError(t, st.ProjectImages().Create(ctx, img))
	keepImg := &domain.ProjectImage{ImageURL: "/img/2.jpg", ProjectID: other.ID, Order: -1}
	require.NoError(t, st.ProjectImages().Create(ctx, keepImg))

	doc := &domain.Document{Title: "Plans", FileURL: "/f.pdf", Order: 1, ProjectID: &proj.ID}
	require.NoError(t, st.Documents().Create(ctx, doc))
	hb := &domain.Handbook{Title: "Owner Guide", Order: 1, ProjectID: &proj.ID}
	require.NoError(t, st.Handbooks().Create(ctx, hb))

	require.NoError(t, st.Projects().Delete(ctx, proj.ID))

	gone, err := st.Projects().Get(ctx, proj.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	imgs, err := st.ProjectImages().ByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, imgs, "owned images die with the project")

	kept, err := st.ProjectImages().Get(ctx, keepImg.ID)
	require.NoError(t, err)
	require.NotNil(t, kept, "other projects' images survive")

	gotDoc, err := st.Documents().Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, gotDoc, "documents only reference the project")
	assert.Nil(t, gotDoc.ProjectID)

	gotHb, err := st.Handbooks().Get(ctx, hb.ID)
	require.NoError(t, err)
	require.NotNil(t, gotHb)
	assert.Nil(t, gotHb.ProjectID)
}

func TestProjectCreateIgnoresInlineImages(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	proj := &domain.Project{
		Title:    "Inline",
		Category: domain.CategoryFuture,
		Order:    -1,
		Images:   []domain.ProjectImage{{ImageURL: "/sneaky.jpg"}},
	}
	require.NoError(t, st.Projects().Create(ctx, proj))
	assert.Empty(t, proj.Images)

	imgs, err := st.ProjectImages().ByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, imgs)
}

func TestProjectImageOrderScopedPerProject(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	p1 := &domain.Project{Title: "One", Category: domain.CategoryNew, Order: -1}
	require.NoError(t, st.Projects().Create(ctx, p1))
	p2 := &domain.Project{Title: "Two", Category: domain.CategoryNew, Order: -1}
	require.NoError(t, st.Projects().Create(ctx, p2))

	a := &domain.ProjectImage{ImageURL: "/a.jpg", ProjectID: p1.ID, Order: -1}
	require.NoError(t, st.ProjectImages().Create(ctx, a))
	b := &domain.ProjectImage{ImageURL: "/b.jpg", ProjectID: p1.ID, Order: -1}
	require.NoError(t, st.ProjectImages().Create(ctx, b))
	c := &domain.ProjectImage{ImageURL: "/c.jpg", ProjectID: p2.ID, Order: -1}
	require.NoError(t, st.ProjectImages().Create(ctx, c))

	assert.Equal(t, 1, a.Order)
	assert.Equal(t, 2, b.Order)
	assert.Equal(t, 1, c.Order, "order restarts per project")

	require.NoError(t, st.ProjectImages().Reorder(ctx, p1.ID, []string{b.ID, a.ID}))
	imgs, err := st.ProjectImages().ByProject(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, imgs, 2)
	assert.Equal(t, "/b.jpg", imgs[0].ImageURL)
	assert.Equal(t, "/a.jpg", imgs[1].ImageURL)

	// An id from another project's scope does not reorder.
	assert.ErrorIs(t, st.ProjectImages().Reorder(ctx, p1.ID, []string{c.ID}), storage.ErrNotFound)
}

func TestProjectDetailsRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	proj := &domain.Project{
		Title:    "Detailed",
		Category: domain.CategoryNew,
		Order:    -1,
		Details: domain.ProjectDetails{
			Specs:    []domain.DetailItem{{Label: "Area", Value: "900 m2"}},
			Features: []string{"Solar roof"},
		},
	}
	require.NoError(t, st.Projects().Create(ctx, proj))

	got, err := st.Projects().Get(ctx, proj.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Details.Specs, 1)
	assert.Equal(t, "Area", got.Details.Specs[0].Label)
	assert.Equal(t, []string{"Solar roof"}, got.Details.Features)

	details := domain.ProjectDetails{Description: "rewritten"}
	updated, err := st.Projects().Update(ctx, proj.ID, storage.ProjectPatch{Details: &details})
	require.NoError(t, err)
	assert.Empty(t, updated.Details.Specs, "patched details replace the whole bag")
	assert.Equal(t, "rewritten", updated.Details.Description)
}
