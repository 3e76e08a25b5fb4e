package s3store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construction-cms/internal/domain"
	"construction-cms/internal/storage"
)

func TestUserEmailUniquenessIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	u := &domain.User{Name: "Ann", Email: "ann@example.com", Password: "hash", Role: "admin"}
	require.NoError(t, st.Users().Create(ctx, u))

	dup := &domain.User{Name: "Ann again", Email: "ANN@Example.com", Password: "hash2"}
	assert.ErrorIs(t, st.Users().Create(ctx, dup), storage.ErrDuplicateKey)

	found, err := st.Users().FindByEmail(ctx, "Ann@Example.COM")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	none, err := st.Users().FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestUserResetTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	u := &domain.User{Name: "Bo", Email: "bo@example.com", Password: "hash"}
	require.NoError(t, st.Users().Create(ctx, u))

	token := "tok-123"
	expiry := time.Now().UTC().Add(time.Hour)
	updated, err := st.Users().Update(ctx, u.ID, storage.UserPatch{
		ResetToken:       &token,
		ResetTokenExpiry: &expiry,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ResetToken)
	assert.Equal(t, "tok-123", *updated.ResetToken)

	newHash := "newhash"
	changed := true
	updated, err = st.Users().Update(ctx, u.ID, storage.UserPatch{
		Password:           &newHash,
		ClearResetToken:    true,
		HasChangedPassword: &changed,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ResetToken)
	assert.Nil(t, updated.ResetTokenExpiry)
	assert.True(t, updated.HasChangedPassword)
	assert.Equal(t, "newhash", updated.Password)
}

func TestUserSanitizedStripsCredentials(t *testing.T) {
	token := "tok"
	u := domain.User{Name: "Cy", Email: "cy@example.com", Password: "hash", ResetToken: &token}
	s := u.Sanitized()
	assert.Empty(t, s.Password)
	assert.Nil(t, s.ResetToken)
	assert.Equal(t, "cy@example.com", s.Email)
	assert.Equal(t, "hash", u.Password, "original is untouched")
}

// Concurrent writers on one collection resolve last-writer-wins. Which
// write lands last is undefined; what must hold is that the stored
// object stays a decodable collection with every record intact.
func TestConcurrentWritesKeepCollectionDecodable(t *testing.T) {
	ctx := context.Background()
	st, objects := newTestStore(t)

	seedUser := &domain.User{Name: "Seed", Email: "seed@example.com", Password: "hash"}
	require.NoError(t, st.Users().Create(ctx, seedUser))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := "worker"
			_, _ = st.Users().Update(ctx, seedUser.ID, storage.UserPatch{Name: &name})
		}(i)
	}
	wg.Wait()

	var users []domain.User
	require.NoError(t, json.Unmarshal(objects.Raw("data/users.json"), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "worker", users[0].Name)
}
