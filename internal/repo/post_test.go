package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcallow/storefront/internal/models"
)

func TestPostRepo_CreateAndListByUser(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserRepo(gdb)
	posts := NewPostRepo(gdb)
	ctx := context.Background()

	alice := newTestUser("alice", "alice@example.com")
	require.NoError(t, users.Create(ctx, alice, "password1"))
	bob := newTestUser("bob", "bob@example.com")
	require.NoError(t, users.Create(ctx, bob, "password1"))

	first := &models.Post{UserID: alice.ID, Tweet: "first"}
	require.NoError(t, posts.Create(ctx, first))
	second := &models.Post{UserID: alice.ID, Tweet: "second"}
	require.NoError(t, posts.Create(ctx, second))
	require.NoError(t, posts.Create(ctx, &models.Post{UserID: bob.ID, Tweet: "bobs"}))

	assert.NotZero(t, first.PostID)
	assert.NotEqual(t, first.PostID, second.PostID)
	assert.False(t, first.DatePosted.IsZero(), "date_posted assigned at insert")

	list, err := posts.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Tweet)
	assert.Equal(t, "second", list[1].Tweet)
	assert.Less(t, list[0].PostID, list[1].PostID)

	t.Run("EmptyTweetAccepted", func(t *testing.T) {
		empty := &models.Post{UserID: bob.ID}
		require.NoError(t, posts.Create(ctx, empty))

		list, err := posts.ListByUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "", list[1].Tweet)
	})

	t.Run("NoPosts", func(t *testing.T) {
		carol := newTestUser("carol", "carol@example.com")
		require.NoError(t, users.Create(ctx, carol, "password1"))

		list, err := posts.ListByUser(ctx, carol.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestContactRepo_Create(t *testing.T) {
	gdb := setupTestDB(t)
	contacts := NewContactRepo(gdb)
	ctx := context.Background()

	c := &models.Contact{Name: "Dana", Email: "dana@example.com", Message: "Hello there"}
	require.NoError(t, contacts.Create(ctx, c))
	assert.NotZero(t, c.ID)

	var stored models.Contact
	require.NoError(t, gdb.First(&stored, c.ID).Error)
	assert.Equal(t, "Dana", stored.Name)
	assert.Equal(t, "dana@example.com", stored.Email)
	assert.Equal(t, "Hello there", stored.Message)

	n, err := contacts.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
