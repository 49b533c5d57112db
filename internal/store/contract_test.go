package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibeckermayer/syndicate/internal/types"
)

// testRepository exercises behavior every backend must share
func testRepository(t *testing.T, repo Repository) {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	posts := []types.LinkedInPost{
		{BackendURN: "urn:li:ugcPost:1", AuthorName: "Ada", PostText: "low", Category: types.CategoryTechnology, Priority: 1, CreatedAt: base},
		{BackendURN: "urn:li:ugcPost:2", AuthorName: "Bob", PostText: "high", Category: types.CategoryTechnology, Priority: 5, CreatedAt: base.Add(time.Minute),
			EngagementData: types.EngagementData{Likes: 10, Comments: 2, Reposts: 1}},
		{BackendURN: "urn:li:ugcPost:3", PostText: "other category", Category: types.CategoryFinance, Priority: 9, CreatedAt: base},
		{BackendURN: "urn:li:ugcPost:4", PostText: "archived", Category: types.CategoryTechnology, Priority: 10, Status: types.PostStatusArchived, CreatedAt: base},
	}
	for i := range posts {
		require.NoError(t, repo.SavePost(ctx, &posts[i]))
	}

	t.Run("post by urn", func(t *testing.T) {
		p, err := repo.PostByURN(ctx, "urn:li:ugcPost:2")
		require.NoError(t, err)
		assert.Equal(t, "Bob", p.AuthorName)
		assert.Equal(t, types.PostStatusPending, p.Status)
		assert.Equal(t, 10, p.EngagementData.Likes)

		_, err = repo.PostByURN(ctx, "urn:li:ugcPost:404")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save post upserts", func(t *testing.T) {
		updated := posts[0]
		updated.PostText = "low, edited"
		require.NoError(t, repo.SavePost(ctx, &updated))

		p, err := repo.PostByURN(ctx, "urn:li:ugcPost:1")
		require.NoError(t, err)
		assert.Equal(t, "low, edited", p.PostText)
	})

	t.Run("candidate posts", func(t *testing.T) {
		got, err := repo.CandidatePosts(ctx, types.CategoryTechnology, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "urn:li:ugcPost:2", got[0].BackendURN)
		assert.Equal(t, "urn:li:ugcPost:1", got[1].BackendURN)

		got, err = repo.CandidatePosts(ctx, types.CategoryTechnology, 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = repo.CandidatePosts(ctx, types.CategoryHealth, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("has user commented", func(t *testing.T) {
		ok, err := repo.HasUserCommented(ctx, "urn:li:person:u1", "urn:li:ugcPost:2")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, repo.SaveComment(ctx, &types.LinkedInComment{
			CommentID:   "c-1",
			UserID:      "urn:li:person:u1",
			PostID:      "urn:li:ugcPost:2",
			CommentText: "Great insight.",
			Category:    types.CategoryTechnology,
			PostedURL:   "https://www.linkedin.com/feed/update/urn:li:ugcPost:2",
		}))

		ok, err = repo.HasUserCommented(ctx, "urn:li:person:u1", "urn:li:ugcPost:2")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.HasUserCommented(ctx, "urn:li:person:u2", "urn:li:ugcPost:2")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("comment id is unique", func(t *testing.T) {
		err := repo.SaveComment(ctx, &types.LinkedInComment{
			CommentID: "c-1", UserID: "urn:li:person:u3", PostID: "urn:li:ugcPost:1", CommentText: "dup",
		})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("comments by user", func(t *testing.T) {
		require.NoError(t, repo.SaveComment(ctx, &types.LinkedInComment{
			CommentID: "c-2", UserID: "urn:li:person:u1", PostID: "urn:li:ugcPost:1",
			CommentText: "Second.", CreatedAt: time.Now().UTC().Add(time.Hour),
		}))

		got, err := repo.CommentsByUser(ctx, "urn:li:person:u1", 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "c-2", got[0].CommentID)
		assert.Equal(t, types.CategoryTechnology, got[1].Category)
	})
}
