package repository

import (
	"context"
	"testing"

	"newshub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByNews_TopLevelOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "commenter")
	news := seedNews(t, db, "discussed", models.NewsStatusPublished)

	parent := &models.Comment{Content: "first!", UserID: user.ID, NewsID: news.ID}
	require.NoError(t, repo.Create(ctx, parent))

	reply := &models.Comment{Content: "welcome", UserID: user.ID, NewsID: news.ID, ParentID: &parent.ID}
	require.NoError(t, repo.Create(ctx, reply))

	comments, total, err := repo.ListByNews(ctx, news.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, comments, 1)
	assert.Equal(t, "first!", comments[0].Content)
	assert.Equal(t, "commenter", comments[0].User.Username)

	replies, err := repo.ListReplies(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "welcome", replies[0].Content)
}

func TestCommentRepository_Delete_SoftDeletesThread(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "remover")
	news := seedNews(t, db, "moderated", models.NewsStatusPublished)

	comment := &models.Comment{Content: "going away", UserID: user.ID, NewsID: news.ID}
	require.NoError(t, repo.Create(ctx, comment))
	require.NoError(t, repo.Delete(ctx, comment.ID))

	comments, total, err := repo.ListByNews(ctx, news.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, comments)

	// The row survives as a soft delete
	var raw int64
	require.NoError(t, db.Unscoped().Model(&models.Comment{}).Where("news_id = ?", news.ID).Count(&raw).Error)
	assert.Equal(t, int64(1), raw)
}
