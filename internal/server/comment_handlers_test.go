package server

import (
	"fmt"
	"net/http"
	"testing"

	"newshub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentPath(newsID uint, suffix string) string {
	return fmt.Sprintf("/api/v1/news/%d/comments%s", newsID, suffix)
}

func TestCreateComment(t *testing.T) {
	s, app, db := newTestServer(t)
	news := seedNews(t, db, "commentable")
	_, token := registerUser(t, s, "commenter")

	t.Run("requires auth", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, commentPath(news.ID, ""), "",
			jsonBody(t, map[string]string{"content": "hi"}))
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("success increments counter", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodPost, commentPath(news.ID, ""), token,
			jsonBody(t, map[string]string{"content": "first!"}))
		require.Equal(t, http.StatusCreated, status)
		data := dataMap(t, envelope)
		assert.Equal(t, "first!", data["content"])

		var fresh models.News
		require.NoError(t, db.First(&fresh, news.ID).Error)
		assert.Equal(t, 1, fresh.CommentCount)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, commentPath(news.ID, ""), token,
			jsonBody(t, map[string]string{"content": "   "}))
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown article", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, commentPath(9999, ""), token,
			jsonBody(t, map[string]string{"content": "hello"}))
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestGetComments_WithReplies(t *testing.T) {
	s, app, db := newTestServer(t)
	news := seedNews(t, db, "threaded")
	_, token := registerUser(t, s, "threader")

	status, envelope := doJSON(t, app, http.MethodPost, commentPath(news.ID, ""), token,
		jsonBody(t, map[string]string{"content": "parent comment"}))
	require.Equal(t, http.StatusCreated, status)
	parentID := uint(dataMap(t, envelope)["id"].(float64))

	status, _ = doJSON(t, app, http.MethodPost, commentPath(news.ID, ""), token,
		jsonBody(t, map[string]any{"content": "a reply", "parent_id": parentID}))
	require.Equal(t, http.StatusCreated, status)

	status, envelope = doJSON(t, app, http.MethodGet, commentPath(news.ID, ""), "", nil)
	require.Equal(t, http.StatusOK, status)
	data := dataMap(t, envelope)
	assert.EqualValues(t, 1, data["total"])

	items, ok := data["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	top := items[0].(map[string]any)
	assert.Equal(t, "parent comment", top["content"])

	replies, ok := top["replies"].([]any)
	require.True(t, ok)
	require.Len(t, replies, 1)
	assert.Equal(t, "a reply", replies[0].(map[string]any)["content"])
}

func TestUpdateComment_Ownership(t *testing.T) {
	s, app, db := newTestServer(t)
	news := seedNews(t, db, "editable")
	_, authorToken := registerUser(t, s, "author")
	_, otherToken := registerUser(t, s, "bystander")

	_, envelope := doJSON(t, app, http.MethodPost, commentPath(news.ID, ""), authorToken,
		jsonBody(t, map[string]string{"content": "draft thoughts"}))
	commentID := uint(dataMap(t, envelope)["id"].(float64))
	path := commentPath(news.ID, fmt.Sprintf("/%d", commentID))

	t.Run("owner edits", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodPut, path, authorToken,
			jsonBody(t, map[string]string{"content": "final thoughts"}))
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "final thoughts", dataMap(t, envelope)["content"])
	})

	t.Run("other user rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPut, path, otherToken,
			jsonBody(t, map[string]string{"content": "hijacked"}))
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestDeleteComment(t *testing.T) {
	s, app, db := newTestServer(t)
	news := seedNews(t, db, "deletable")
	_, authorToken := registerUser(t, s, "deleter")
	_, otherToken := registerUser(t, s, "onlooker")

	_, envelope := doJSON(t, app, http.MethodPost, commentPath(news.ID, ""), authorToken,
		jsonBody(t, map[string]string{"content": "regrettable"}))
	commentID := uint(dataMap(t, envelope)["id"].(float64))
	path := commentPath(news.ID, fmt.Sprintf("/%d", commentID))

	t.Run("other user rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, path, otherToken, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("owner deletes and counter drops", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodDelete, path, authorToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, envelope.Success)

		var fresh models.News
		require.NoError(t, db.First(&fresh, news.ID).Error)
		assert.Equal(t, 0, fresh.CommentCount)

		status, _ = doJSON(t, app, http.MethodGet, commentPath(news.ID, ""), "", nil)
		require.Equal(t, http.StatusOK, status)
	})
}
