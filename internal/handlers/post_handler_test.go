package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink/backend/internal/models"
)

func createPost(t *testing.T, env *testEnv, token, text string) models.Post {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/posts", token, map[string]string{"text": text})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	decodeJSON(t, rec, &post)
	return post
}

func TestCreatePost(t *testing.T) {
	env := newTestEnv()
	token, userID := env.register(t, "Post Author", "author@example.com")

	t.Run("valid post", func(t *testing.T) {
		post := createPost(t, env, token, "hello world")
		assert.Equal(t, "hello world", post.Text)
		assert.Equal(t, userID, post.UserID)
		// Author name/avatar are snapshotted onto the post.
		assert.Equal(t, "Post Author", post.Name)
		assert.NotEmpty(t, post.Avatar)
		assert.Empty(t, post.Likes)
	})

	t.Run("empty text", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/posts", token, map[string]string{"text": ""})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp models.ValidationErrorResponse
		decodeJSON(t, rec, &resp)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "Text is required", resp.Errors[0].Msg)
	})
}

func TestListPostsMostRecentFirst(t *testing.T) {
	env := newTestEnv()
	token, _ := env.register(t, "Lister", "lister@example.com")

	createPost(t, env, token, "first")
	time.Sleep(time.Millisecond)
	createPost(t, env, token, "second")
	time.Sleep(time.Millisecond)
	createPost(t, env, token, "third")

	rec := env.do(t, http.MethodGet, "/api/posts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []models.Post
	decodeJSON(t, rec, &posts)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Text)
	assert.Equal(t, "second", posts[1].Text)
	assert.Equal(t, "first", posts[2].Text)
}

func TestGetPostMalformedIDIsNotFound(t *testing.T) {
	env := newTestEnv()
	token, _ := env.register(t, "Getter", "getter@example.com")

	rec := env.do(t, http.MethodGet, "/api/posts/definitely-not-an-id", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp models.ErrorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "Post not found", resp.Msg)
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv()
	ownerToken, _ := env.register(t, "Owner", "postowner@example.com")
	otherToken, _ := env.register(t, "Other", "other@example.com")

	post := createPost(t, env, ownerToken, "mine")

	t.Run("non-owner is rejected and the post survives", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/posts/"+post.ID, otherToken, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var resp models.ErrorResponse
		decodeJSON(t, rec, &resp)
		assert.Equal(t, "User not authorized", resp.Msg)

		rec = env.do(t, http.MethodGet, "/api/posts/"+post.ID, otherToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/posts/"+post.ID, ownerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/posts/"+post.ID, ownerToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("absent post", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/posts/"+post.ID, ownerToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLikeUnlike(t *testing.T) {
	env := newTestEnv()
	authorToken, _ := env.register(t, "Author", "likeauthor@example.com")
	likerToken, likerID := env.register(t, "Liker", "liker@example.com")

	post := createPost(t, env, authorToken, "like me")

	t.Run("like", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/posts/like/"+post.ID, likerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var likes []models.Like
		decodeJSON(t, rec, &likes)
		require.Len(t, likes, 1)
		assert.Equal(t, likerID, likes[0].UserID)
	})

	t.Run("second like is rejected, likes unchanged", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/posts/like/"+post.ID, likerToken, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp models.ErrorResponse
		decodeJSON(t, rec, &resp)
		assert.Equal(t, "Post already liked", resp.Msg)

		rec = env.do(t, http.MethodGet, "/api/posts/"+post.ID, likerToken, nil)
		var got models.Post
		decodeJSON(t, rec, &got)
		assert.Len(t, got.Likes, 1)
	})

	t.Run("newest like sits first", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/posts/like/"+post.ID, authorToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var likes []models.Like
		decodeJSON(t, rec, &likes)
		require.Len(t, likes, 2)
		assert.Equal(t, likerID, likes[1].UserID)
	})

	t.Run("unlike", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/posts/unlike/"+post.ID, likerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var likes []models.Like
		decodeJSON(t, rec, &likes)
		assert.Len(t, likes, 1)
	})

	t.Run("unlike without a like is rejected, likes unchanged", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/posts/unlike/"+post.ID, likerToken, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp models.ErrorResponse
		decodeJSON(t, rec, &resp)
		assert.Equal(t, "Post has not yet been liked", resp.Msg)

		rec = env.do(t, http.MethodGet, "/api/posts/"+post.ID, likerToken, nil)
		var got models.Post
		decodeJSON(t, rec, &got)
		assert.Len(t, got.Likes, 1)
	})

	t.Run("like absent post", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/posts/like/nope", likerToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestComments(t *testing.T) {
	env := newTestEnv()
	authorToken, _ := env.register(t, "Author", "cauthor@example.com")
	commenterToken, commenterID := env.register(t, "Commenter", "commenter@example.com")

	post := createPost(t, env, authorToken, "discuss")

	rec := env.do(t, http.MethodPost, "/api/posts/comment/"+post.ID, commenterToken, map[string]string{"text": "nice"})
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []models.Comment
	decodeJSON(t, rec, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Text)
	assert.Equal(t, commenterID, comments[0].UserID)
	assert.Equal(t, "Commenter", comments[0].Name)

	t.Run("empty comment text", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/posts/comment/"+post.ID, commenterToken, map[string]string{"text": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("only the comment author may delete it", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/posts/comment/"+post.ID+"/"+comments[0].ID, authorToken, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/posts/comment/"+post.ID+"/"+comments[0].ID, commenterToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var remaining []models.Comment
		decodeJSON(t, rec, &remaining)
		assert.Len(t, remaining, 0)
	})

	t.Run("absent comment", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/posts/comment/"+post.ID+"/nope", commenterToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
