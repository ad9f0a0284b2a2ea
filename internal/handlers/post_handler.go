package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devlink/backend/internal/middleware"
	"github.com/devlink/backend/internal/models"
	"github.com/devlink/backend/internal/services"
)

type PostHandler struct {
	posts services.PostService
}

func NewPostHandler(posts services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	post, err := h.posts.Create(ctx, userID, &req)
	if err != nil {
		log.Printf("[CreatePost] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	posts, err := h.posts.List(ctx)
	if err != nil {
		log.Printf("[ListPosts] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	post, err := h.posts.GetByID(ctx, postID)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		log.Printf("[GetPost] post=%s error=%v", postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.posts.Delete(ctx, userID, postID); err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		case services.ErrNotPostOwner:
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("User not authorized"))
		default:
			log.Printf("[DeletePost] user=%s post=%s error=%v", userID, postID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "Post removed"})
}

func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	likes, err := h.posts.Like(ctx, userID, postID)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		case services.ErrAlreadyLiked:
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Post already liked"))
		default:
			log.Printf("[LikePost] user=%s post=%s error=%v", userID, postID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

func (h *PostHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	likes, err := h.posts.Unlike(ctx, userID, postID)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		case services.ErrNotLiked:
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Post has not yet been liked"))
		default:
			log.Printf("[UnlikePost] user=%s post=%s error=%v", userID, postID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postId")

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	comments, err := h.posts.AddComment(ctx, userID, postID, &req)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		log.Printf("[AddComment] user=%s post=%s error=%v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postId")
	commentID := chi.URLParam(r, "commentId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	comments, err := h.posts.DeleteComment(ctx, userID, postID, commentID)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		case services.ErrCommentNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Comment does not exist"))
		case services.ErrNotCommentOwner:
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("User not authorized"))
		default:
			log.Printf("[DeleteComment] user=%s post=%s error=%v", userID, postID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
