package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devlink/backend/internal/models"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostOwner    = errors.New("not the post owner")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("not the comment owner")
)

type PostService interface {
	Create(ctx context.Context, userID string, req *models.CreatePostRequest) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, userID, postID string) error
	Like(ctx context.Context, userID, postID string) ([]models.Like, error)
	Unlike(ctx context.Context, userID, postID string) ([]models.Like, error)
	AddComment(ctx context.Context, userID, postID string, req *models.CreateCommentRequest) ([]models.Comment, error)
	DeleteComment(ctx context.Context, userID, postID, commentID string) ([]models.Comment, error)
}

// MemoryPostService is an in-memory PostService used in tests and local runs
// without a database.
type MemoryPostService struct {
	mu    sync.RWMutex
	posts map[string]*models.Post // postID -> post
	users UserService
}

func NewMemoryPostService(users UserService) *MemoryPostService {
	return &MemoryPostService{
		posts: make(map[string]*models.Post),
		users: users,
	}
}

func (s *MemoryPostService) clone(post *models.Post) *models.Post {
	out := *post
	out.Likes = append([]models.Like(nil), post.Likes...)
	out.Comments = append([]models.Comment(nil), post.Comments...)
	return &out
}

func (s *MemoryPostService) Create(ctx context.Context, userID string, req *models.CreatePostRequest) (*models.Post, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := &models.Post{
		ID:       uuid.New().String(),
		Text:     req.Text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		UserID:   userID,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     time.Now(),
	}
	s.posts[post.ID] = post

	return s.clone(post), nil
}

func (s *MemoryPostService) List(ctx context.Context) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		out = append(out, s.clone(post))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *MemoryPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, ErrPostNotFound
	}
	return s.clone(post), nil
}

func (s *MemoryPostService) Delete(ctx context.Context, userID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}

	delete(s.posts, postID)
	return nil
}

func (s *MemoryPostService) Like(ctx context.Context, userID, postID string) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	for _, like := range post.Likes {
		if like.UserID == userID {
			return nil, ErrAlreadyLiked
		}
	}

	post.Likes = append([]models.Like{{UserID: userID}}, post.Likes...)
	return append([]models.Like(nil), post.Likes...), nil
}

func (s *MemoryPostService) Unlike(ctx context.Context, userID, postID string) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	for i, like := range post.Likes {
		if like.UserID == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			return append([]models.Like(nil), post.Likes...), nil
		}
	}
	return nil, ErrNotLiked
}

func (s *MemoryPostService) AddComment(ctx context.Context, userID, postID string, req *models.CreateCommentRequest) ([]models.Comment, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	comment := models.Comment{
		ID:     uuid.New().String(),
		UserID: userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now(),
	}
	post.Comments = append([]models.Comment{comment}, post.Comments...)
	return append([]models.Comment(nil), post.Comments...), nil
}

func (s *MemoryPostService) DeleteComment(ctx context.Context, userID, postID, commentID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	for i, comment := range post.Comments {
		if comment.ID == commentID {
			if comment.UserID != userID {
				return nil, ErrNotCommentOwner
			}
			post.Comments = append(post.Comments[:i], post.Comments[i+1:]...)
			return append([]models.Comment(nil), post.Comments...), nil
		}
	}
	return nil, ErrCommentNotFound
}

func (s *MemoryPostService) deleteByUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, post := range s.posts {
		if post.UserID == userID {
			delete(s.posts, id)
		}
	}
}
