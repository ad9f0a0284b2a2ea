package services

import (
	"context"
	"time"
)

type AccountService interface {
	DeleteAccount(ctx context.Context, userID string) error
}

// MemoryAccountService runs the cascading account delete over the in-memory
// services, in the same order as the Mongo implementation.
type MemoryAccountService struct {
	users    *MemoryUserService
	profiles *MemoryProfileService
	posts    *MemoryPostService
}

func NewMemoryAccountService(users *MemoryUserService, profiles *MemoryProfileService, posts *MemoryPostService) *MemoryAccountService {
	return &MemoryAccountService{users: users, profiles: profiles, posts: posts}
}

// DeleteAccount removes the user's posts, then profile, then the user record.
// Posts and profile go first so a partial failure never leaves documents
// pointing at a deleted owner.
func (s *MemoryAccountService) DeleteAccount(ctx context.Context, userID string) error {
	s.posts.deleteByUser(userID)
	s.profiles.delete(userID)
	s.users.delete(userID)
	return nil
}

// Helper for handlers that want a sane timeout.
func DefaultAccountTimeout() time.Duration { return 20 * time.Second }
