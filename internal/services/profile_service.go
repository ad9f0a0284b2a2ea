package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devlink/backend/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileService interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetAll(ctx context.Context) ([]*models.Profile, error)
	Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error)
	AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error)
	AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error)
}

// MemoryProfileService is an in-memory ProfileService used in tests and local
// runs without a database.
type MemoryProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile // userID -> profile
	users    UserService
}

func NewMemoryProfileService(users UserService) *MemoryProfileService {
	return &MemoryProfileService{
		profiles: make(map[string]*models.Profile),
		users:    users,
	}
}

func (s *MemoryProfileService) attachOwner(ctx context.Context, prof *models.Profile) {
	if s.users == nil {
		return
	}
	if user, err := s.users.GetByID(ctx, prof.UserID); err == nil {
		prof.Owner = &models.ProfileUser{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
	}
}

func (s *MemoryProfileService) clone(prof *models.Profile) *models.Profile {
	out := *prof
	out.Skills = append([]string(nil), prof.Skills...)
	out.Experience = append([]models.Experience(nil), prof.Experience...)
	out.Education = append([]models.Education(nil), prof.Education...)
	return &out
}

func (s *MemoryProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	prof, exists := s.profiles[userID]
	if !exists {
		s.mu.RUnlock()
		return nil, ErrProfileNotFound
	}
	out := s.clone(prof)
	s.mu.RUnlock()

	s.attachOwner(ctx, out)
	return out, nil
}

func (s *MemoryProfileService) GetAll(ctx context.Context) ([]*models.Profile, error) {
	s.mu.RLock()
	out := make([]*models.Profile, 0, len(s.profiles))
	for _, prof := range s.profiles {
		out = append(out, s.clone(prof))
	}
	s.mu.RUnlock()

	for _, prof := range out {
		s.attachOwner(ctx, prof)
	}
	return out, nil
}

func (s *MemoryProfileService) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	s.mu.Lock()

	prof, exists := s.profiles[userID]
	if !exists {
		prof = &models.Profile{
			ID:         uuid.New().String(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
			Date:       time.Now(),
		}
		s.profiles[userID] = prof
	}

	prof.Status = req.Status
	prof.Skills = models.ParseSkills(req.Skills)
	if req.Company != nil {
		prof.Company = *req.Company
	}
	if req.Website != nil {
		prof.Website = *req.Website
	}
	if req.Location != nil {
		prof.Location = *req.Location
	}
	if req.Bio != nil {
		prof.Bio = *req.Bio
	}
	if req.GithubUsername != nil {
		prof.GithubUsername = *req.GithubUsername
	}
	if req.Youtube != nil {
		prof.Social.Youtube = *req.Youtube
	}
	if req.Twitter != nil {
		prof.Social.Twitter = *req.Twitter
	}
	if req.Facebook != nil {
		prof.Social.Facebook = *req.Facebook
	}
	if req.Linkedin != nil {
		prof.Social.Linkedin = *req.Linkedin
	}
	if req.Instagram != nil {
		prof.Social.Instagram = *req.Instagram
	}

	out := s.clone(prof)
	s.mu.Unlock()

	s.attachOwner(ctx, out)
	return out, nil
}

func (s *MemoryProfileService) AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error) {
	s.mu.Lock()

	prof, exists := s.profiles[userID]
	if !exists {
		s.mu.Unlock()
		return nil, ErrProfileNotFound
	}

	exp := models.Experience{
		ID:          uuid.New().String(),
		Company:     req.Company,
		Title:       req.Title,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	// Most-recent-first.
	prof.Experience = append([]models.Experience{exp}, prof.Experience...)

	out := s.clone(prof)
	s.mu.Unlock()

	s.attachOwner(ctx, out)
	return out, nil
}

func (s *MemoryProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	s.mu.Lock()

	prof, exists := s.profiles[userID]
	if !exists {
		s.mu.Unlock()
		return nil, ErrProfileNotFound
	}

	// Removing an absent entry is a no-op, not an error.
	for i, exp := range prof.Experience {
		if exp.ID == entryID {
			prof.Experience = append(prof.Experience[:i], prof.Experience[i+1:]...)
			break
		}
	}

	out := s.clone(prof)
	s.mu.Unlock()

	s.attachOwner(ctx, out)
	return out, nil
}

func (s *MemoryProfileService) AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error) {
	s.mu.Lock()

	prof, exists := s.profiles[userID]
	if !exists {
		s.mu.Unlock()
		return nil, ErrProfileNotFound
	}

	edu := models.Education{
		ID:           uuid.New().String(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	prof.Education = append([]models.Education{edu}, prof.Education...)

	out := s.clone(prof)
	s.mu.Unlock()

	s.attachOwner(ctx, out)
	return out, nil
}

func (s *MemoryProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	s.mu.Lock()

	prof, exists := s.profiles[userID]
	if !exists {
		s.mu.Unlock()
		return nil, ErrProfileNotFound
	}

	for i, edu := range prof.Education {
		if edu.ID == entryID {
			prof.Education = append(prof.Education[:i], prof.Education[i+1:]...)
			break
		}
	}

	out := s.clone(prof)
	s.mu.Unlock()

	s.attachOwner(ctx, out)
	return out, nil
}

func (s *MemoryProfileService) delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
}
