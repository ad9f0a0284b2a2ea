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

type ProfileHandler struct {
	profiles services.ProfileService
	accounts services.AccountService
	github   *services.GithubService
}

func NewProfileHandler(profiles services.ProfileService, accounts services.AccountService, github *services.GithubService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, accounts: accounts, github: github}
}

// GetMyProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	prof, err := h.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("There is no profile for this user"))
			return
		}
		log.Printf("[GetMyProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

// GetProfileByUserID returns any user's profile. Public.
func (h *ProfileHandler) GetProfileByUserID(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "userId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	prof, err := h.profiles.GetByUserID(ctx, targetID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Profile not found"))
			return
		}
		log.Printf("[GetProfileByUserID] target=%s error=%v", targetID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

// GetAllProfiles lists every profile. Public.
func (h *ProfileHandler) GetAllProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	profs, err := h.profiles.GetAll(ctx)
	if err != nil {
		log.Printf("[GetAllProfiles] error=%v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, profs)
}

// UpsertProfile creates the caller's profile or merges the supplied fields
// into the existing one.
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.UpsertProfileRequest
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

	prof, err := h.profiles.Upsert(ctx, userID, &req)
	if err != nil {
		log.Printf("[UpsertProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.ExperienceRequest
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

	prof, err := h.profiles.AddExperience(ctx, userID, &req)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("There is no profile for this user"))
			return
		}
		log.Printf("[AddExperience] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	entryID := chi.URLParam(r, "expId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	prof, err := h.profiles.RemoveExperience(ctx, userID, entryID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("There is no profile for this user"))
			return
		}
		log.Printf("[RemoveExperience] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.EducationRequest
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

	prof, err := h.profiles.AddEducation(ctx, userID, &req)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("There is no profile for this user"))
			return
		}
		log.Printf("[AddEducation] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	entryID := chi.URLParam(r, "eduId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	prof, err := h.profiles.RemoveEducation(ctx, userID, entryID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("There is no profile for this user"))
			return
		}
		log.Printf("[RemoveEducation] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

// DeleteAccount removes the caller's posts, profile and user record.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultAccountTimeout())
	defer cancel()

	if err := h.accounts.DeleteAccount(ctx, userID); err != nil {
		log.Printf("[DeleteAccount] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "User deleted"})
}

// GetGithubRepos relays the user's five most recently created repos. Public.
func (h *ProfileHandler) GetGithubRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	repos, err := h.github.ListRepos(ctx, username)
	if err != nil {
		if err == services.ErrGithubUserNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("No Github profile found"))
			return
		}
		log.Printf("[GetGithubRepos] username=%s error=%v", username, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}
	writeJSON(w, http.StatusOK, repos)
}
