package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/devlink/backend/internal/middleware"
	"github.com/devlink/backend/internal/models"
	"github.com/devlink/backend/internal/services"
)

type AuthHandler struct {
	users         services.UserService
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthHandler(users services.UserService, jwtSecret string, jwtExpiration time.Duration) *AuthHandler {
	return &AuthHandler{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
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

	user, err := h.users.Register(ctx, &req)
	if err != nil {
		if err == services.ErrEmailExists {
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse([]models.FieldError{
				{Field: "email", Msg: "User already exists"},
			}))
			return
		}
		log.Printf("[Register] email=%s error=%v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}

	token, err := middleware.GenerateToken(user.ID, h.jwtSecret, h.jwtExpiration)
	if err != nil {
		log.Printf("[Register] user=%s error=%v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: *user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
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

	user, err := h.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse([]models.FieldError{
				{Msg: "Invalid credentials"},
			}))
			return
		}
		log.Printf("[Login] email=%s error=%v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}

	token, err := middleware.GenerateToken(user.ID, h.jwtSecret, h.jwtExpiration)
	if err != nil {
		log.Printf("[Login] user=%s error=%v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: *user})
}

// GetCurrentUser returns the authenticated user, password hash omitted.
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
			return
		}
		log.Printf("[GetCurrentUser] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Server error"))
		return
	}

	writeJSON(w, http.StatusOK, user)
}
