package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/devlink/backend/internal/middleware"
	"github.com/devlink/backend/internal/models"
	"github.com/devlink/backend/internal/services"
)

const testJWTSecret = "test-secret-key"

type testEnv struct {
	router   *chi.Mux
	users    *services.MemoryUserService
	profiles *services.MemoryProfileService
	posts    *services.MemoryPostService
	github   *services.GithubService
}

// newTestEnv wires the in-memory services into the same route tree the
// server builds, minus logging middleware.
func newTestEnv() *testEnv {
	users := services.NewMemoryUserService()
	profiles := services.NewMemoryProfileService(users)
	posts := services.NewMemoryPostService(users)
	accounts := services.NewMemoryAccountService(users, profiles, posts)
	github := services.NewGithubService("")

	authHandler := NewAuthHandler(users, testJWTSecret, time.Hour)
	profileHandler := NewProfileHandler(profiles, accounts, github)
	postHandler := NewPostHandler(posts)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", authHandler.Register)
		r.Post("/auth", authHandler.Login)
		r.Get("/profile", profileHandler.GetAllProfiles)
		r.Get("/profile/user/{userId}", profileHandler.GetProfileByUserID)
		r.Get("/profile/github/{username}", profileHandler.GetGithubRepos)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(testJWTSecret))

			r.Get("/auth", authHandler.GetCurrentUser)

			r.Get("/profile/me", profileHandler.GetMyProfile)
			r.Post("/profile", profileHandler.UpsertProfile)
			r.Delete("/profile", profileHandler.DeleteAccount)
			r.Put("/profile/experience", profileHandler.AddExperience)
			r.Delete("/profile/experience/{expId}", profileHandler.RemoveExperience)
			r.Put("/profile/education", profileHandler.AddEducation)
			r.Delete("/profile/education/{eduId}", profileHandler.RemoveEducation)

			r.Route("/posts", func(r chi.Router) {
				r.Post("/", postHandler.CreatePost)
				r.Get("/", postHandler.ListPosts)
				r.Get("/{postId}", postHandler.GetPost)
				r.Delete("/{postId}", postHandler.DeletePost)
				r.Put("/like/{postId}", postHandler.LikePost)
				r.Put("/unlike/{postId}", postHandler.UnlikePost)
				r.Post("/comment/{postId}", postHandler.AddComment)
				r.Delete("/comment/{postId}/{commentId}", postHandler.DeleteComment)
			})
		})
	})

	return &testEnv{
		router:   r,
		users:    users,
		profiles: profiles,
		posts:    posts,
		github:   github,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns its token and id.
func (e *testEnv) register(t *testing.T, name, email string) (string, string) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.User.ID)
	return resp.Token, resp.User.ID
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}
