package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlink/backend/internal/config"
	"github.com/devlink/backend/internal/handlers"
	appMiddleware "github.com/devlink/backend/internal/middleware"
	"github.com/devlink/backend/internal/services"
)

func main() {
	// Local .env, if present.
	_ = godotenv.Load()

	cfg := config.Load()

	// One Mongo client for the whole process, torn down on exit.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("MongoDB connect failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("MongoDB ping failed: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	}()
	db := client.Database(cfg.MongoDB)
	log.Printf("MongoDB connected: db=%s", cfg.MongoDB)

	// Services share the injected database handle.
	userService := services.NewMongoUserService(ctx, db)
	profileService := services.NewMongoProfileService(ctx, db)
	postService := services.NewMongoPostService(ctx, db, userService)
	accountService := services.NewMongoAccountService(db)
	githubService := services.NewGithubService(cfg.GithubToken)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.JWTExpiration)
	profileHandler := handlers.NewProfileHandler(profileService, accountService, githubService)
	postHandler := handlers.NewPostHandler(postService)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/users", authHandler.Register)
		r.Post("/auth", authHandler.Login)
		r.Get("/profile", profileHandler.GetAllProfiles)
		r.Get("/profile/user/{userId}", profileHandler.GetProfileByUserID)
		r.Get("/profile/github/{username}", profileHandler.GetGithubRepos)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(cfg.JWTSecret))

			r.Get("/auth", authHandler.GetCurrentUser)

			// Profile routes. Flat registrations: the public profile reads
			// above live in the same tree under the same prefix.
			r.Get("/profile/me", profileHandler.GetMyProfile)
			r.Post("/profile", profileHandler.UpsertProfile)
			r.Delete("/profile", profileHandler.DeleteAccount)
			r.Put("/profile/experience", profileHandler.AddExperience)
			r.Delete("/profile/experience/{expId}", profileHandler.RemoveExperience)
			r.Put("/profile/education", profileHandler.AddEducation)
			r.Delete("/profile/education/{eduId}", profileHandler.RemoveEducation)

			// Post routes
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

	log.Printf("DevLink API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
