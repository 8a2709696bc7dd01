package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	_ "github.com/hsm-gustavo/account-api/docs"
	"github.com/hsm-gustavo/account-api/internal/api/auth"
	"github.com/hsm-gustavo/account-api/internal/api/health"
	"github.com/hsm-gustavo/account-api/internal/api/uploads"
	"github.com/hsm-gustavo/account-api/internal/api/user"
	"github.com/hsm-gustavo/account-api/internal/config"
	"github.com/hsm-gustavo/account-api/internal/db"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes builds the HTTP router. Everything the handlers need is passed
// in; nothing is read from the environment here.
func SetupRoutes(cfg *config.Config, store db.UserStore, notifier auth.VerificationNotifier) http.Handler {
	r := chi.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // max time in seconds for OPTIONS preflight response cache
	})

	r.Use(corsMiddleware.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(2 * time.Minute))

	// init services & handlers
	userService := user.NewUserService(store)
	authHandler := auth.NewAuthHandler(cfg.JWTSecret, userService, notifier, cfg.Mail.User)

	r.Get("/health", health.NewHandler(userService))

	// public auth routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// protected routes
	r.Group(func(r chi.Router) {
		r.Use(authHandler.AuthMiddleware)
		r.Get("/profile", authHandler.Profile)
	})

	// profile pictures
	r.Handle("/uploads/*", uploads.Handler("/uploads/", cfg.Server.UploadsDir))

	// init swagger
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
