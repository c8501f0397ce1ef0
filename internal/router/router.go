package router

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"company-service/internal/handler"
	"company-service/pkg/middleware"
	"company-service/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRoutes(
	r chi.Router,
	authHandler *handler.AuthHandler,
	companyHandler *handler.CompanyHandler,
	auth *middleware.AuthMiddleware,
	rdb *redis.Client,
	corsOrigins []string,
	logger *zap.Logger,
) chi.Router {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})

	uploadDir := "./uploads"
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		_ = os.MkdirAll(uploadDir, 0755)
	}
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	r.Route("/api", func(api chi.Router) {
		// ---------------- Public ----------------
		api.Group(func(pub chi.Router) {
			pub.Use(middleware.RateLimiter(rdb, 20, time.Minute, time.Minute, "company_auth"))
			pub.Post("/auth/register", authHandler.Register)
			pub.Post("/auth/login", authHandler.Login)
			pub.Get("/auth/verify-email", authHandler.VerifyEmail)
			pub.Post("/auth/verify-mobile", authHandler.VerifyMobile)
		})

		// ---------------- Authenticated ----------------
		api.Group(func(g chi.Router) {
			g.Use(auth.Require)

			g.Route("/company", func(c chi.Router) {
				c.Post("/register", companyHandler.RegisterCompany)
				c.Get("/profile", companyHandler.GetProfile)
				c.Put("/profile", companyHandler.UpdateProfile)
				c.Post("/upload-logo", companyHandler.UploadLogo)
				c.Post("/upload-banner", companyHandler.UploadBanner)
				c.Put("/edit-logo", companyHandler.EditLogo)
				c.Put("/edit-banner", companyHandler.EditBanner)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Route not found")
	})

	return r
}

// requestLogger logs method/path/status/duration for every request.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// recoverer turns panics into a redacted 500; stack traces never reach
// the client.
func recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Any("panic", rec))
					response.Error(w, http.StatusInternalServerError, "Internal Server Error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
