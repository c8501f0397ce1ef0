package server

import (
	"context"
	"log"
	"net/http"

	"company-service/internal/config"
	"company-service/internal/handler"
	"company-service/internal/repository"
	"company-service/internal/router"
	"company-service/internal/service/assets"
	"company-service/internal/service/identity"
	"company-service/internal/usecase"
	"company-service/pkg/jwtutil"
	"company-service/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewServer wires config, store, collaborators, usecases and routes
// into a ready-to-run HTTP server. Collaborator selection (real vs
// stub) happens here, once, and is injected downward.
func NewServer(cfg config.AppConfig, logger *zap.Logger) (*http.Server, *pgxpool.Pool) {
	ctx := context.Background()

	poolCfg, err := pgxpool.ParseConfig(cfg.DBConnString)
	if err != nil {
		log.Fatalf("[FATAL] invalid database config: %v", err)
	}
	poolCfg.MaxConns = 10

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Fatalf("[FATAL] failed to connect to DB: %v", err)
	}

	if err := repository.RunMigrations(ctx, db, logger); err != nil {
		log.Fatalf("[FATAL] migrations failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] failed to connect to Redis: %v", err)
	}

	var idp identity.Provider
	if cfg.Firebase.ServiceAccount != "" {
		real, err := identity.NewGoogleProvider(ctx, cfg.Firebase, logger)
		if err != nil {
			log.Fatalf("[FATAL] identity provider init failed: %v", err)
		}
		idp = real
	} else {
		log.Println("[WARN] no identity service account configured, using stub provider")
		idp = identity.NewStubProvider(logger)
	}

	var uploader assets.Uploader
	if cfg.Cloudinary.CloudName != "" {
		cld, err := assets.NewCloudinaryUploader(cfg.Cloudinary, logger)
		if err != nil {
			log.Fatalf("[FATAL] cloudinary init failed: %v", err)
		}
		uploader = cld
	} else {
		log.Println("[WARN] cloudinary not configured, storing uploads locally")
		local, err := assets.NewLocalUploader("./uploads", logger)
		if err != nil {
			log.Fatalf("[FATAL] local uploader init failed: %v", err)
		}
		uploader = local
	}

	signer := jwtutil.NewSigner(cfg.JWTSecret, cfg.JWTExpiry)
	verifier := jwtutil.NewVerifier(cfg.JWTSecret)
	auth := middleware.NewAuthMiddleware(verifier)

	userRepo := repository.NewUserRepository(db, logger)
	companyRepo := repository.NewCompanyRepository(db, logger)

	authUC := usecase.NewAuthUsecase(userRepo, idp, signer, logger)
	companyUC := usecase.NewCompanyUsecase(companyRepo, uploader, cfg.Cloudinary.Folder, logger)

	authHandler := handler.NewAuthHandler(authUC, logger)
	companyHandler := handler.NewCompanyHandler(companyUC, logger)

	r := chi.NewRouter()
	router.SetupRoutes(r, authHandler, companyHandler, auth, rdb, cfg.CORSOrigins, logger)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}, db
}
