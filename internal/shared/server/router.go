package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"farmadvisor-backend/internal/advisory"
	"farmadvisor-backend/internal/advisory/engine"
	"farmadvisor-backend/internal/catalog"
	"farmadvisor-backend/internal/shared/config"
	"farmadvisor-backend/internal/shared/metrics"
	"farmadvisor-backend/internal/shared/server/middleware"
	"farmadvisor-backend/internal/shared/server/respond"
	"farmadvisor-backend/internal/shared/storage/db"
	"farmadvisor-backend/internal/shared/telemetry"
	"farmadvisor-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth("/api/v1/auth/", "/api/v1/catalog/", "/api/v1/health", "/metrics"),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor: func(c *gin.Context) string {
				if c.FullPath() == "/api/v1/auth/login" || c.FullPath() == "/api/v1/auth/register" {
					return "AUTH"
				}
				return "DEFAULT"
			},
			Rules: map[string]middleware.RateLimitRule{
				"AUTH": {Rate: 0.5, Burst: 5},
			},
		}),
	)

	// Dependencies
	ref, err := engine.Load(cfg.RulesPath, cfg.DatasetPath)
	if err != nil {
		telemetry.Warn("reference.load_degraded", map[string]any{"error": err.Error()})
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var userRepo users.Repo
	var advisoryRepo advisory.Repo
	var catalogRepo catalog.Repo
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
		advisoryRepo = &advisory.PGRepo{DB: sqlDB}
		catalogRepo = &catalog.PGRepo{DB: sqlDB}
	} else {
		userRepo = users.NewMemoryRepo()
		advisoryRepo = advisory.NewMemoryRepo()
		catalogRepo = catalog.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo)
	if err := userSvc.SeedAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("failed to seed admin account: %v", err)
	}
	userHandler := users.NewHandler(userSvc)

	advisorySvc := &advisory.Service{Repo: advisoryRepo, Ref: ref, Profiles: userSvc}
	advisoryHandler := advisory.NewHandler(advisorySvc)

	catalogHandler := catalog.NewHandler(catalog.NewService(catalogRepo))

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	userHandler.RegisterRoutes(api)
	advisoryHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)

	admin := api.Group("/admin", middleware.AdminOnly())
	userHandler.RegisterAdminRoutes(admin)
	advisoryHandler.RegisterAdminRoutes(admin)
	catalogHandler.RegisterAdminRoutes(admin)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
