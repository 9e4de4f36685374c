package server

import (
	"net/http"
	"time"

	"tracker/internal/auth"
	"tracker/internal/config"
	"tracker/internal/handler"
	"tracker/internal/middleware"
	"tracker/internal/repository"
	"tracker/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Services are the application services built over one database.
type Services struct {
	Tokens      *auth.TokenManager
	Auth        *service.AuthService
	Tasks       *service.TaskService
	Performance *service.PerformanceService
}

func NewServices(cfg *config.Config, db *gorm.DB, revoked auth.RevocationStore) *Services {
	store := repository.NewStore(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	return &Services{
		Tokens:      tokens,
		Auth:        service.NewAuthService(store.Users, store, tokens, revoked),
		Tasks:       service.NewTaskService(store.Tasks, store.Users, time.Now),
		Performance: service.NewPerformanceService(store.Tasks, store.Users, cfg.Location(), time.Now),
	}
}

// NewRouter wires middleware, handlers and routes.
func NewRouter(cfg *config.Config, db *gorm.DB, svc *Services, revoked auth.RevocationStore) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// Initialize handlers
	userHandler := handler.NewUserHandler(svc.Auth)
	taskHandler := handler.NewTaskHandler(svc.Auth, svc.Tasks, svc.Performance)
	performanceHandler := handler.NewPerformanceHandler(svc.Auth, svc.Performance)

	r.GET("/health", healthHandler(db))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	public := r.Group("/", limiter.Middleware())
	public.POST("/register", userHandler.Register)
	public.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(svc.Tokens, revoked))
	{
		authorized.POST("/logout", userHandler.Logout)
		authorized.GET("/me", userHandler.Me)
		authorized.POST("/users", userHandler.CreateUser)
		authorized.GET("/users", userHandler.ListUsers)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.PATCH("/tasks/:id/progress", taskHandler.UpdateProgress)

		// Performance routes
		authorized.GET("/performance/leaderboard", performanceHandler.Leaderboard)
		authorized.GET("/performance/daily", performanceHandler.Daily)
		authorized.GET("/performance/me", performanceHandler.Me)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
