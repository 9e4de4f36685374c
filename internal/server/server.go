package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracker/internal/auth"
	"tracker/internal/config"
	"tracker/internal/logger"
	"tracker/internal/scheduler"
	"tracker/migrations"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	Scheduler *scheduler.Scheduler
	Config    *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	logger.Info("connected to database", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	if cfg.RunMigrations {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		version, err := migrations.Up(sqlDB)
		if err != nil {
			return nil, err
		}
		logger.Info("schema migrated", zap.Uint("version", version))
	}

	s := &Server{DB: db, Config: cfg}

	// Отзыв токенов: Redis, если настроен, иначе память процесса
	var revoked auth.RevocationStore
	if cfg.RedisAddr != "" {
		s.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		revoked = auth.NewRedisRevocationStore(s.Redis)
		logger.Info("token revocation backed by redis", zap.String("addr", cfg.RedisAddr))
	} else {
		revoked = auth.NewMemoryRevocationStore()
		logger.Warn("REDIS_ADDR not set, token revocation kept in memory")
	}

	svc := NewServices(cfg, db, revoked)
	s.Engine = NewRouter(cfg, db, svc, revoked)

	if cfg.DigestCron != "" {
		s.Scheduler = scheduler.New(svc.Performance, cfg.Location())
		if _, err := s.Scheduler.ScheduleDigest(cfg.DigestCron); err != nil {
			return nil, fmt.Errorf("invalid DIGEST_CRON %q: %w", cfg.DigestCron, err)
		}
	}

	return s, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	if s.Scheduler != nil {
		s.Scheduler.Start()
		logger.Info("digest scheduled", zap.String("cron", s.Config.DigestCron))
	}

	go func() {
		logger.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if s.Scheduler != nil {
		s.Scheduler.Stop()
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server exited properly")
}
