package main

import (
	"log"

	_ "tracker/docs"
	"tracker/internal/config"
	"tracker/internal/logger"
	"tracker/internal/server"

	"go.uber.org/zap"
)

// @title           Performance Tracker API
// @version         1.0
// @description     Task points, leaderboards and daily progress for company teams.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Options{
		Level:      cfg.LogLevel,
		Path:       cfg.LogPath,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	}); err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	defer logger.Sync()

	s, err := server.Init(cfg)
	if err != nil {
		logger.Fatal("server initialization failed", zap.Error(err))
	}

	s.Run()
}
