package main

import (
	"log"

	_ "github.com/Gaur10/taskpilot/docs"
	"github.com/Gaur10/taskpilot/internal/config"
	"github.com/Gaur10/taskpilot/internal/logger"
	"github.com/Gaur10/taskpilot/internal/server"
)

// @title           TaskPilot API
// @version         1.0
// @description     Multi-tenant family task management API.

// @host      localhost:4000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	zl := logger.New(cfg.LogFile)
	defer zl.Sync()

	s, err := server.Init(cfg, zl)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
