package main

import (
	"context"
	"flag"
	"os"

	"github.com/AriaGT/sistema-libreria/internal/pkg/logger"
	"github.com/AriaGT/sistema-libreria/internal/server"
)

// @title Sistema Libreria API
// @version 1.0
// @description School library API: grades, sections, courses, books, users and section enrollments

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	flag.Parse()

	ctx := context.Background()

	srv, err := server.NewServer(ctx, *configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
