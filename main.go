package main

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/kassenbuch/backend/internal/controllers/v1"
	"github.com/kassenbuch/backend/internal/importer"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/kassenbuch/backend/internal/router"
	"github.com/kassenbuch/backend/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		log.Fatal().Msg("environment variable API_URL must be set")
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Msg("environment variable API_URL must be a valid URL")
	}

	// Create data directory
	dataDir := filepath.Join(".", "data")
	err = os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate the schema
	err = models.Connect("data/gorm.db")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Uploaded CSV files are kept on disk until their import job is
	// deleted
	uploadDir, ok := os.LookupEnv("UPLOAD_DIR")
	if !ok {
		uploadDir = filepath.Join(dataDir, "uploads")
	}

	uploads, err := storage.NewLocal(uploadDir)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = importer.RegisterMetrics()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Imports run in the background, HTTP requests only enqueue them
	queue := importer.NewQueue(16)
	orchestrator := &importer.Orchestrator{
		DB:      models.DB,
		Files:   uploads,
		Queue:   queue,
		Workers: 4,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go orchestrator.Work(ctx, queue)

	v1.Configure(orchestrator, uploads)

	r, teardown, err := router.Config(baseURL)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
