package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jerricksforjesus/JerricksJesus-sub000/api"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/types"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/database"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/captions"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/jobs"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/workers"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/worship"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/youtube"
	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/config"
	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/ffmpeg"
	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/gemini"
	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/storage"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Congregation Media API server with the configured settings.

The server handles caption generation requests, worship playlist syncs,
and runs the background worker pool that processes queued media jobs.

Example:
  church-api serve
  church-api serve --port 9090
  church-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(allModels()...); err != nil {
		return err
	}

	deps, workerPool, err := buildDependencies(cfg, db)
	if err != nil {
		return err
	}

	// Worker pool runs for the lifetime of the process
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if err := workerPool.Start(workerCtx); err != nil {
		return fmt.Errorf("starting worker pool: %w", err)
	}
	defer workerPool.Stop()

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	server := api.NewServer(address)
	server.SetDependencies(deps)

	if err := server.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Server is ready to handle requests at %s", address)

	select {
	case <-stop:
		log.Printf("[INFO] Shutting down server...")
	case err := <-serverErr:
		log.Printf("[ERROR] %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Printf("[INFO] Server gracefully stopped")
	return nil
}

// buildDependencies wires up every service behind the handlers and workers
func buildDependencies(cfg *config.Config, db *database.DB) (*types.Dependencies, *workers.WorkerPool, error) {
	store, err := storage.New(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing object store: %w", err)
	}

	processor := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)
	if err := processor.ValidateBinaries(); err != nil {
		return nil, nil, err
	}

	transcriber := gemini.NewClient(cfg.Gemini.APIKey,
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithHTTPClient(&http.Client{Timeout: cfg.Gemini.Timeout}),
	)

	jobService := jobs.NewService(jobs.NewRepository(db.DB))

	captionService := captions.NewService(
		captions.NewRepository(db.DB),
		jobService,
		store,
		processor,
		transcriber,
		captions.Config{
			TempDir:       cfg.Storage.TempDir,
			MaxChunkBytes: cfg.Processing.MaxChunkBytes,
			MaxConcurrent: cfg.Processing.MaxConcurrent,
			RetryAttempts: cfg.Processing.RetryAttempts,
			RetryDelay:    cfg.Processing.RetryDelay,
		},
	)

	ytClient := youtube.NewClient(youtube.Config{
		APIBaseURL:   cfg.Youtube.APIBaseURL,
		TokenURL:     cfg.Youtube.TokenURL,
		ClientID:     cfg.Youtube.ClientID,
		ClientSecret: cfg.Youtube.ClientSecret,
		Timeout:      cfg.Youtube.Timeout,
	})

	worshipRepo := worship.NewRepository(db.DB)
	tokens := worship.NewTokenRefresher(worshipRepo, ytClient)
	worshipService := worship.NewService(worshipRepo, ytClient, tokens, jobService,
		cfg.Youtube.PlaylistID, cfg.Youtube.SyncCooldown)

	workerPool := workers.NewWorkerPool(jobService, cfg.Processing.Workers, cfg.Processing.PollInterval)
	workerPool.RegisterProcessor(workers.NewCaptionProcessor(captionService, jobService))
	workerPool.RegisterProcessor(workers.NewSyncProcessor(worshipService, jobService))

	deps := &types.Dependencies{
		DB:             db,
		CaptionService: captionService,
		WorshipService: worshipService,
		JobService:     jobService,
		WorkerPool:     workerPool,
	}

	return deps, workerPool, nil
}
