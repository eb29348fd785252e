package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alllucky/server/internal/almanac"
	"github.com/alllucky/server/internal/api"
	"github.com/alllucky/server/internal/api/handlers"
	"github.com/alllucky/server/internal/apikey"
	"github.com/alllucky/server/internal/calendar"
	"github.com/alllucky/server/internal/fortune"
	"github.com/alllucky/server/internal/scheduler"
	"github.com/alllucky/server/internal/scheduler/jobs"
	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/config"
	"github.com/alllucky/server/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "啟動 API 服務",
	Long: `啟動 REST API 服務。

Endpoints:
  GET    /health                         - Health check
  GET    /api/v1/fortune/daily/{date}    - 每日綜合運勢
  GET    /api/v1/fortune/study/{date}    - 學業運勢
  GET    /api/v1/fortune/career/{date}   - 事業運勢
  GET    /api/v1/fortune/love/{date}     - 愛情運勢
  GET    /api/v1/almanac/daily/{date}    - 每日黃曆
  GET    /api/v1/almanac/month/{y}/{m}   - 整月黃曆
  GET    /api/v1/almanac/terms/{year}    - 年度節氣
  GET    /api/v1/almanac/lunar/{date}    - 農曆轉換
  POST   /api/v1/keys                    - 簽發 API key
  DELETE /api/v1/keys/{key}              - 停用 API key
  GET    /api/v1/cache/stats             - 快取統計

Example:
  go run ./cmd/lucky api
  go run ./cmd/lucky api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 服務端口")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port":    cfg.Port,
		"env":     cfg.Env,
		"backend": cfg.Cache.Backend,
	}).Info("Initializing API server")

	// 3. Create cache store
	store, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("create cache store: %w", err)
	}

	// 4. Create calendar adapter and calculator
	conv := calendar.NewConverter()
	calc := fortune.NewCalculator()

	// 5. Create services
	fortuneSvc := fortune.NewService(conv, calc, store, cfg.Cache.FortuneTTL, log)
	almanacSvc := almanac.NewService(conv, store, cfg.Cache.AlmanacTTL, log)
	keySvc := apikey.NewService(store, cfg.APIKey.Prefix, cfg.APIKey.TTL, apikey.RateLimit{
		WindowMs:    cfg.APIKey.RateLimitWindow.Milliseconds(),
		MaxRequests: cfg.APIKey.RateLimitMaxReqs,
	}, log)

	// 6. Create handlers
	fortuneHandler := handlers.NewFortuneHandler(fortuneSvc, log)
	almanacHandler := handlers.NewAlmanacHandler(almanacSvc, log)
	keyHandler := handlers.NewKeyHandler(keySvc, log)
	cacheHandler := handlers.NewCacheHandler(store, log)

	// 7. Create router and server
	router := api.NewRouter(fortuneHandler, almanacHandler, keyHandler, cacheHandler, keySvc, log)
	server := api.New(cfg, log, router)

	// 8. Start background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewCacheSweepJob(store, cfg.Cache.SweepInterval, log)); err != nil {
		return fmt.Errorf("add sweep job: %w", err)
	}
	if err := sched.AddJob(jobs.NewTermWarmupJob(almanacSvc, log)); err != nil {
		return fmt.Errorf("add warmup job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// 9. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// newStore picks the cache backend from config.
func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		addr := fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port)
		return storage.NewRedisStore(addr, cfg.Redis.Password, cfg.Redis.DB)
	default:
		return storage.NewMemoryStore(), nil
	}
}
