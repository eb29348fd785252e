package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alllucky/server/internal/apikey"
	"github.com/alllucky/server/pkg/config"
	"github.com/alllucky/server/pkg/logger"
)

// keygenCmd issues an API key against the configured cache backend.
// With the memory backend the key lives only in this process, so the
// command is mainly useful with CACHE_BACKEND=redis.
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "簽發 API key",
	Long: `簽發一把新的 API key 並輸出 JSON。

Example:
  go run ./cmd/lucky keygen
  go run ./cmd/lucky keygen --origin https://example.com --ttl 168h`,
	RunE: runKeygen,
}

var (
	keygenOrigins []string
	keygenTTL     time.Duration
)

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().StringSliceVar(&keygenOrigins, "origin", nil, "允許的來源 (可重複)")
	keygenCmd.Flags().DurationVar(&keygenTTL, "ttl", 0, "有效期 (預設取配置)")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewNop()
	if verbose {
		log = logger.New(cfg)
	}

	store, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("create cache store: %w", err)
	}

	svc := apikey.NewService(store, cfg.APIKey.Prefix, cfg.APIKey.TTL, apikey.RateLimit{
		WindowMs:    cfg.APIKey.RateLimitWindow.Milliseconds(),
		MaxRequests: cfg.APIKey.RateLimitMaxReqs,
	}, log)

	record, err := svc.Generate(context.Background(), keygenOrigins, keygenTTL, nil)
	if err != nil {
		return err
	}

	return printAsJSON(record)
}
