package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alllucky/server/pkg/config"
)

// sweepCmd runs one cache sweep against the configured backend. Only useful
// with CACHE_BACKEND=redis; the memory backend dies with the process.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "清除過期快取",
	Long: `對配置的快取後端執行一次過期清理。

Example:
  CACHE_BACKEND=redis go run ./cmd/lucky sweep`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("create cache store: %w", err)
	}

	removed := store.Sweep(context.Background())
	fmt.Printf("removed %d expired entries\n", removed)
	return nil
}
