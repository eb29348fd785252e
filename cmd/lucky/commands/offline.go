package commands

import (
	"fmt"

	"github.com/alllucky/server/internal/almanac"
	"github.com/alllucky/server/internal/calendar"
	"github.com/alllucky/server/internal/fortune"
	"github.com/alllucky/server/internal/storage"
	"github.com/alllucky/server/pkg/config"
	"github.com/alllucky/server/pkg/logger"
)

// newOfflineServices wires the fortune and almanac pipelines over an
// in-memory store for one-shot CLI queries. No server, no scheduler.
func newOfflineServices() (*fortune.Service, *almanac.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewNop()
	if verbose {
		log = logger.New(cfg)
	}

	store := storage.NewMemoryStore()
	conv := calendar.NewConverter()
	calc := fortune.NewCalculator()

	fortuneSvc := fortune.NewService(conv, calc, store, cfg.Cache.FortuneTTL, log)
	almanacSvc := almanac.NewService(conv, store, cfg.Cache.AlmanacTTL, log)

	return fortuneSvc, almanacSvc, nil
}
