package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"tierparse/internal/config"
	"tierparse/internal/domain"
	"tierparse/internal/engine"
	"tierparse/internal/handler"
	"tierparse/internal/hardware"
	"tierparse/internal/pool"
	"tierparse/internal/router"
	"tierparse/internal/scratch"
	"tierparse/internal/service"

	// Backend registrations
	_ "tierparse/internal/engine/mineru"
	_ "tierparse/internal/engine/pymupdf"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Probe hardware once; the profile is immutable for the process
	// lifetime. Probe failure degrades to CPU-only, never aborts.
	detectCtx, cancel := context.WithTimeout(context.Background(), cfg.Detect.Timeout)
	profile := hardware.Detect(detectCtx)
	cancel()

	// Fix the backend per tier at startup.
	backends := map[domain.Tier]domain.Backend{
		domain.TierFast:     hardware.SelectBackend(domain.TierFast, profile, cfg.Detect.MinAccelMemoryMB),
		domain.TierAccurate: hardware.SelectBackend(domain.TierAccurate, profile, cfg.Detect.MinAccelMemoryMB),
	}
	for tier, backend := range backends {
		log.Printf("main: tier %s served by backend %s", tier, backend)
	}

	store, err := scratch.NewStore(cfg.Scratch.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize scratch storage: %w", err)
	}

	tierConfigs := map[domain.Tier]*config.TierConfig{
		domain.TierFast:     &cfg.Fast,
		domain.TierAccurate: &cfg.Accurate,
	}

	tiers := make(map[domain.Tier]*service.TierRuntime, len(tierConfigs))
	pools := make(map[domain.Tier]*pool.Pool, len(tierConfigs))
	for tier, tcfg := range tierConfigs {
		eng, err := engine.NewEngine(backends[tier], tcfg)
		if err != nil {
			return fmt.Errorf("failed to initialize %s engine: %w", tier, err)
		}
		p := pool.New(tier, tcfg.Workers, domain.QueuePolicy(tcfg.QueuePolicy))
		pools[tier] = p
		tiers[tier] = &service.TierRuntime{
			Config:  tcfg,
			Backend: backends[tier],
			Engine:  eng,
			Pool:    p,
		}
		log.Printf("main: tier %s pool size=%d policy=%s timeout=%s",
			tier, tcfg.Workers, tcfg.QueuePolicy, tcfg.Timeout)
	}

	parseSvc := service.NewParseService(tiers, store)

	maxBytes := map[domain.Tier]int64{
		domain.TierFast:     cfg.Fast.MaxFileSizeBytes(),
		domain.TierAccurate: cfg.Accurate.MaxFileSizeBytes(),
	}
	parseH := handler.NewParseHandler(parseSvc, maxBytes)
	healthH := handler.NewHealthHandler(profile, backends, pools, store)

	r := router.Setup(parseH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
