package main

import (
	"context"
	"flag"
	"net/http"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"venue-radar/internal/middleware/logger"
	"venue-radar/internal/venue_radar/api"
	"venue-radar/internal/venue_radar/enrich"
	"venue-radar/internal/venue_radar/poller"
	"venue-radar/internal/venue_radar/provider"
	"venue-radar/internal/venue_radar/rank"
	"venue-radar/internal/venue_radar/store"
	"venue-radar/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	ctx := context.Background()

	log.Info("Starting Venue Radar...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	var venueSlot, indexSlot store.Slot
	switch cfg.Storage.Type {
	case "fs":
		venueSlot = store.NewFSSlot(filepath.Join(cfg.Storage.Dir, store.VenuesSlotName))
		indexSlot = store.NewFSSlot(filepath.Join(cfg.Storage.Dir, store.IndexSlotName))
	case "mongo":
		venueSlot, indexSlot = store.MustMongoSlots(
			ctx,
			cfg.Storage.Mongo.Host,
			cfg.Storage.Mongo.DBName,
			cfg.Storage.Mongo.Username,
			cfg.Storage.Mongo.Password,
			cfg.Storage.Mongo.AuthSource,
		)
	}

	st := store.New(log, venueSlot, indexSlot)
	st.Load(ctx)
	go st.Run(ctx, time.Duration(cfg.Storage.SyncSeconds)*time.Second)

	client := provider.NewClient(log, &http.Client{Timeout: 10 * time.Second}, cfg.Provider)
	enricher := enrich.New(log, client, st)

	p := &poller.Poller{
		Log:      log,
		Searcher: client,
		Enricher: enricher,
		Grid:     cfg.Grid,
		Workers:  cfg.Poller.Workers,
		Interval: time.Duration(cfg.Poller.IntervalMinutes) * time.Minute,
	}
	go p.Run(ctx)

	srv := &api.Server{Log: log, Store: st, Rank: rank.New(st)}
	r := srv.Router()
	_ = r.SetTrustedProxies(nil)
	log.Info("Venue Radar is running", zap.String("address", cfg.Server.Addr))
	_ = r.Run(cfg.Server.Addr)
}
