// Package main writes a PNG map of a world layout with its starting
// placements, without running a game.
package main

import (
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/manor/internal/config"
	"github.com/cory-johannsen/manor/internal/game/entity"
	"github.com/cory-johannsen/manor/internal/game/world"
	"github.com/cory-johannsen/manor/internal/observability"
	"github.com/cory-johannsen/manor/internal/render"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file")
	layoutPath := flag.String("layout", "", "world layout file (overrides layout.path)")
	output := flag.String("out", "", "PNG output path (overrides render.output)")
	cellSize := flag.Int("cell", 0, "pixels per grid cell (overrides render.cell_size)")
	flag.Parse()

	v := config.New()
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("reading config file: %v", err)
		}
	}
	if *layoutPath != "" {
		v.Set("layout.path", *layoutPath)
	}
	if *output != "" {
		v.Set("render.output", *output)
	}
	if *cellSize != 0 {
		v.Set("render.cell_size", *cellSize)
	}
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	layout, err := world.LoadFile(cfg.Layout.Path, cfg.Layout.Format)
	if err != nil {
		logger.Fatal("loading layout", zap.Error(err))
	}
	registry, err := entity.NewRegistry(layout, entity.DefaultMaxPlayers)
	if err != nil {
		logger.Fatal("placing characters", zap.Error(err))
	}

	if err := render.SaveMap(cfg.Render.Output, layout, registry.Characters(), cfg.Render.CellSize); err != nil {
		logger.Fatal("writing map", zap.Error(err))
	}
	logger.Info("map written",
		zap.String("world", layout.Name()),
		zap.String("path", cfg.Render.Output),
		zap.Duration("elapsed", time.Since(start)),
	)
	log.Printf("wrote %s", cfg.Render.Output)
}
