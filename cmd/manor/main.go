// Package main runs an interactive game of manor on the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/manor/internal/config"
	"github.com/cory-johannsen/manor/internal/frontend/console"
	"github.com/cory-johannsen/manor/internal/game/dice"
	"github.com/cory-johannsen/manor/internal/game/engine"
	"github.com/cory-johannsen/manor/internal/game/world"
	"github.com/cory-johannsen/manor/internal/observability"
	"github.com/cory-johannsen/manor/internal/scripting"
	"github.com/cory-johannsen/manor/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file")
	layoutPath := flag.String("layout", "", "world layout file (overrides layout.path)")
	policyDir := flag.String("policy", "", "directory of Lua policy files (overrides script.policy_dir)")
	seed := flag.Int64("seed", 0, "random seed for automated players (overrides game.seed)")
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
	if *policyDir != "" {
		v.Set("script.policy_dir", *policyDir)
	}
	if *seed != 0 {
		v.Set("game.seed", *seed)
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
	logger.Info("layout loaded",
		zap.String("world", layout.Name()),
		zap.String("path", cfg.Layout.Path),
		zap.Int("rooms", layout.RoomCount()),
	)

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithSource(dice.NewSource(cfg.Game.Seed)),
		engine.WithMaxTurns(cfg.Game.MaxTurns),
		engine.WithMaxPlayers(cfg.Game.MaxPlayers),
		engine.WithAIMoveChance(cfg.Game.AIMoveChance),
	}
	if cfg.Script.PolicyDir != "" {
		policy, err := scripting.LoadPolicyDir(cfg.Script.PolicyDir, cfg.Script.InstructionLimit, logger)
		if err != nil {
			logger.Fatal("loading policy", zap.Error(err))
		}
		defer policy.Close()
		opts = append(opts, engine.WithPolicy(policy))
		logger.Info("lua policy loaded", zap.String("policy", policy.Name()))
	}

	game, err := engine.New(layout, opts...)
	if err != nil {
		logger.Fatal("creating game", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	con := console.New(game, os.Stdin, os.Stdout, console.Options{
		DefaultCapacity: cfg.Game.DefaultCapacity,
		AIDelay:         cfg.Game.AIDelay,
		CellSize:        cfg.Render.CellSize,
		MapPath:         cfg.Render.Output,
		Color:           isTerminal(os.Stdout),
	}, logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("console", &server.FuncService{
		StartFn: func() error {
			if err := con.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
		StopFn: cancel,
	})

	logger.Info("game initialized",
		zap.String("game_id", game.ID()),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("game error", zap.Error(err))
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
