// Package config provides Viper-based configuration loading for the manor
// game binaries.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GameConfig holds turn-engine settings.
type GameConfig struct {
	// MaxTurns is the number of turn-consuming actions before the game ends
	// with no winner.
	MaxTurns int `mapstructure:"max_turns"`
	// MaxPlayers bounds the number of players that may join.
	MaxPlayers int `mapstructure:"max_players"`
	// DefaultCapacity is the carrying capacity used when a player is added
	// without one.
	DefaultCapacity int `mapstructure:"default_capacity"`
	// AIMoveChance is the probability an automated player moves instead of
	// picking up or looking.
	AIMoveChance float64 `mapstructure:"ai_move_chance"`
	// Seed makes random decisions reproducible. Zero selects a crypto source.
	Seed int64 `mapstructure:"seed"`
	// AIDelay is the pause the console inserts before each automated turn.
	AIDelay time.Duration `mapstructure:"ai_delay"`
}

// LayoutConfig locates the world layout file.
type LayoutConfig struct {
	// Path is the layout file to load.
	Path string `mapstructure:"path"`
	// Format is "auto", "text", or "yaml". Auto picks by file extension.
	Format string `mapstructure:"format"`
}

// ScriptConfig holds settings for Lua automated-player policies.
type ScriptConfig struct {
	// PolicyDir holds policy.lua. Empty selects the built-in policy.
	PolicyDir string `mapstructure:"policy_dir"`
	// InstructionLimit caps VM instructions per decision. Zero means unlimited.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// RenderConfig holds map image export settings.
type RenderConfig struct {
	// CellSize is the pixel size of one grid cell.
	CellSize int `mapstructure:"cell_size"`
	// Output is the default PNG path.
	Output string `mapstructure:"output"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a file path, "stdout", or "stderr". Empty keeps zap's default.
	Output string `mapstructure:"output"`
}

// Config is the top-level application configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Layout  LayoutConfig  `mapstructure:"layout"`
	Script  ScriptConfig  `mapstructure:"script"`
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLayout(c.Layout); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScript(c.Script); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRender(c.Render); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("game.max_turns must be >= 1, got %d", g.MaxTurns))
	}
	if g.MaxPlayers < 1 || g.MaxPlayers > 10 {
		errs = append(errs, fmt.Sprintf("game.max_players must be 1-10, got %d", g.MaxPlayers))
	}
	if g.DefaultCapacity < 0 {
		errs = append(errs, fmt.Sprintf("game.default_capacity must be >= 0, got %d", g.DefaultCapacity))
	}
	if g.AIMoveChance < 0 || g.AIMoveChance > 1 {
		errs = append(errs, fmt.Sprintf("game.ai_move_chance must be within [0, 1], got %g", g.AIMoveChance))
	}
	if g.AIDelay < 0 {
		errs = append(errs, "game.ai_delay must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLayout(l LayoutConfig) error {
	var errs []string
	if l.Path == "" {
		errs = append(errs, "layout.path must not be empty")
	}
	validFormats := map[string]bool{"auto": true, "text": true, "yaml": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("layout.format must be one of [auto, text, yaml], got %q", l.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateScript(s ScriptConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("script.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

func validateRender(r RenderConfig) error {
	var errs []string
	if r.CellSize < 4 {
		errs = append(errs, fmt.Sprintf("render.cell_size must be >= 4, got %d", r.CellSize))
	}
	if r.Output == "" {
		errs = append(errs, "render.output must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and
// environment variables only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// New returns a Viper instance carrying the defaults and MANOR_ environment
// overrides. Callers may bind flags to it before calling LoadFromViper.
func New() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with MANOR_ prefix
	v.SetEnvPrefix("MANOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.max_turns", 50)
	v.SetDefault("game.max_players", 10)
	v.SetDefault("game.default_capacity", 3)
	v.SetDefault("game.ai_move_chance", 0.5)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.ai_delay", "0s")

	v.SetDefault("layout.path", "content/worlds/manor.txt")
	v.SetDefault("layout.format", "auto")

	v.SetDefault("script.policy_dir", "")
	v.SetDefault("script.instruction_limit", 100000)

	v.SetDefault("render.cell_size", 30)
	v.SetDefault("render.output", "world_map.png")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
}
