package engine

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/manor/internal/game/dice"
	"github.com/cory-johannsen/manor/internal/game/entity"
	"github.com/cory-johannsen/manor/internal/game/world"
)

// DefaultMaxTurns is the turn budget used when none is configured.
const DefaultMaxTurns = 50

// DefaultAIMoveChance is the default probability an automated player moves.
const DefaultAIMoveChance = 0.5

type options struct {
	logger       *zap.Logger
	source       dice.Source
	policy       Policy
	visibility   world.Visibility
	maxTurns     int
	maxPlayers   int
	aiMoveChance float64
}

func defaultOptions() options {
	return options{
		logger:       zap.NewNop(),
		visibility:   world.AxisAligned{},
		maxTurns:     DefaultMaxTurns,
		maxPlayers:   entity.DefaultMaxPlayers,
		aiMoveChance: DefaultAIMoveChance,
	}
}

// Option configures a World.
type Option func(*options)

// WithLogger sets the base logger. The World adds game_id and world fields.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSource sets the randomness source for automated-player decisions.
// Defaults to a crypto source.
func WithSource(src dice.Source) Option {
	return func(o *options) { o.source = src }
}

// WithPolicy replaces the automated-player policy.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithVisibility replaces the static visibility rule.
func WithVisibility(v world.Visibility) Option {
	return func(o *options) {
		if v != nil {
			o.visibility = v
		}
	}
}

// WithMaxTurns sets the turn budget. Zero disables the limit.
func WithMaxTurns(n int) Option {
	return func(o *options) { o.maxTurns = n }
}

// WithMaxPlayers sets the player limit.
func WithMaxPlayers(n int) Option {
	return func(o *options) { o.maxPlayers = n }
}

// WithAIMoveChance sets the move probability of the default policy. It has
// no effect when WithPolicy supplies another policy.
func WithAIMoveChance(p float64) Option {
	return func(o *options) { o.aiMoveChance = p }
}
