// Package engine runs one game: it validates and applies player actions,
// advances the target and the pet after every turn, resolves attacks
// against the witness rule, and reports every command through a uniform
// ActionResult.
//
// A World is single-threaded. Every call completes or fails before the
// next begins; callers that share a World across goroutines must
// serialize access themselves.
package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/cory-johannsen/manor/internal/game/dice"
	"github.com/cory-johannsen/manor/internal/game/entity"
	"github.com/cory-johannsen/manor/internal/game/pet"
	"github.com/cory-johannsen/manor/internal/game/world"
	"github.com/cory-johannsen/manor/internal/observability"
)

// World is the mutable state of one game on top of an immutable Layout.
type World struct {
	id         string
	layout     *world.Layout
	rooms      []world.Room
	visibility world.Visibility
	registry   *entity.Registry
	wanderer   *pet.Wanderer
	roller     *dice.Roller
	policy     Policy
	log        *zap.Logger

	phase    Phase
	current  int
	turn     int
	maxTurns int
	outcome  Outcome
}

// New builds a World in the setup phase from a validated layout.
//
// Precondition: layout is non-nil.
// Postcondition: Returns a World with no players, or an error.
func New(layout *world.Layout, opts ...Option) (*World, error) {
	if layout == nil {
		return nil, fmt.Errorf("%w: layout must not be nil", ErrInvalidArgument)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxTurns < 0 {
		return nil, fmt.Errorf("%w: max turns must not be negative, got %d", ErrInvalidArgument, o.maxTurns)
	}
	if o.aiMoveChance < 0 || o.aiMoveChance > 1 {
		return nil, fmt.Errorf("%w: ai move chance must be within [0, 1], got %g", ErrInvalidArgument, o.aiMoveChance)
	}

	registry, err := entity.NewRegistry(layout, o.maxPlayers)
	if err != nil {
		return nil, fmt.Errorf("creating registry: %w", err)
	}
	wanderer, err := pet.NewWanderer(layout, registry.Pet().Room)
	if err != nil {
		return nil, fmt.Errorf("creating pet wanderer: %w", err)
	}

	id := uuid.New().String()
	log := observability.GameLogger(o.logger, id, layout.Name())
	src := o.source
	if src == nil {
		src = dice.NewCryptoSource()
	}
	policy := o.policy
	if policy == nil {
		policy = DefaultPolicy{MoveChance: o.aiMoveChance}
	}

	w := &World{
		id:         id,
		layout:     layout,
		rooms:      layout.Rooms(),
		visibility: o.visibility,
		registry:   registry,
		wanderer:   wanderer,
		roller:     dice.NewLoggedRoller(src, log),
		policy:     policy,
		log:        log,
		phase:      PhaseSetup,
		maxTurns:   o.maxTurns,
	}
	log.Info("world created",
		zap.Int("rooms", layout.RoomCount()),
		zap.Int("items", len(registry.Items())),
		zap.Int("max_turns", o.maxTurns),
	)
	return w, nil
}

// ID returns the game's unique identifier.
func (w *World) ID() string { return w.id }

// Layout returns the immutable spatial model.
func (w *World) Layout() *world.Layout { return w.layout }

// Name returns the world name.
func (w *World) Name() string { return w.layout.Name() }

// Phase returns the lifecycle state.
func (w *World) Phase() Phase { return w.phase }

// Outcome returns the terminal result; its Over field is false until the
// game ends.
func (w *World) Outcome() Outcome { return w.outcome }

// IsOver reports whether the game has ended.
func (w *World) IsOver() bool { return w.phase == PhaseOver }

// Turn returns the number of turn-consuming actions taken so far.
func (w *World) Turn() int { return w.turn }

// Players returns copies of all players in turn order.
func (w *World) Players() []entity.Player { return w.registry.Players() }

// Player looks up a player case-insensitively.
func (w *World) Player(name string) (entity.Player, error) {
	return w.registry.PlayerByName(name)
}

// Target returns a copy of the target.
func (w *World) Target() entity.Target { return w.registry.Target() }

// Pet returns a copy of the pet.
func (w *World) Pet() entity.Pet { return w.registry.Pet() }

// Items returns copies of every item.
func (w *World) Items() []entity.Item { return w.registry.Items() }

// ItemsIn returns the items on room's floor.
func (w *World) ItemsIn(room int) []entity.Item { return w.registry.ItemsIn(room) }

// Characters returns every character's name, kind, and room for rendering.
func (w *World) Characters() []entity.Character { return w.registry.Characters() }

// RoomByName looks up a room case-insensitively.
//
// Postcondition: Returns ErrRoomNotFound for unknown names.
func (w *World) RoomByName(name string) (world.Room, error) {
	room, ok := w.layout.RoomByName(name)
	if !ok {
		return world.Room{}, fmt.Errorf("%w: %q", ErrRoomNotFound, strings.TrimSpace(name))
	}
	return room, nil
}

// Neighbors returns the rooms adjacent to idx.
//
// Precondition: idx is a valid room index; panics otherwise.
func (w *World) Neighbors(idx int) []int { return w.layout.Neighbors(idx) }

// VisibleSet returns the rooms visible from idx with the pet's room removed.
// The result is a fresh set.
//
// Precondition: idx is a valid room index; panics otherwise.
func (w *World) VisibleSet(idx int) mapset.Set[int] {
	visible := w.visibility.VisibleFrom(idx, w.rooms)
	visible.Remove(w.registry.Pet().Room)
	return visible
}

// VisibleFrom returns the rooms visible from idx in ascending order, with
// the pet's room removed.
//
// Precondition: idx is a valid room index; panics otherwise.
func (w *World) VisibleFrom(idx int) []int {
	return world.SortedIndices(w.VisibleSet(idx))
}

// CurrentPlayer returns the player whose turn it is.
//
// Postcondition: Returns ErrPlayerNotFound when no players have joined.
func (w *World) CurrentPlayer() (entity.Player, error) {
	return w.registry.Player(w.current)
}

// AddPlayer registers a player. Players may join until the game is over.
//
// Precondition: name is non-blank and unused; room is valid; capacity >= 0.
// Postcondition: Returns a successful, non-consuming result, or an error with
// state unchanged.
func (w *World) AddPlayer(name string, room, capacity int, computer bool) (ActionResult, error) {
	if w.phase == PhaseOver {
		return ActionResult{}, ErrGameOver
	}
	p, err := w.registry.AddPlayer(name, room, capacity, computer)
	if err != nil {
		return ActionResult{}, err
	}
	w.log.Info("player added",
		zap.String("player", p.Name),
		zap.Int("room", p.Room),
		zap.Int("capacity", p.Capacity),
		zap.Bool("computer", p.Computer),
	)
	return succeeded(false, "Added %s player %s in %s (capacity %d)",
		strings.ToLower(p.ControlLabel()), p.Name, w.rooms[p.Room].Name, p.Capacity), nil
}

// Start moves the game from setup to in progress.
//
// Precondition: at least one player has joined.
func (w *World) Start() error {
	switch w.phase {
	case PhaseInProgress:
		return ErrAlreadyStarted
	case PhaseOver:
		return ErrGameOver
	}
	if w.registry.PlayerCount() == 0 {
		return ErrNoPlayers
	}
	w.phase = PhaseInProgress
	w.current = 0
	w.log.Info("game started", zap.Int("players", w.registry.PlayerCount()))
	return nil
}

// AdvanceTurn passes the turn to the next player without moving the target
// or the pet.
//
// Postcondition: with N players, N calls return the cursor to where it began.
func (w *World) AdvanceTurn() error {
	if err := w.checkInProgress(); err != nil {
		return err
	}
	w.current = (w.current + 1) % w.registry.PlayerCount()
	return nil
}

// EndGame ends the game unconditionally with no winner. Ending a finished
// game reports failure and keeps the original outcome.
func (w *World) EndGame() ActionResult {
	if w.phase == PhaseOver {
		return failed("The game is already over.")
	}
	w.finish(Outcome{Over: true, Reason: ReasonEnded})
	return succeeded(false, "Game ended.")
}

// Snapshot returns a value copy of the whole game state.
func (w *World) Snapshot() GameState {
	target := w.registry.Target()
	p := w.registry.Pet()
	gs := GameState{
		GameID:       w.id,
		World:        w.layout.Name(),
		Phase:        w.phase,
		Turn:         w.turn,
		MaxTurns:     w.maxTurns,
		TargetName:   target.Name,
		TargetHealth: target.Health,
		TargetRoom:   target.Room,
		PetName:      p.Name,
		PetRoom:      p.Room,
		Outcome:      w.outcome,
	}
	for _, pl := range w.registry.Players() {
		ps := PlayerState{
			Name:     pl.Name,
			Computer: pl.Computer,
			Room:     pl.Room,
			Capacity: pl.Capacity,
			Items:    []string{},
		}
		for _, it := range w.registry.HeldBy(pl.Index) {
			ps.Items = append(ps.Items, it.Name)
		}
		gs.Players = append(gs.Players, ps)
	}
	if cur, err := w.registry.Player(w.current); err == nil {
		gs.CurrentPlayer = cur.Name
		gs.CurrentIndex = cur.Index
		gs.CurrentIsComputer = cur.Computer
		gs.CurrentRoom = cur.Room
		gs.CurrentRoomName = w.rooms[cur.Room].Name
	}
	return gs
}

func (w *World) checkInProgress() error {
	switch w.phase {
	case PhaseSetup:
		return ErrNotStarted
	case PhaseOver:
		return ErrGameOver
	}
	return nil
}

func (w *World) finish(o Outcome) {
	w.phase = PhaseOver
	w.outcome = o
	w.log.Info("game over",
		zap.String("winner", o.Winner),
		zap.String("reason", o.Reason),
		zap.Int("turn", w.turn),
	)
}
