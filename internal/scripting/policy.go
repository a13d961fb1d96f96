package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/manor/internal/game/dice"
	"github.com/cory-johannsen/manor/internal/game/engine"
	"github.com/cory-johannsen/manor/internal/game/entity"
	"github.com/cory-johannsen/manor/internal/game/world"
)

// DecideHook is the Lua global a policy script must define. It receives the
// turn view table and returns either a table {action = ..., arg = ...} or
// the two values action, arg.
const DecideHook = "decide"

// ErrNoDecideHook reports a script that does not define decide.
var ErrNoDecideHook = errors.New("scripting: policy does not define a decide function")

// LuaPolicy is an engine.Policy backed by a sandboxed Lua VM.
//
// LuaPolicy is safe for concurrent use; calls into the VM are serialized.
type LuaPolicy struct {
	mu     sync.Mutex
	state  *lua.LState
	name   string
	limit  int
	logger *zap.Logger
	// src is the dice source of the Decide call in progress, nil otherwise.
	src dice.Source
}

// LoadPolicyDir creates a policy from every *.lua file in dir, executed in
// lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a policy whose VM defines decide, or an error.
func LoadPolicyDir(dir string, instLimit int, logger *zap.Logger) (*LuaPolicy, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading policy dir %q: %w", dir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("scripting: no .lua files in %q", dir)
	}

	p := newLuaPolicy(filepath.Base(dir), instLimit, logger)
	for _, path := range luaFiles {
		if err := p.state.DoFile(path); err != nil {
			p.Close()
			return nil, fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	if err := p.checkHook(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// LoadPolicySource creates a policy from Lua source text. name labels the
// script in logs and errors.
func LoadPolicySource(name, src string, instLimit int, logger *zap.Logger) (*LuaPolicy, error) {
	p := newLuaPolicy(name, instLimit, logger)
	if err := p.state.DoString(src); err != nil {
		p.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	if err := p.checkHook(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func newLuaPolicy(name string, instLimit int, logger *zap.Logger) *LuaPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &LuaPolicy{
		state:  NewSandboxedState(instLimit),
		name:   name,
		limit:  instLimit,
		logger: logger,
	}
	p.registerModules(p.state)
	return p
}

func (p *LuaPolicy) checkHook() error {
	if p.state.GetGlobal(DecideHook).Type() != lua.LTFunction {
		return fmt.Errorf("%w: %s", ErrNoDecideHook, p.name)
	}
	return nil
}

// Name returns the label the policy was loaded with.
func (p *LuaPolicy) Name() string { return p.name }

// Close releases the VM.
func (p *LuaPolicy) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Close()
}

// Decide implements engine.Policy. Every call gets a fresh instruction
// budget; Lua errors and budget exhaustion are returned as errors.
//
// Postcondition: the decision kind is one of move, pickup, look, attack,
// movepet, or pass.
func (p *LuaPolicy) Decide(view engine.TurnView, src dice.Source) (engine.Decision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.src = src
	defer func() { p.src = nil }()
	cancel := Rearm(p.state, p.limit)
	defer cancel()

	if err := p.state.CallByParam(lua.P{
		Fn:      p.state.GetGlobal(DecideHook),
		NRet:    2,
		Protect: true,
	}, viewTable(p.state, view)); err != nil {
		p.logger.Warn("scripting: Lua runtime error",
			zap.String("script", p.name),
			zap.String("player", view.Player.Name),
			zap.Error(err),
		)
		return engine.Decision{}, fmt.Errorf("scripting: %s: %w", p.name, err)
	}
	first, second := p.state.Get(-2), p.state.Get(-1)
	p.state.Pop(2)

	d, err := toDecision(p.state, first, second)
	if err != nil {
		return engine.Decision{}, fmt.Errorf("scripting: %s: %w", p.name, err)
	}
	p.logger.Debug("lua policy decided",
		zap.String("script", p.name),
		zap.String("player", view.Player.Name),
		zap.Stringer("action", d.Kind),
		zap.String("arg", d.Arg),
	)
	return d, nil
}

// toDecision reads decide's return values.
func toDecision(L *lua.LState, first, second lua.LValue) (engine.Decision, error) {
	var action, arg lua.LValue
	switch v := first.(type) {
	case *lua.LTable:
		action, arg = L.GetField(v, "action"), L.GetField(v, "arg")
	case lua.LString:
		action, arg = v, second
	default:
		return engine.Decision{}, fmt.Errorf("decide returned %s, want a table or an action name", first.Type())
	}

	name, ok := action.(lua.LString)
	if !ok {
		return engine.Decision{}, fmt.Errorf("decide returned action of type %s, want string", action.Type())
	}
	kind, err := engine.ParseActionKind(string(name))
	if err != nil {
		return engine.Decision{}, err
	}
	switch kind {
	case engine.ActionMove, engine.ActionPickUp, engine.ActionLook,
		engine.ActionAttack, engine.ActionMovePet, engine.ActionPass:
	default:
		return engine.Decision{}, fmt.Errorf("decide chose %q, which is not a turn action", kind)
	}

	d := engine.Decision{Kind: kind}
	switch a := arg.(type) {
	case lua.LString:
		d.Arg = string(a)
	case lua.LNumber:
		d.Arg = a.String()
	}
	return d, nil
}

// viewTable converts a TurnView into the table passed to decide:
//
//	{ player = {name, room, capacity, carrying, full},
//	  room = {index, name}, neighbors = {{index, name}, ...},
//	  items_here = {{name, damage}, ...}, held = {{name, damage}, ...},
//	  can_attack = bool, target_room = int }
//
// Room indices are the engine's zero-based indices.
func viewTable(L *lua.LState, view engine.TurnView) *lua.LTable {
	player := L.NewTable()
	L.SetField(player, "name", lua.LString(view.Player.Name))
	L.SetField(player, "room", lua.LNumber(view.Player.Room))
	L.SetField(player, "capacity", lua.LNumber(view.Player.Capacity))
	L.SetField(player, "carrying", lua.LNumber(len(view.Player.Inventory)))
	L.SetField(player, "full", lua.LBool(view.Player.Full()))

	neighbors := L.NewTable()
	for _, r := range view.Neighbors {
		neighbors.Append(roomTable(L, r))
	}

	t := L.NewTable()
	L.SetField(t, "player", player)
	L.SetField(t, "room", roomTable(L, view.Room))
	L.SetField(t, "neighbors", neighbors)
	L.SetField(t, "items_here", itemsTable(L, view.ItemsHere))
	L.SetField(t, "held", itemsTable(L, view.Held))
	L.SetField(t, "can_attack", lua.LBool(view.CanAttack))
	L.SetField(t, "target_room", lua.LNumber(view.TargetRoom))
	return t
}

func roomTable(L *lua.LState, r world.Room) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "index", lua.LNumber(r.Index))
	L.SetField(t, "name", lua.LString(r.Name))
	return t
}

func itemsTable(L *lua.LState, items []entity.Item) *lua.LTable {
	t := L.NewTable()
	for _, it := range items {
		item := L.NewTable()
		L.SetField(item, "name", lua.LString(it.Name))
		L.SetField(item, "damage", lua.LNumber(it.Damage))
		t.Append(item)
	}
	return t
}
