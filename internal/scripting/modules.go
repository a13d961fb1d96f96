package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/manor/internal/game/dice"
)

// registerModules installs the manor.* helper table into L.
//
//   - manor.roll(n) returns an integer in [0, n) from the turn's dice source.
//   - manor.chance(p) returns true with probability p.
//   - manor.log(msg) writes msg to the debug log.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: the manor global is defined in L.
func (p *LuaPolicy) registerModules(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(p.luaRoll))
	L.SetField(mod, "chance", L.NewFunction(p.luaChance))
	L.SetField(mod, "log", L.NewFunction(p.luaLog))
	L.SetGlobal("manor", mod)
}

func (p *LuaPolicy) luaRoll(L *lua.LState) int {
	n := L.CheckInt(1)
	if n <= 0 {
		L.ArgError(1, "n must be positive")
		return 0
	}
	if p.src == nil {
		L.RaiseError("manor.roll is only available inside decide")
		return 0
	}
	L.Push(lua.LNumber(p.src.Intn(n)))
	return 1
}

func (p *LuaPolicy) luaChance(L *lua.LState) int {
	prob := float64(L.CheckNumber(1))
	if p.src == nil {
		L.RaiseError("manor.chance is only available inside decide")
		return 0
	}
	L.Push(lua.LBool(dice.Chance(p.src, prob)))
	return 1
}

func (p *LuaPolicy) luaLog(L *lua.LState) int {
	p.logger.Debug("lua policy", zap.String("script", p.name), zap.String("msg", L.CheckString(1)))
	return 0
}
