// Package command provides the command registry, parser, and built-in command
// definitions for the text front-end.
package command

// Categories for organizing commands.
const (
	CategorySetup  = "setup"
	CategoryTurn   = "turn"
	CategoryInfo   = "info"
	CategorySystem = "system"
)

// Handler identifiers. Turn and info handlers share their names with
// engine.ActionKind so a resolved command maps straight onto an engine action.
const (
	HandlerAdd      = "add"
	HandlerStart    = "start"
	HandlerMove     = "move"
	HandlerPickUp   = "pickup"
	HandlerLook     = "look"
	HandlerAttack   = "attack"
	HandlerMovePet  = "movepet"
	HandlerPass     = "pass"
	HandlerDescribe = "describe"
	HandlerSpace    = "space"
	HandlerState    = "state"
	HandlerSave     = "save"
	HandlerEnd      = "end"
	HandlerHelp     = "help"
	HandlerQuit     = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument syntax, empty when the command takes none.
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (setup, turn, info, system).
	Category string
	// Handler names the engine action or front-end routine that runs it.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Setup commands
		{Name: "add", Aliases: []string{"join"}, Usage: "<name> <room> [capacity] [ai]", Help: "Add a player in a room (name or index)", Category: CategorySetup, Handler: HandlerAdd},
		{Name: "start", Aliases: []string{"begin"}, Help: "Start the game", Category: CategorySetup, Handler: HandlerStart},

		// Turn commands
		{Name: "move", Aliases: []string{"m", "go"}, Usage: "<neighbor name or index>", Help: "Move to a neighboring room", Category: CategoryTurn, Handler: HandlerMove},
		{Name: "pickup", Aliases: []string{"get", "take"}, Usage: "<item>", Help: "Pick up an item in your room", Category: CategoryTurn, Handler: HandlerPickUp},
		{Name: "look", Aliases: []string{"l"}, Help: "Look around your room and its neighbors", Category: CategoryTurn, Handler: HandlerLook},
		{Name: "attack", Aliases: []string{"a", "kill"}, Usage: "[item]", Help: "Attack the target, poking when no item is named", Category: CategoryTurn, Handler: HandlerAttack},
		{Name: "movepet", Aliases: []string{"pet"}, Usage: "<room>", Help: "Move the pet to any room", Category: CategoryTurn, Handler: HandlerMovePet},
		{Name: "pass", Aliases: []string{"p"}, Help: "End your turn without acting", Category: CategoryTurn, Handler: HandlerPass},

		// Info commands
		{Name: "describe", Aliases: []string{"me", "whois"}, Usage: "[player]", Help: "Describe a player, yourself by default", Category: CategoryInfo, Handler: HandlerDescribe},
		{Name: "space", Aliases: []string{"room"}, Usage: "<room>", Help: "Describe a room by name or index", Category: CategoryInfo, Handler: HandlerSpace},
		{Name: "state", Aliases: []string{"status"}, Help: "Show the game state", Category: CategoryInfo, Handler: HandlerState},
		{Name: "save", Aliases: []string{"map"}, Usage: "[file]", Help: "Save a PNG map of the world", Category: CategoryInfo, Handler: HandlerSave},

		// System commands
		{Name: "end", Aliases: nil, Help: "End the game now with no winner", Category: CategorySystem, Handler: HandlerEnd},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// IsTurnCommand reports whether the handler is a turn action for the
// current player.
func IsTurnCommand(handler string) bool {
	switch handler {
	case HandlerMove, HandlerPickUp, HandlerLook, HandlerAttack, HandlerMovePet, HandlerPass:
		return true
	default:
		return false
	}
}
