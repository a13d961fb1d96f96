package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/manor/internal/game/command"
	"github.com/cory-johannsen/manor/internal/game/engine"
	"github.com/cory-johannsen/manor/internal/render"
)

// Options configures a Console.
type Options struct {
	// DefaultCapacity is used by add when no capacity is given.
	DefaultCapacity int
	// AIDelay pauses before each automated turn.
	AIDelay time.Duration
	// CellSize is the pixel size of one grid cell in saved maps.
	CellSize int
	// MapPath is where save writes when no file is given.
	MapPath string
	// Color enables ANSI styling.
	Color bool
}

// Console runs one game over a line-oriented reader and writer.
type Console struct {
	world    *engine.World
	registry *command.Registry
	in       *bufio.Scanner
	out      io.Writer
	opts     Options
	style    styler
	logger   *zap.Logger
}

// New creates a Console for w.
//
// Precondition: w, in, and out are non-nil.
// Postcondition: Returns a Console ready to Run.
func New(w *engine.World, in io.Reader, out io.Writer, opts Options, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CellSize < render.MinCellSize {
		opts.CellSize = render.MinCellSize
	}
	if opts.MapPath == "" {
		opts.MapPath = "world_map.png"
	}
	return &Console{
		world:    w,
		registry: command.DefaultRegistry(),
		in:       bufio.NewScanner(in),
		out:      out,
		opts:     opts,
		style:    styler{enabled: opts.Color},
		logger:   logger,
	}
}

// Run drives the game until it is over, the input ends, the player quits,
// or ctx is cancelled. Automated players take their turns without input.
//
// Postcondition: Returns nil on a normal exit and ctx.Err() on cancellation.
func (c *Console) Run(ctx context.Context) error {
	c.println(c.style.paint(Bold, "Welcome to "+c.world.Name()+"."))
	c.println("Add players with 'add', then 'start'. Type 'help' for commands.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.world.IsOver() {
			c.println(c.style.paint(Bold+Magenta, outcomeLine(c.world.Outcome())))
			return nil
		}
		if cur, err := c.world.CurrentPlayer(); err == nil && cur.Computer && c.world.Phase() == engine.PhaseInProgress {
			if err := c.autoTurn(ctx); err != nil {
				return err
			}
			continue
		}

		fmt.Fprint(c.out, c.prompt())
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			c.println("")
			return nil
		}
		if quit := c.dispatch(c.in.Text()); quit {
			return nil
		}
	}
}

// dispatch runs one input line and reports whether the player quit.
func (c *Console) dispatch(line string) bool {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return false
	}
	cmd, ok := c.registry.Resolve(parsed.Command)
	if !ok {
		c.println(c.style.paint(Yellow, fmt.Sprintf("Unknown command %q. Type 'help' for a list.", parsed.Command)))
		return false
	}

	switch cmd.Handler {
	case command.HandlerQuit:
		c.println("Goodbye.")
		return true
	case command.HandlerHelp:
		c.println(command.FormatHelp(c.registry))
	case command.HandlerAdd:
		c.add(parsed.Args)
	case command.HandlerStart:
		c.start()
	case command.HandlerState:
		c.println(c.formatState(c.world.Snapshot()))
	case command.HandlerSave:
		c.save(parsed.RawArgs)
	case command.HandlerEnd:
		c.report(c.world.EndGame())
	default:
		c.act(cmd, parsed.RawArgs)
	}
	return false
}

func (c *Console) add(args []string) {
	a, err := command.ParseAdd(args, c.opts.DefaultCapacity)
	if err != nil {
		c.errorLine(err)
		return
	}
	room, err := c.roomIndex(a.Room)
	if err != nil {
		c.errorLine(err)
		return
	}
	res, err := c.world.AddPlayer(a.Name, room, a.Capacity, a.Computer)
	if err != nil {
		c.errorLine(err)
		return
	}
	c.report(res)
}

func (c *Console) start() {
	if err := c.world.Start(); err != nil {
		c.errorLine(err)
		return
	}
	cur, _ := c.world.CurrentPlayer()
	c.println(c.style.paint(Bold, fmt.Sprintf("The game begins. %s goes first.", cur.Name)))
}

func (c *Console) save(rawArgs string) {
	path := strings.TrimSpace(rawArgs)
	if path == "" {
		path = c.opts.MapPath
	}
	if err := render.SaveMap(path, c.world.Layout(), c.world.Characters(), c.opts.CellSize); err != nil {
		c.errorLine(err)
		return
	}
	c.println(fmt.Sprintf("Map saved to %s", path))
}

// act sends a turn or info command to the engine on behalf of the current
// player.
func (c *Console) act(cmd *command.Command, rawArgs string) {
	player := ""
	if cur, err := c.world.CurrentPlayer(); err == nil {
		player = cur.Name
	}
	if player == "" && cmd.Handler == command.HandlerDescribe && strings.TrimSpace(rawArgs) == "" {
		c.errorLine(fmt.Errorf("%w: describe <player> (no players have joined)", command.ErrUsage))
		return
	}
	a, err := command.ToAction(cmd, rawArgs, player)
	if err != nil {
		c.errorLine(err)
		return
	}
	c.report(c.world.Execute(a))
}

// autoTurn lets the engine's policy act for the current computer player.
// A rejected decision falls back to looking around so the turn is always
// consumed.
func (c *Console) autoTurn(ctx context.Context) error {
	if c.opts.AIDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.opts.AIDelay):
		}
	}
	cur, err := c.world.CurrentPlayer()
	if err != nil {
		return err
	}

	res, err := c.world.AutoTurn()
	if err == nil && res.TurnConsumed {
		c.report(res)
		return nil
	}
	if err != nil {
		c.logger.Warn("automated turn failed",
			zap.String("player", cur.Name),
			zap.Error(err),
		)
	} else {
		c.logger.Debug("automated turn not consumed",
			zap.String("player", cur.Name),
			zap.String("message", res.Message),
		)
	}

	fallback, err := c.world.LookAround(cur.Name)
	if err != nil {
		return fmt.Errorf("fallback turn for %s: %w", cur.Name, err)
	}
	fallback.Message = "[AI] " + fallback.Message
	c.report(fallback)
	return nil
}

// roomIndex accepts a room index or a case-insensitive room name.
func (c *Console) roomIndex(ref string) (int, error) {
	if idx, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		if !c.world.Layout().ValidIndex(idx) {
			return 0, fmt.Errorf("%w: index %d", engine.ErrRoomNotFound, idx)
		}
		return idx, nil
	}
	room, err := c.world.RoomByName(ref)
	if err != nil {
		return 0, err
	}
	return room.Index, nil
}

func (c *Console) prompt() string {
	if c.world.Phase() != engine.PhaseInProgress {
		return c.style.paint(Bold, "setup> ")
	}
	gs := c.world.Snapshot()
	return c.style.paint(Bold, fmt.Sprintf("[turn %d] %s in %s> ", gs.Turn+1, gs.CurrentPlayer, gs.CurrentRoomName))
}

func (c *Console) report(res engine.ActionResult) {
	msg := res.Message
	switch {
	case strings.HasPrefix(msg, "Error: "):
		msg = c.style.paint(Red, msg)
	case !res.Success:
		msg = c.style.paint(Yellow, msg)
	case strings.HasPrefix(msg, "[AI] "):
		msg = c.style.paint(Cyan, msg)
	}
	c.println(msg)
}

func (c *Console) errorLine(err error) {
	var msg string
	if errors.Is(err, command.ErrUsage) {
		msg = "Usage: " + strings.TrimPrefix(err.Error(), command.ErrUsage.Error()+": ")
	} else {
		msg = "Error: " + err.Error()
	}
	c.println(c.style.paint(Red, msg))
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

// formatState renders a snapshot as a multi-line report.
func (c *Console) formatState(gs engine.GameState) string {
	layout := c.world.Layout()
	roomName := func(idx int) string {
		if !layout.ValidIndex(idx) {
			return "nowhere"
		}
		return layout.Room(idx).Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "World: %s\n", gs.World)
	fmt.Fprintf(&b, "Phase: %s\n", gs.Phase)
	if gs.MaxTurns > 0 {
		fmt.Fprintf(&b, "Turns taken: %d/%d\n", gs.Turn, gs.MaxTurns)
	} else {
		fmt.Fprintf(&b, "Turns taken: %d\n", gs.Turn)
	}
	if gs.CurrentPlayer != "" && gs.Phase == engine.PhaseInProgress {
		fmt.Fprintf(&b, "Current player: %s in %s\n", gs.CurrentPlayer, gs.CurrentRoomName)
	}
	fmt.Fprintf(&b, "Target: %s (health %d) in %s\n", gs.TargetName, gs.TargetHealth, roomName(gs.TargetRoom))
	fmt.Fprintf(&b, "Pet: %s in %s\n", gs.PetName, roomName(gs.PetRoom))
	b.WriteString("Players:")
	if len(gs.Players) == 0 {
		b.WriteString(" none")
	}
	for _, p := range gs.Players {
		control := "Human"
		if p.Computer {
			control = "Computer"
		}
		fmt.Fprintf(&b, "\n  - %s (%s) in %s carrying %d/%d", p.Name, control, roomName(p.Room), len(p.Items), p.Capacity)
		if len(p.Items) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(p.Items, ", "))
		}
	}
	if gs.Outcome.Over {
		b.WriteString("\n" + outcomeLine(gs.Outcome))
	}
	return b.String()
}

func outcomeLine(o engine.Outcome) string {
	if o.Winner != "" {
		return fmt.Sprintf("Game over: %s wins (%s).", o.Winner, o.Reason)
	}
	return fmt.Sprintf("Game over: no winner (%s).", o.Reason)
}
