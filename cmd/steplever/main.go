package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alkime/steplever/internal/lever"
	"github.com/alkime/steplever/internal/sim"
	"github.com/alkime/steplever/internal/tui"
	"github.com/alkime/steplever/pkg/channels"
	"github.com/alkime/steplever/pkg/vec3"
	tea "github.com/charmbracelet/bubbletea"
)

// demoHistorySize bounds the transition log kept during a demo session.
const demoHistorySize = 64

// CLI defines the steplever command structure.
type CLI struct {
	// Default TUI command (runs when no subcommand given)
	Demo DemoCmd `cmd:"" default:"1" help:"Launch the interactive lever demo"`

	// Subcommands
	Simulate SimulateCmd `cmd:"" help:"Replay a pointer trace through a lever and report transitions"`
	Table    TableCmd    `cmd:"" help:"Print a lever's step table and quantization boundaries"`
}

// DemoCmd is the default command that runs the TUI demo.
type DemoCmd struct {
	Title    string  `flag:"" default:"steplever" help:"Demo title"`
	MinAngle float64 `flag:"" default:"-60" help:"Lowest detent angle in degrees"`
	MaxAngle float64 `flag:"" default:"60" help:"Highest detent angle in degrees"`
	Steps    int     `flag:"" default:"5" help:"Number of detents"`
	Lock     bool    `flag:"" help:"Snap the handle to its detent on every change"`
	Radius   float64 `flag:"" default:"1" help:"Pointer orbit radius"`
}

// Run executes the demo command.
func (c *DemoCmd) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := sync.WaitGroup{}

	ctrl, err := lever.New(lever.Config{
		MinAngle:    c.MinAngle,
		MaxAngle:    c.MaxAngle,
		StepCount:   c.Steps,
		LockToValue: c.Lock,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create lever: %w", err)
	}

	orbiter := sim.NewOrbiter(ctrl.Config(), vec3.IdentityTransform(), c.Radius)

	// Transitions flow from the lever's step signals into a history
	// log drained by a background goroutine.
	history := lever.NewTransitionLog(demoHistorySize)
	transC := make(chan lever.Transition, 16)

	watch := newStepWatch(ctrl, transC)
	watch.attach()

	wg.Go(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case tr := <-transC:
				history.Record(tr)
				slog.Debug("step transition", "from", tr.From, "to", tr.To, "grabbed", tr.Grabbed)
			}
		}
	})

	config := tui.Config{
		Title:  c.Title,
		Cancel: cancel,
	}

	ctrls := makeLeverControls(ctrl, orbiter, watch)
	p := tea.NewProgram(tui.New(config, ctrls))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	cancel()
	wg.Wait()

	slog.Info("demo finished",
		"transitions", history.Count(),
		"final_step", ctrl.Value()+1,
		"final_angle", ctrl.Angle(),
	)

	fmt.Println("\nfinished. bye!")

	return nil
}

// SimulateCmd replays a pointer trace through a lever.
type SimulateCmd struct {
	Trace    string  `arg:"" optional:"" help:"Pointer trace file (JSON); a sweep is generated when omitted"`
	MinAngle float64 `flag:"" default:"-60" help:"Lowest detent angle in degrees"`
	MaxAngle float64 `flag:"" default:"60" help:"Highest detent angle in degrees"`
	Steps    int     `flag:"" default:"5" help:"Number of detents"`
	Lock     bool    `flag:"" help:"Snap the handle to its detent on every change"`
	Ticks    int     `flag:"" default:"200" help:"Tick count for a generated sweep"`
	Radius   float64 `flag:"" default:"1" help:"Pointer orbit radius for a generated sweep"`
	Out      string  `flag:"" optional:"" help:"Write the generated sweep trace to this file"`
}

// Run executes the simulate command.
func (c *SimulateCmd) Run() error {
	cfg := lever.Config{
		MinAngle:    c.MinAngle,
		MaxAngle:    c.MaxAngle,
		StepCount:   c.Steps,
		LockToValue: c.Lock,
	}

	ctrl, err := lever.New(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to create lever: %w", err)
	}

	var trace *sim.Trace

	if c.Trace != "" {
		trace, err = sim.LoadTrace(c.Trace)
		if err != nil {
			return err
		}
	} else {
		trace, err = sim.Sweep(ctrl.Config(), vec3.IdentityTransform(), sim.SweepOptions{
			Ticks:  c.Ticks,
			Radius: c.Radius,
		})
		if err != nil {
			return err
		}

		if c.Out != "" {
			if err := trace.Save(c.Out); err != nil {
				return err
			}

			slog.Info("sweep trace written", "path", c.Out)
		}
	}

	runner := sim.NewRunner(ctrl, slog.Default())

	report, err := runner.Replay(trace, lever.ActorID("simulate"))
	if err != nil {
		return fmt.Errorf("failed to replay trace: %w", err)
	}

	fmt.Printf("trace %q: %d samples, %d transitions\n",
		trace.Name, report.Samples, len(report.Transitions))

	for _, tr := range report.Transitions {
		fmt.Printf("  step %d -> %d\n", tr.From+1, tr.To+1)
	}

	fmt.Printf("final: step %d/%d at %+.1f°\n",
		report.FinalStep+1, ctrl.Steps(), report.FinalAngle)

	return nil
}

// TableCmd prints a lever's step table.
type TableCmd struct {
	MinAngle float64 `flag:"" default:"-60" help:"Lowest detent angle in degrees"`
	MaxAngle float64 `flag:"" default:"60" help:"Highest detent angle in degrees"`
	Steps    int     `flag:"" default:"5" help:"Number of detents"`
}

// Run executes the table command.
func (c *TableCmd) Run() error {
	table, err := lever.NewStepTable(c.MinAngle, c.MaxAngle, c.Steps)
	if err != nil {
		return fmt.Errorf("failed to build step table: %w", err)
	}

	angles := table.Angles()

	for i, angle := range angles {
		fmt.Printf("step %2d   %+9.3f°\n", i+1, angle)

		// Midpoints between detents are where nearest-step
		// quantization flips; exact midpoints go to the lower step.
		if i < len(angles)-1 {
			fmt.Printf("          %+9.3f°  boundary %d|%d\n",
				(angle+angles[i+1])/2, i+1, i+2)
		}
	}

	return nil
}

func main() {
	// Set up text-based logger for CLI output
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}

// stepWatch forwards detent transitions from a lever's step signals to
// a channel. Rebuilding the lever drops its signal subscriptions, so
// hosts reattach after every successful reconfigure.
type stepWatch struct {
	ctrl *lever.Controller
	out  chan<- lever.Transition
	prev int
}

func newStepWatch(ctrl *lever.Controller, out chan<- lever.Transition) *stepWatch {
	return &stepWatch{
		ctrl: ctrl,
		out:  out,
		prev: ctrl.Value(),
	}
}

// attach subscribes to every step signal of the current table.
func (w *stepWatch) attach() {
	w.prev = w.ctrl.Value()

	for i := range w.ctrl.Steps() {
		if _, err := w.ctrl.OnStep(i, func() { w.fire(i) }); err != nil {
			slog.Error("failed to watch step", "step", i, "error", err)
		}
	}
}

func (w *stepWatch) fire(step int) {
	tr := lever.Transition{
		From:    w.prev,
		To:      step,
		At:      time.Now(),
		Grabbed: w.ctrl.Grabbed(),
	}
	w.prev = step

	if err := channels.SendNonBlock(w.out, tr); err != nil {
		slog.Debug("transition dropped", "error", err)
	}
}

func makeLeverControls(ctrl *lever.Controller, orbiter sim.Orbiter, watch *stepWatch) tui.LeverControls {
	return tui.LeverControls{
		Angle:      leverAngleDial{ctrl: ctrl},
		Step:       leverStepDial{ctrl: ctrl},
		StepAngles: leverMarks{ctrl: ctrl},
		Grabbed: leverGrabKnob{
			ctrl:  ctrl,
			actor: lever.ActorID("demo"),
		},
		Lock: lockKnob{
			ctrl:  ctrl,
			watch: watch,
		},
		Steer: func(angleDeg float64) {
			ctrl.Track(orbiter.WorldAt(angleDeg))
		},
		SetValue: func(step int) {
			ctrl.SetValue(step)
		},
		Resize: func(count int) error {
			cfg := ctrl.Config()
			cfg.StepCount = count

			if err := ctrl.Reconfigure(cfg); err != nil {
				return err
			}

			watch.attach()

			return nil
		},
	}
}

// leverGrabKnob implements uictl.Knob over the lever's grab state.
type leverGrabKnob struct {
	ctrl  *lever.Controller
	actor lever.Interactor
}

func (k leverGrabKnob) Read() bool {
	return k.ctrl.Grabbed()
}

func (k leverGrabKnob) On() {
	if !k.ctrl.Grab(k.actor) {
		slog.Debug("grab refused")
	}
}

func (k leverGrabKnob) Off() {
	k.ctrl.Release()
}

func (k leverGrabKnob) Toggle() {
	if k.ctrl.Grabbed() {
		k.Off()
	} else {
		k.On()
	}
}

// lockKnob implements uictl.Knob over the lever's lock-to-value flag.
type lockKnob struct {
	ctrl  *lever.Controller
	watch *stepWatch
}

func (k lockKnob) Read() bool {
	return k.ctrl.Config().LockToValue
}

func (k lockKnob) On() {
	k.set(true)
}

func (k lockKnob) Off() {
	k.set(false)
}

func (k lockKnob) Toggle() {
	k.set(!k.Read())
}

func (k lockKnob) set(lock bool) {
	cfg := k.ctrl.Config()
	if cfg.LockToValue == lock {
		return
	}

	cfg.LockToValue = lock
	if err := k.ctrl.Reconfigure(cfg); err != nil {
		slog.Error("failed to toggle lock-to-value", "error", err)

		return
	}

	k.watch.attach()
}

// leverAngleDial implements uictl.RangeDial[float64] over the live deflection.
type leverAngleDial struct {
	ctrl *lever.Controller
}

func (d leverAngleDial) Read() float64 {
	return d.ctrl.Angle()
}

func (d leverAngleDial) Range() (float64, float64) {
	return d.ctrl.Config().Span()
}

// leverStepDial implements uictl.SteppedDial[int] over the active detent.
type leverStepDial struct {
	ctrl *lever.Controller
}

func (d leverStepDial) Read() int {
	return d.ctrl.Value()
}

func (d leverStepDial) Steps() int {
	return d.ctrl.Steps()
}

// leverMarks implements uictl.Levels[float64] over the detent angles.
type leverMarks struct {
	ctrl *lever.Controller
}

func (lm leverMarks) Read() []float64 {
	return lm.ctrl.StepAngles()
}
