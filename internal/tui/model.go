package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alkime/steplever/internal/tui/components/gauge"
	"github.com/alkime/steplever/internal/tui/components/steplights"
	"github.com/alkime/steplever/internal/tui/style"
	"github.com/alkime/steplever/pkg/collections"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// trackInterval is the cadence of the steering loop while the lever is held.
	trackInterval = 50 * time.Millisecond

	// steerStep is how far one arrow press moves the virtual pointer, in degrees.
	steerStep = 3.0

	// steerMargin lets the pointer overshoot the span so clamping is visible.
	steerMargin = 15.0

	// gaugeWidth is the track width of the deflection gauge.
	gaugeWidth = 41
)

// trackMsg drives one steering update while the lever is grabbed.
type trackMsg struct{}

// Config carries demo-wide settings.
type Config struct {
	Title  string
	Cancel context.CancelFunc
}

// Model is the interactive lever demo. A virtual pointer is steered with
// the arrow keys; while the lever is grabbed, a tick loop feeds the
// pointer position to the lever once per tick.
type Model struct {
	config    Config
	keys      KeyMap
	controls  LeverControls
	gauge     gauge.Model
	lights    steplights.Model
	spinner   spinner.Model
	stopwatch stopwatch.Model
	progress  progress.Model
	steer     float64
	status    string
}

// New creates the demo model around a set of lever controls.
func New(config Config, controls LeverControls) *Model {
	s := spinner.New()
	s.Spinner = spinner.Points

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	m := &Model{
		config:    config,
		keys:      DefaultKeyMap(),
		controls:  controls,
		gauge:     gauge.New(controls.Angle, controls.StepAngles, gaugeWidth),
		lights:    steplights.New(controls.Step),
		spinner:   s,
		stopwatch: stopwatch.New(),
		progress:  p,
	}

	if controls.Angle != nil {
		m.steer = controls.Angle.Read()
	}

	return m
}

// Init returns the initial commands for the demo.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.gauge.Init())
}

// Update handles messages for the demo.
func (m *Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch typedMsg := teaMsg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typedMsg)

	case trackMsg:
		if m.grabbed() && m.controls.Steer != nil {
			m.controls.Steer(m.steer)

			return m, m.trackTick()
		}

		return m, nil

	case gauge.TickMsg:
		var cmd tea.Cmd
		m.gauge, cmd = m.gauge.Update(typedMsg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typedMsg)
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(typedMsg)
		m.progress = progressModel.(progress.Model) //nolint:forcetypeassert // bubbles library contract
		cmds = append(cmds, cmd)
	}

	var stopwatchCmd tea.Cmd
	m.stopwatch, stopwatchCmd = m.stopwatch.Update(teaMsg)
	if stopwatchCmd != nil {
		cmds = append(cmds, stopwatchCmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the demo UI.
func (m *Model) View() string {
	var sb strings.Builder

	if m.config.Title != "" {
		sb.WriteString(style.Title.Render(m.config.Title))
		sb.WriteString("\n\n")
	}

	if m.grabbed() {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(style.Title.Render("Grabbed"))
		sb.WriteString(" ")
		sb.WriteString(style.Subtitle.Render(m.stopwatch.View()))
		sb.WriteString(" ")
		sb.WriteString(style.Subtitle.Render(fmt.Sprintf("pointer %+.1f°", m.steer)))
	} else {
		sb.WriteString(style.Warning.Render("Idle"))
	}

	sb.WriteString("\n\n")

	sb.WriteString(style.Viewport.Render(m.gauge.View()))
	sb.WriteString("\n\n")

	sb.WriteString(m.lights.View())
	sb.WriteString("  ")
	sb.WriteString(style.Label.Render(m.lights.Label()))
	sb.WriteString("\n\n")

	sb.WriteString(m.progress.ViewAs(m.spanFraction()))
	sb.WriteString("\n")
	sb.WriteString(m.lockLine())
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(style.Error.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.helpView())

	return sb.String()
}

// handleKey dispatches a key press.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
		if m.config.Cancel != nil {
			m.config.Cancel()
		}

		return m, tea.Quit

	case key.Matches(msg, m.keys.Grab):
		return m.toggleGrab()

	case key.Matches(msg, m.keys.Lock):
		if m.controls.Lock != nil {
			m.controls.Lock.Toggle()
		}

	case key.Matches(msg, m.keys.Left):
		m.moveSteer(-steerStep)

	case key.Matches(msg, m.keys.Right):
		m.moveSteer(steerStep)

	case key.Matches(msg, m.keys.Fewer):
		m.resize(-1)

	case key.Matches(msg, m.keys.More):
		m.resize(1)

	case key.Matches(msg, m.keys.Steps):
		m.jumpToStep(msg.String())
	}

	return m, nil
}

// toggleGrab acquires or releases the lever.
func (m *Model) toggleGrab() (tea.Model, tea.Cmd) {
	if m.controls.Grabbed == nil {
		return m, nil
	}

	if m.grabbed() {
		m.controls.Grabbed.Off()

		return m, m.stopwatch.Stop()
	}

	m.controls.Grabbed.On()
	if !m.grabbed() {
		m.status = "lever is already held"

		return m, nil
	}

	m.status = ""

	// Start steering from the current deflection so the pointer
	// does not yank the lever on grab.
	if m.controls.Angle != nil {
		m.steer = m.controls.Angle.Read()
	}

	return m, tea.Batch(m.stopwatch.Reset(), m.stopwatch.Start(), m.trackTick())
}

// moveSteer shifts the virtual pointer, keeping it near the span.
func (m *Model) moveSteer(delta float64) {
	if m.controls.Angle == nil {
		return
	}

	lo, hi := m.controls.Angle.Range()
	if hi < lo {
		lo, hi = hi, lo
	}

	m.steer = collections.Clamp(m.steer+delta, lo-steerMargin, hi+steerMargin)
}

// resize rebuilds the lever with delta more (or fewer) steps.
func (m *Model) resize(delta int) {
	if m.controls.Step == nil || m.controls.Resize == nil {
		return
	}

	if err := m.controls.Resize(m.controls.Step.Steps() + delta); err != nil {
		m.status = err.Error()

		return
	}

	m.status = ""
	m.moveSteer(0)
}

// jumpToStep drives the lever to the detent named by a digit key, 1-based.
func (m *Model) jumpToStep(digit string) {
	if m.controls.SetValue == nil || len(digit) != 1 {
		return
	}

	m.controls.SetValue(int(digit[0] - '1'))
}

func (m *Model) grabbed() bool {
	return m.controls.Grabbed != nil && m.controls.Grabbed.Read()
}

// trackTick schedules the next steering update.
func (m *Model) trackTick() tea.Cmd {
	if m.controls.Steer == nil {
		return nil
	}

	return tea.Tick(trackInterval, func(_ time.Time) tea.Msg {
		return trackMsg{}
	})
}

// spanFraction returns the lever deflection as a fraction of its span.
func (m *Model) spanFraction() float64 {
	if m.controls.Angle == nil {
		return 0
	}

	lo, hi := m.controls.Angle.Range()
	if lo == hi {
		return 0
	}

	return (m.controls.Angle.Read() - lo) / (hi - lo)
}

func (m *Model) lockLine() string {
	if m.controls.Lock == nil {
		return ""
	}

	if m.controls.Lock.Read() {
		return style.Success.Render("lock-to-value on")
	}

	return style.Muted.Render("lock-to-value off")
}

func (m *Model) helpView() string {
	var sb strings.Builder

	sb.WriteString(renderKeyHelp(m.keys.Grab, " "))
	sb.WriteString(renderKeyHelp(m.keys.Left, " "))
	sb.WriteString(renderKeyHelp(m.keys.Steps, "\n"))
	sb.WriteString(renderKeyHelp(m.keys.Lock, " "))
	sb.WriteString(renderKeyHelp(m.keys.Fewer, " "))
	sb.WriteString(renderKeyHelp(m.keys.More, "\n"))
	sb.WriteString(renderKeyHelp(m.keys.Quit, ""))

	return sb.String()
}
