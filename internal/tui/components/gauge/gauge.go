// Package gauge provides a TUI component for visualizing lever deflection.
package gauge

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/steplever/internal/tui/style"
	"github.com/alkime/steplever/pkg/collections"
	"github.com/alkime/steplever/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

// Track characters: caps close the span, marks sit at detent angles and
// the handle sits at the live deflection.
const (
	leftCap    = '├'
	rightCap   = '┤'
	trackChar  = '─'
	markChar   = '┼'
	handleChar = '█'
)

// minWidth keeps the readout row legible.
const minWidth = 11

// TickMsg triggers a gauge redraw.
type TickMsg struct{}

// Model displays a lever span as a horizontal track with detent marks
// and a handle marker at the live deflection angle. Below the track a
// readout row shows the span bounds and the current angle in degrees.
type Model struct {
	angle uictl.RangeDial[float64] // Live deflection and span bounds
	marks uictl.Levels[float64]    // Detent angles within the span
	width int                      // Display width in characters
}

// New creates a new gauge model.
// The width parameter determines how many columns the track spans.
func New(angle uictl.RangeDial[float64], marks uictl.Levels[float64], width int) Model {
	if width < minWidth {
		width = minWidth
	}

	return Model{
		angle: angle,
		marks: marks,
		width: width,
	}
}

// Init returns the initial tick command.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles tick messages for animation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, m.tick()
	}

	return m, nil
}

// View renders the gauge as ASCII art.
func (m Model) View() string {
	if m.angle == nil {
		return m.renderEmpty()
	}

	lo, hi := m.angle.Range()
	if lo == hi {
		return m.renderEmpty()
	}

	return m.renderTrack(lo, hi)
}

// tick schedules the next gauge redraw at ~20 FPS.
func (m Model) tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// renderTrack renders the span track with detent marks and the handle.
func (m Model) renderTrack(lo, hi float64) string {
	cells := make([]rune, m.width)
	for i := range cells {
		cells[i] = trackChar
	}

	cells[0] = leftCap
	cells[m.width-1] = rightCap

	if m.marks != nil {
		for _, angle := range m.marks.Read() {
			cells[m.column(angle, lo, hi)] = markChar
		}
	}

	value := m.angle.Read()
	cells[m.column(value, lo, hi)] = handleChar

	var sb strings.Builder

	sb.WriteString(style.Progress.Render(string(cells)))
	sb.WriteString("\n")
	sb.WriteString(m.renderReadout(value, lo, hi))

	return sb.String()
}

// column maps an angle to a track column.
// The span bounds may run in either direction.
func (m Model) column(angle, lo, hi float64) int {
	frac := (angle - lo) / (hi - lo)
	col := int(frac*float64(m.width-1) + 0.5)

	return collections.Clamp(col, 0, m.width-1)
}

// renderReadout renders the span bounds at the edges and the live angle
// between them, padded to the track width.
func (m Model) renderReadout(value, lo, hi float64) string {
	left := formatAngle(lo)
	center := formatAngle(value)
	right := formatAngle(hi)

	gap := m.width - runeLen(left) - runeLen(center) - runeLen(right)
	if gap < 2 {
		gap = 2
	}

	leftGap := gap / 2
	rightGap := gap - leftGap

	return style.Muted.Render(left) +
		strings.Repeat(" ", leftGap) +
		style.Label.Render(center) +
		strings.Repeat(" ", rightGap) +
		style.Muted.Render(right)
}

// renderEmpty renders a bare track for when there is no span to show.
func (m Model) renderEmpty() string {
	cells := make([]rune, m.width)
	for i := range cells {
		cells[i] = trackChar
	}

	cells[0] = leftCap
	cells[m.width-1] = rightCap

	var sb strings.Builder

	sb.WriteString(style.Muted.Render(string(cells)))
	sb.WriteString("\n")
	sb.WriteString(style.Muted.Render("—"))

	return sb.String()
}

// formatAngle formats an angle in degrees for the readout row.
func formatAngle(angle float64) string {
	return fmt.Sprintf("%+.1f°", angle)
}

// runeLen returns the display length of a string in runes.
func runeLen(s string) int {
	return len([]rune(s))
}
