// Package steplights provides a TUI component showing one indicator per detent.
package steplights

import (
	"fmt"
	"strings"

	"github.com/alkime/steplever/internal/tui/style"
	"github.com/alkime/steplever/pkg/uictl"
)

const (
	litChar   = "●"
	unlitChar = "○"
)

// Model displays a row of step indicators with the active detent lit.
// It reads the active step and step count from a SteppedDial.
type Model struct {
	dial uictl.SteppedDial[int]
}

// New creates a new steplights model.
func New(dial uictl.SteppedDial[int]) Model {
	return Model{dial: dial}
}

// View renders the indicator row.
func (m Model) View() string {
	if m.dial == nil {
		return ""
	}

	count := m.dial.Steps()
	if count < 1 {
		return ""
	}

	active := m.dial.Read()
	lights := make([]string, 0, count)

	for i := range count {
		if i == active {
			lights = append(lights, style.Bullet.Render(litChar))
		} else {
			lights = append(lights, style.Muted.Render(unlitChar))
		}
	}

	return strings.Join(lights, " ")
}

// Label returns the active detent as a "step A/B" label, 1-based.
func (m Model) Label() string {
	if m.dial == nil {
		return ""
	}

	count := m.dial.Steps()
	if count < 1 {
		return ""
	}

	return fmt.Sprintf("step %d/%d", m.dial.Read()+1, count)
}
