package steplights_test

import (
	"testing"

	"github.com/alkime/steplever/internal/tui/components/steplights"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// mockStepDial implements uictl.SteppedDial[int] for testing.
type mockStepDial struct {
	value, steps int
}

func (m *mockStepDial) Read() int {
	return m.value
}

func (m *mockStepDial) Steps() int {
	return m.steps
}

func TestSteplights_ActiveStepLit(t *testing.T) {
	t.Parallel()

	m := steplights.New(&mockStepDial{value: 2, steps: 5})

	assert.Equal(t, "○ ○ ● ○ ○", m.View())
}

func TestSteplights_FirstAndLast(t *testing.T) {
	t.Parallel()

	first := steplights.New(&mockStepDial{value: 0, steps: 3})
	assert.Equal(t, "● ○ ○", first.View())

	last := steplights.New(&mockStepDial{value: 2, steps: 3})
	assert.Equal(t, "○ ○ ●", last.View())
}

func TestSteplights_ActiveOutOfRange(t *testing.T) {
	t.Parallel()

	m := steplights.New(&mockStepDial{value: 7, steps: 3})

	assert.Equal(t, "○ ○ ○", m.View())
}

func TestSteplights_NilDial(t *testing.T) {
	t.Parallel()

	m := steplights.New(nil)

	assert.Empty(t, m.View())
	assert.Empty(t, m.Label())
}

func TestSteplights_ZeroSteps(t *testing.T) {
	t.Parallel()

	m := steplights.New(&mockStepDial{value: 0, steps: 0})

	assert.Empty(t, m.View())
	assert.Empty(t, m.Label())
}

func TestSteplights_Label(t *testing.T) {
	t.Parallel()

	m := steplights.New(&mockStepDial{value: 2, steps: 5})

	assert.Equal(t, "step 3/5", m.Label())
}
