package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alkime/steplever/pkg/vec3"
)

// Sample is one tracked-pointer observation.
type Sample struct {
	// At is the offset from the start of the trace, in nanoseconds on
	// the wire.
	At time.Duration `json:"at"`

	Pos vec3.Vector `json:"pos"`
}

// Trace is a recorded pointer path that can be replayed through a lever.
type Trace struct {
	Name    string   `json:"name,omitempty"`
	Samples []Sample `json:"samples"`
}

// LoadTrace reads a trace from a JSON file.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	var trace Trace
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}

	return &trace, nil
}

// Save writes the trace to a JSON file.
func (t *Trace) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}

	return nil
}
