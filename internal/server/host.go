package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/alkime/steplever/internal/lever"
	"github.com/alkime/steplever/pkg/channels"
	"github.com/alkime/steplever/pkg/vec3"
)

// State is the wire snapshot of one hosted lever.
type State struct {
	Name       string       `json:"name"`
	Step       int          `json:"step"`
	Angle      float64      `json:"angle"`
	Grabbed    bool         `json:"grabbed"`
	Holder     string       `json:"holder,omitempty"`
	Config     lever.Config `json:"config"`
	StepAngles []float64    `json:"step_angles"`
}

// Host owns one lever controller on behalf of the service. The controller
// is single-owner by contract, so every operation goes through the host
// mutex; concurrent HTTP handlers serialize here.
//
// The host also derives the observable side channel: any operation that
// changes the discrete value is recorded in the transition log and
// published to stream subscribers.
type Host struct {
	name    string
	mu      sync.Mutex
	ctrl    *lever.Controller
	history *lever.TransitionLog
	events  *channels.Broadcaster[lever.Transition]
}

// NewHost wraps a freshly configured lever.
func NewHost(name string, cfg lever.Config, historySize int) (*Host, error) {
	ctrl, err := lever.New(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lever %q: %w", name, err)
	}

	return &Host{
		name:    name,
		ctrl:    ctrl,
		history: lever.NewTransitionLog(historySize),
		events:  channels.NewBroadcaster[lever.Transition](),
	}, nil
}

// Name returns the lever's registry name.
func (h *Host) Name() string {
	return h.name
}

// State returns a snapshot of the lever.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.stateLocked()
}

func (h *Host) stateLocked() State {
	st := State{
		Name:       h.name,
		Step:       h.ctrl.Value(),
		Angle:      h.ctrl.Angle(),
		Grabbed:    h.ctrl.Grabbed(),
		Config:     h.ctrl.Config(),
		StepAngles: h.ctrl.StepAngles(),
	}
	if holder := h.ctrl.Grabber(); holder != nil {
		st.Holder = holder.InteractorID()
	}
	return st
}

// mutate runs fn on the controller under the host lock and records the
// transition if the discrete value changed.
func (h *Host) mutate(fn func(ctrl *lever.Controller)) State {
	h.mu.Lock()
	defer h.mu.Unlock()

	before := h.ctrl.Value()
	fn(h.ctrl)
	after := h.ctrl.Value()

	if after != before {
		tr := lever.Transition{
			From:    before,
			To:      after,
			At:      time.Now(),
			Grabbed: h.ctrl.Grabbed(),
		}
		h.history.Record(tr)
		h.events.Publish(tr)
	}

	return h.stateLocked()
}

// Grab puts the lever under actor's control.
func (h *Host) Grab(actor lever.Interactor) (State, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.ctrl.Grab(actor) {
		return h.stateLocked(), ErrAlreadyHeld
	}
	return h.stateLocked(), nil
}

// Release lets go of the lever. Releasing an idle lever is a no-op.
func (h *Host) Release() State {
	return h.mutate(func(ctrl *lever.Controller) {
		ctrl.Release()
	})
}

// Track feeds one pointer position tick.
func (h *Host) Track(pointer vec3.Vector) State {
	return h.mutate(func(ctrl *lever.Controller) {
		ctrl.Track(pointer)
	})
}

// SetValue writes the detent directly.
func (h *Host) SetValue(step int) State {
	return h.mutate(func(ctrl *lever.Controller) {
		ctrl.SetValue(step)
	})
}

// Configure swaps the lever configuration. On error the previous
// configuration stays in effect.
func (h *Host) Configure(cfg lever.Config) (State, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	before := h.ctrl.Value()
	if err := h.ctrl.Reconfigure(cfg); err != nil {
		return h.stateLocked(), err
	}

	if after := h.ctrl.Value(); after != before {
		tr := lever.Transition{
			From:    before,
			To:      after,
			At:      time.Now(),
			Grabbed: h.ctrl.Grabbed(),
		}
		h.history.Record(tr)
		h.events.Publish(tr)
	}

	return h.stateLocked(), nil
}

// Config returns the active lever configuration.
func (h *Host) Config() lever.Config {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.ctrl.Config()
}

// Events returns up to n most recent transitions, oldest first.
func (h *Host) Events(n int) []lever.Transition {
	return h.history.Recent(n)
}

// SubscribeEvents attaches ch to the live transition stream and returns
// the subscription id for UnsubscribeEvents.
func (h *Host) SubscribeEvents(ch chan<- lever.Transition) (int, error) {
	return h.events.Subscribe(ch)
}

// UnsubscribeEvents detaches a stream subscription.
func (h *Host) UnsubscribeEvents(id int) {
	h.events.Unsubscribe(id)
}

// StreamSubscribers returns the number of attached stream subscriptions.
func (h *Host) StreamSubscribers() int {
	return h.events.Len()
}
