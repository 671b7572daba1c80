package sim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alkime/steplever/internal/lever"
)

// Report summarizes one replayed trace.
type Report struct {
	Samples     int
	Transitions []lever.Transition
	FinalStep   int
	FinalAngle  float64
}

// Runner replays pointer traces through a controller, acting as the
// lever's per-tick scheduler. Replays are deterministic: samples are fed
// in order with no sleeping, and sample timestamps only label the
// resulting transitions.
type Runner struct {
	ctrl *lever.Controller
	log  *slog.Logger
}

// NewRunner wraps a controller for replay. A nil logger uses the default.
func NewRunner(ctrl *lever.Controller, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{ctrl: ctrl, log: log}
}

// Replay grabs the lever as actor, feeds every sample through one
// tracking tick, then releases. It fails if the lever is already held.
func (r *Runner) Replay(trace *Trace, actor lever.Interactor) (*Report, error) {
	if trace == nil {
		return nil, fmt.Errorf("no trace to replay")
	}

	if !r.ctrl.Grab(actor) {
		return nil, fmt.Errorf("failed to grab lever: already held")
	}

	start := time.Now()
	report := &Report{Samples: len(trace.Samples)}

	for _, sample := range trace.Samples {
		before := r.ctrl.Value()
		r.ctrl.Track(sample.Pos)

		if after := r.ctrl.Value(); after != before {
			tr := lever.Transition{
				From:    before,
				To:      after,
				At:      start.Add(sample.At),
				Grabbed: true,
			}
			report.Transitions = append(report.Transitions, tr)
			r.log.Debug("step transition",
				"from", tr.From,
				"to", tr.To,
				"angle", r.ctrl.Angle(),
			)
		}
	}

	r.ctrl.Release()
	report.FinalStep = r.ctrl.Value()
	report.FinalAngle = r.ctrl.Angle()

	r.log.Info("replay finished",
		"trace", trace.Name,
		"samples", report.Samples,
		"transitions", len(report.Transitions),
		"final_step", report.FinalStep,
		"final_angle", report.FinalAngle,
	)

	return report, nil
}
