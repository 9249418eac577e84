package orrery

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// scriptStep is one entry of a gesture script. Coordinates are screen pixels.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// stepActions runs a step against the injector and returns how many extra
// frames to idle before the next step.
var stepActions = map[string]func(r *TestRunner, st scriptStep, in *Injector) int{
	"tap":   injectTap,
	"click": injectTap,
	"hover": func(_ *TestRunner, st scriptStep, in *Injector) int {
		in.InjectHover(st.X, st.Y)
		return 0
	},
	"hold": func(_ *TestRunner, st scriptStep, in *Injector) int {
		in.InjectHold(st.X, st.Y, st.Frames)
		return 0
	},
	"drag":  injectDrag,
	"swipe": injectDrag,
	"wait": func(_ *TestRunner, st scriptStep, _ *Injector) int {
		// The frame that reads the step is the first waited frame.
		return max(st.Frames-1, 0)
	},
	"mark": func(r *TestRunner, st scriptStep, _ *Injector) int {
		logFor("testrunner").Debug("mark", "label", st.Label, "step", r.next)
		r.onMark.emit(st.Label)
		return 0
	},
}

func injectTap(_ *TestRunner, st scriptStep, in *Injector) int {
	in.InjectTap(st.X, st.Y)
	return 0
}

func injectDrag(_ *TestRunner, st scriptStep, in *Injector) int {
	in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	return 0
}

// TestRunner plays a gesture script through an Injector, one step per frame
// once the injector's queue has drained. Attach it with SetTestRunner.
type TestRunner struct {
	steps  []scriptStep
	next   int
	idle   int
	done   bool
	onMark callbackList[string]
}

// LoadTestScript decodes a JSON gesture script of the form
// {"steps": [{"action": "tap", "x": 10, "y": 20}, ...]}.
//
// Actions: tap or click (x, y), hover (x, y), hold (x, y, frames), drag or
// swipe (fromX, fromY, toX, toY, frames), wait (frames) and mark (label).
// Unknown actions, unknown keys and negative frame counts are rejected.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if _, ok := stepActions[st.Action]; !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Frames < 0 {
			return nil, fmt.Errorf("parse test script: step %d: negative frames %d", i, st.Frames)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether every step has run and its input has been consumed.
func (r *TestRunner) Done() bool { return r.done }

// OnMark registers a callback fired when a mark step runs.
func (r *TestRunner) OnMark(fn func(label string)) CallbackHandle {
	return r.onMark.add(fn)
}

// step is called by Injector.Advance before it pops the frame's event.
func (r *TestRunner) step(in *Injector) {
	switch {
	case r.done, in.Pending() > 0:
		return
	case r.idle > 0:
		r.idle--
		return
	case r.next == len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	r.idle = stepActions[st.Action](r, st, in)
	r.done = r.next == len(r.steps) && r.idle == 0 && in.Pending() == 0
}
