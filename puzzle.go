package orrery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
)

// PuzzleState is the puzzle lifecycle state.
type PuzzleState uint8

const (
	PuzzleInactive PuzzleState = iota
	PuzzleActive
	PuzzleSolving
	PuzzleCompleted
	PuzzleFailed
)

var puzzleStateNames = [...]string{"inactive", "active", "solving", "completed", "failed"}

func (s PuzzleState) String() string {
	if int(s) < len(puzzleStateNames) {
		return puzzleStateNames[s]
	}
	return "unknown"
}

func parsePuzzleState(name string) PuzzleState {
	for i, n := range puzzleStateNames {
		if n == name {
			return PuzzleState(i)
		}
	}
	return PuzzleInactive
}

// Lifecycle events. Reset is not an event: it may return to inactive from
// any state, so it sets the state directly.
const (
	evActivate = "activate"
	evSolve    = "solve"
	evComplete = "complete"
	evFail     = "fail"
)

func newPuzzleFSM(onEnter func(from, to string)) *fsm.FSM {
	s := func(states ...PuzzleState) []string {
		out := make([]string, len(states))
		for i, st := range states {
			out[i] = st.String()
		}
		return out
	}
	return fsm.NewFSM(
		PuzzleInactive.String(),
		fsm.Events{
			{Name: evActivate, Src: s(PuzzleInactive), Dst: PuzzleActive.String()},
			{Name: evSolve, Src: s(PuzzleActive), Dst: PuzzleSolving.String()},
			{Name: evComplete, Src: s(PuzzleInactive, PuzzleActive, PuzzleSolving, PuzzleFailed), Dst: PuzzleCompleted.String()},
			{Name: evFail, Src: s(PuzzleInactive, PuzzleActive, PuzzleSolving), Dst: PuzzleFailed.String()},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				onEnter(e.Src, e.Dst)
			},
		},
	)
}

// Clock supplies the current time in seconds. World and Timers satisfy it.
type Clock interface {
	Now() float64
}

// PuzzleBehavior customizes a Puzzle. Variants such as RotationPuzzle
// implement it instead of overriding lifecycle methods.
type PuzzleBehavior interface {
	Activated(p *Puzzle)
	Reset(p *Puzzle)
	// Update runs each tick while the puzzle is active or solving.
	Update(p *Puzzle, dt float64)
	Progress(p *Puzzle) float64
}

// PuzzleConfig describes a puzzle.
type PuzzleConfig struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Hints       []string `json:"hints,omitempty"`
	// HintsDisabled hides Hints from ShowNextHint and CurrentHint.
	HintsDisabled  bool  `json:"hintsDisabled,omitempty"`
	AllowReset     bool  `json:"allowReset"`
	AutoActivate   bool  `json:"autoActivate"`
	Reward         *Item `json:"reward,omitempty"`
	RewardQuantity int   `json:"rewardQuantity,omitempty"`
}

// PuzzleOption configures a Puzzle at construction.
type PuzzleOption func(*Puzzle)

// WithClock timestamps activation and completion from c. Without it the
// puzzle keeps its own clock advanced by Update.
func WithClock(c Clock) PuzzleOption { return func(p *Puzzle) { p.clock = c } }

// WithRewards sets the reward collaborator.
func WithRewards(r RewardGranter) PuzzleOption { return func(p *Puzzle) { p.rewards = r } }

// WithBehavior installs a variant strategy.
func WithBehavior(b PuzzleBehavior) PuzzleOption { return func(p *Puzzle) { p.behavior = b } }

// WithPresenter shows hints through ui.
func WithPresenter(ui Presenter) PuzzleOption { return func(p *Puzzle) { p.ui = ui } }

// Puzzle is the activation/completion/reset lifecycle shared by every puzzle
// variant. Completed is terminal until Reset.
type Puzzle struct {
	cfg      PuzzleConfig
	machine  *fsm.FSM
	clock    Clock
	ownClock float64
	rewards  RewardGranter
	behavior PuzzleBehavior
	ui       Presenter

	hint           int
	startTime      float64
	completionTime float64
	attempt        uuid.UUID

	parts []*PuzzlePart

	onActivated callbackList[*Puzzle]
	onCompleted callbackList[*Puzzle]
	onFailed    callbackList[*Puzzle]
	onReset     callbackList[*Puzzle]
	onHint      callbackList[string]
}

// NewPuzzle creates an inactive puzzle, activating it immediately when
// cfg.AutoActivate is set.
func NewPuzzle(cfg PuzzleConfig, opts ...PuzzleOption) *Puzzle {
	if cfg.RewardQuantity <= 0 {
		cfg.RewardQuantity = 1
	}
	p := &Puzzle{cfg: cfg}
	p.machine = newPuzzleFSM(func(from, to string) {
		logFor("puzzle").Debug("puzzle transition", "puzzle", p.cfg.Name, "from", from, "to", to)
	})
	for _, o := range opts {
		o(p)
	}
	logFor("puzzle").Info("puzzle initialized", "puzzle", cfg.Name)
	if cfg.AutoActivate {
		_ = p.Activate()
	}
	return p
}

// ID returns the configured id.
func (p *Puzzle) ID() string { return p.cfg.ID }

// Name returns the configured name.
func (p *Puzzle) Name() string { return p.cfg.Name }

// Config returns the configuration.
func (p *Puzzle) Config() PuzzleConfig { return p.cfg }

// State returns the lifecycle state.
func (p *Puzzle) State() PuzzleState { return parsePuzzleState(p.machine.Current()) }

// IsActive reports whether the puzzle is active or solving.
func (p *Puzzle) IsActive() bool {
	s := p.State()
	return s == PuzzleActive || s == PuzzleSolving
}

// IsCompleted reports whether the puzzle is completed.
func (p *Puzzle) IsCompleted() bool { return p.State() == PuzzleCompleted }

// StartTime returns the activation time.
func (p *Puzzle) StartTime() float64 { return p.startTime }

// CompletionTime returns the seconds from activation to completion.
func (p *Puzzle) CompletionTime() float64 { return p.completionTime }

// AttemptID identifies the current activation. It is the nil UUID before the
// first activation and after Reset.
func (p *Puzzle) AttemptID() uuid.UUID { return p.attempt }

func (p *Puzzle) now() float64 {
	if p.clock != nil {
		return p.clock.Now()
	}
	return p.ownClock
}

// Activate moves Inactive to Active. Any other state is rejected.
func (p *Puzzle) Activate() error {
	if err := p.machine.Event(context.Background(), evActivate); err != nil {
		err = p.rejected(evActivate, err)
		logFor("puzzle").Warn("activate rejected", "puzzle", p.cfg.Name, "state", p.State().String())
		return err
	}
	p.startTime = p.now()
	p.attempt = uuid.New()
	logFor("puzzle").Info("puzzle activated", "puzzle", p.cfg.Name, "attempt", p.attempt)
	if p.behavior != nil {
		p.behavior.Activated(p)
	}
	p.onActivated.emit(p)
	return nil
}

// BeginSolving moves Active to Solving for variants that use the sub-state.
func (p *Puzzle) BeginSolving() error {
	if err := p.machine.Event(context.Background(), evSolve); err != nil {
		return p.rejected(evSolve, err)
	}
	return nil
}

// Complete finishes the puzzle, records the completion time, grants the
// reward and notifies. Rejected only when already completed.
func (p *Puzzle) Complete() error {
	if err := p.machine.Event(context.Background(), evComplete); err != nil {
		err = p.rejected(evComplete, err)
		logFor("puzzle").Warn("complete rejected", "puzzle", p.cfg.Name, "state", p.State().String())
		return err
	}
	p.completionTime = p.now() - p.startTime
	p.grantReward()
	logFor("puzzle").Info("puzzle completed", "puzzle", p.cfg.Name, "attempt", p.attempt, "seconds", p.completionTime)
	p.onCompleted.emit(p)
	return nil
}

// Fail marks the puzzle failed. Rejected once completed. Failing an already
// failed puzzle reports the failure again without a transition.
func (p *Puzzle) Fail() error {
	if p.State() == PuzzleFailed {
		logFor("puzzle").Info("puzzle failed again", "puzzle", p.cfg.Name, "attempt", p.attempt)
		p.onFailed.emit(p)
		return nil
	}
	if err := p.machine.Event(context.Background(), evFail); err != nil {
		err = p.rejected(evFail, err)
		logFor("puzzle").Warn("fail rejected", "puzzle", p.cfg.Name, "state", p.State().String())
		return err
	}
	logFor("puzzle").Info("puzzle failed", "puzzle", p.cfg.Name, "attempt", p.attempt)
	p.onFailed.emit(p)
	return nil
}

// Reset returns to Inactive with the hint cursor and timestamps zeroed. Only
// permitted when AllowReset is set.
func (p *Puzzle) Reset() error {
	if !p.cfg.AllowReset {
		logFor("puzzle").Warn("reset rejected: not allowed", "puzzle", p.cfg.Name)
		return ErrResetNotAllowed
	}
	p.machine.SetState(PuzzleInactive.String())
	p.hint = 0
	p.startTime = 0
	p.completionTime = 0
	p.attempt = uuid.Nil
	for _, part := range p.parts {
		part.Reset()
	}
	if p.behavior != nil {
		p.behavior.Reset(p)
	}
	logFor("puzzle").Info("puzzle reset", "puzzle", p.cfg.Name)
	p.onReset.emit(p)
	return nil
}

func (p *Puzzle) rejected(event string, err error) error {
	switch {
	case p.State() == PuzzleCompleted:
		return fmt.Errorf("%s %q: %w", event, p.cfg.Name, ErrAlreadyCompleted)
	case event == evActivate:
		return fmt.Errorf("%s %q: %w (state %s)", event, p.cfg.Name, ErrAlreadyActive, p.State())
	default:
		return fmt.Errorf("%s %q from %s: %w: %v", event, p.cfg.Name, p.State(), ErrInvalidTransition, err)
	}
}

func (p *Puzzle) grantReward() {
	if p.cfg.Reward == nil {
		return
	}
	if p.rewards == nil {
		logFor("puzzle").Warn("reward configured without granter", "puzzle", p.cfg.Name, "item", p.cfg.Reward.ID)
		return
	}
	if p.rewards.Grant(*p.cfg.Reward, p.cfg.RewardQuantity) {
		logFor("puzzle").Info("reward granted", "puzzle", p.cfg.Name, "item", p.cfg.Reward.ID)
	} else {
		logFor("puzzle").Warn("reward not granted", "puzzle", p.cfg.Name, "item", p.cfg.Reward.ID)
	}
}

func (p *Puzzle) hintsEnabled() bool {
	return !p.cfg.HintsDisabled && len(p.cfg.Hints) > 0
}

// ShowNextHint returns the next hint and advances the cursor by one. Past the
// end it returns "" without advancing.
func (p *Puzzle) ShowNextHint() string {
	if !p.hintsEnabled() {
		logFor("puzzle").Warn("puzzle has no hints", "puzzle", p.cfg.Name)
		return ""
	}
	if p.hint >= len(p.cfg.Hints) {
		logFor("puzzle").Warn("no more hints", "puzzle", p.cfg.Name)
		return ""
	}
	h := p.cfg.Hints[p.hint]
	p.hint++
	logFor("puzzle").Info("hint shown", "puzzle", p.cfg.Name, "hint", p.hint, "of", len(p.cfg.Hints))
	if p.ui != nil {
		p.ui.ShowHint(h, DefaultHintDuration)
	}
	p.onHint.emit(h)
	return h
}

// CurrentHint returns the most recently shown hint, or "".
func (p *Puzzle) CurrentHint() string {
	if !p.hintsEnabled() || p.hint == 0 {
		return ""
	}
	return p.cfg.Hints[min(p.hint-1, len(p.cfg.Hints)-1)]
}

// HintIndex returns how many hints have been shown.
func (p *Puzzle) HintIndex() int { return p.hint }

// HasMoreHints reports whether ShowNextHint would return a hint.
func (p *Puzzle) HasMoreHints() bool {
	return p.hintsEnabled() && p.hint < len(p.cfg.Hints)
}

// Progress returns completion progress in [0, 1]. Without a behavior it is
// 0 inactive, 0.5 active or solving, 1 completed and 0 failed.
func (p *Puzzle) Progress() float64 {
	if p.behavior != nil {
		return p.behavior.Progress(p)
	}
	return StateProgress(p.State())
}

// StateProgress is the state-only progress used by plain puzzles.
func StateProgress(s PuzzleState) float64 {
	switch s {
	case PuzzleActive, PuzzleSolving:
		return 0.5
	case PuzzleCompleted:
		return 1
	default:
		return 0
	}
}

// Update advances the puzzle's own clock and runs the behavior while active.
func (p *Puzzle) Update(dt float64) {
	p.ownClock += dt
	if p.behavior != nil && p.IsActive() {
		p.behavior.Update(p, dt)
	}
}

// OnActivated registers a callback fired after activation.
func (p *Puzzle) OnActivated(fn func(*Puzzle)) CallbackHandle { return p.onActivated.add(fn) }

// OnCompleted registers a callback fired after completion.
func (p *Puzzle) OnCompleted(fn func(*Puzzle)) CallbackHandle { return p.onCompleted.add(fn) }

// OnFailed registers a callback fired after failure.
func (p *Puzzle) OnFailed(fn func(*Puzzle)) CallbackHandle { return p.onFailed.add(fn) }

// OnReset registers a callback fired after reset.
func (p *Puzzle) OnReset(fn func(*Puzzle)) CallbackHandle { return p.onReset.add(fn) }

// OnHintShown registers a callback fired with each hint shown.
func (p *Puzzle) OnHintShown(fn func(string)) CallbackHandle { return p.onHint.add(fn) }
