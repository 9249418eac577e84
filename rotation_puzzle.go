package orrery

// RotationPuzzleConfig tunes a RotationPuzzle.
type RotationPuzzleConfig struct {
	TargetAngle float64 `json:"targetAngle"`
	Tolerance   float64 `json:"tolerance"` // degrees
	HoldTime    float64 `json:"holdTime"`  // seconds
}

// DefaultRotationPuzzleConfig returns target 0, tolerance 5 and hold 0.5.
func DefaultRotationPuzzleConfig() RotationPuzzleConfig {
	return RotationPuzzleConfig{Tolerance: 5, HoldTime: 0.5}
}

// RotationChange is delivered to OnRotationChanged subscribers.
type RotationChange struct {
	Current, Target float64
}

// RotationPuzzle completes once its angle has stayed within tolerance of the
// target for HoldTime seconds. Leaving tolerance resets the hold timer.
type RotationPuzzle struct {
	*Puzzle

	cfg       RotationPuzzleConfig
	current   float64
	hold      float64
	atCorrect bool

	linked *Interactable
	link   CallbackHandle

	onRotation callbackList[RotationChange]
	onCorrect  callbackList[float64]
}

// NewRotationPuzzle creates a rotation puzzle. opts apply to the underlying
// Puzzle.
func NewRotationPuzzle(pcfg PuzzleConfig, rcfg RotationPuzzleConfig, opts ...PuzzleOption) *RotationPuzzle {
	rp := &RotationPuzzle{cfg: rcfg}
	opts = append(opts, WithBehavior(rotationBehavior{rp}))
	rp.Puzzle = NewPuzzle(pcfg, opts...)
	logFor("puzzle").Info("rotation puzzle initialized", "puzzle", pcfg.Name,
		"target", rcfg.TargetAngle, "tolerance", rcfg.Tolerance)
	return rp
}

// Link drives the puzzle angle from an Interactable's rotation so that the
// rotate gesture turns the puzzle. Passing nil unlinks.
func (rp *RotationPuzzle) Link(it *Interactable) {
	rp.link.Remove()
	rp.link = CallbackHandle{}
	rp.linked = it
	if it == nil {
		return
	}
	rp.setCurrent(it.CurrentRotationAngle())
	rp.link = it.OnRotationChanged(rp.setCurrent)
}

// Rotation returns the current angle in [0, 360).
func (rp *RotationPuzzle) Rotation() float64 { return rp.current }

// TargetAngle returns the configured target.
func (rp *RotationPuzzle) TargetAngle() float64 { return rp.cfg.TargetAngle }

// SetRotation sets the angle. When linked, the Interactable is rotated and
// the puzzle follows it.
func (rp *RotationPuzzle) SetRotation(deg float64) {
	if rp.linked != nil {
		rp.linked.SetRotationAngle(deg)
		return
	}
	rp.setCurrent(deg)
}

// AddRotation adds delta degrees.
func (rp *RotationPuzzle) AddRotation(delta float64) {
	rp.SetRotation(rp.current + delta)
}

// AngleDifference returns the wrap-aware distance to the target.
func (rp *RotationPuzzle) AngleDifference() float64 {
	return AngleDifference(rp.current, rp.cfg.TargetAngle)
}

// AtCorrectAngle reports whether the angle was within tolerance on the last
// update.
func (rp *RotationPuzzle) AtCorrectAngle() bool { return rp.atCorrect }

// HoldTimer returns seconds held within tolerance.
func (rp *RotationPuzzle) HoldTimer() float64 { return rp.hold }

// OnRotationChanged registers a callback fired on every angle change.
func (rp *RotationPuzzle) OnRotationChanged(fn func(RotationChange)) CallbackHandle {
	return rp.onRotation.add(fn)
}

// OnCorrectAngleReached registers a callback fired each time the angle
// enters tolerance.
func (rp *RotationPuzzle) OnCorrectAngleReached(fn func(angle float64)) CallbackHandle {
	return rp.onCorrect.add(fn)
}

func (rp *RotationPuzzle) setCurrent(deg float64) {
	rp.current = NormalizeAngle(deg)
	rp.onRotation.emit(RotationChange{Current: rp.current, Target: rp.cfg.TargetAngle})
}

// rotationBehavior plugs the hold-timer logic into the embedded Puzzle.
type rotationBehavior struct {
	rp *RotationPuzzle
}

func (b rotationBehavior) Activated(p *Puzzle) {
	rp := b.rp
	logFor("puzzle").Debug("rotation puzzle tracking", "puzzle", p.Name(), "angle", rp.current)
}

// Reset leaves the angle where it is.
func (b rotationBehavior) Reset(*Puzzle) {
	b.rp.hold = 0
	b.rp.atCorrect = false
}

func (b rotationBehavior) Update(p *Puzzle, dt float64) {
	rp := b.rp
	diff := rp.AngleDifference()
	was := rp.atCorrect
	rp.atCorrect = diff <= rp.cfg.Tolerance
	if rp.atCorrect && !was {
		logFor("puzzle").Info("correct angle reached", "puzzle", p.Name(), "diff", diff)
		rp.onCorrect.emit(rp.current)
	}
	if !rp.atCorrect {
		rp.hold = 0
		return
	}
	rp.hold += dt
	if rp.hold >= rp.cfg.HoldTime {
		_ = p.Complete()
	}
}

// Progress is angular closeness, rising from 0.9 to 1 while the angle is
// held.
func (b rotationBehavior) Progress(p *Puzzle) float64 {
	rp := b.rp
	if p.IsCompleted() {
		return 1
	}
	if !p.IsActive() {
		return 0
	}
	prog := 1 - rp.AngleDifference()/180
	if rp.atCorrect && rp.cfg.HoldTime > 0 {
		prog = lerp(0.9, 1, rp.hold/rp.cfg.HoldTime)
	}
	return clamp(prog, 0, 1)
}
