package orrery

import "fmt"

// PuzzlePart is one piece of a composite puzzle. When every required part is
// complete the parent puzzle completes; a puzzle with no required parts never
// completes this way.
type PuzzlePart struct {
	ID       string
	Required bool

	completed bool
	puzzle    *Puzzle

	onActivated callbackList[*PuzzlePart]
	onCompleted callbackList[*PuzzlePart]
	onReset     callbackList[*PuzzlePart]
}

// AddPart attaches a new part to the puzzle.
func (p *Puzzle) AddPart(id string, required bool) *PuzzlePart {
	part := &PuzzlePart{ID: id, Required: required, puzzle: p}
	p.parts = append(p.parts, part)
	logFor("puzzle").Debug("part linked", "puzzle", p.cfg.Name, "part", id)
	return part
}

// Parts returns the attached parts. The returned slice MUST NOT be mutated.
func (p *Puzzle) Parts() []*PuzzlePart { return p.parts }

// Puzzle returns the parent puzzle.
func (c *PuzzlePart) Puzzle() *Puzzle { return c.puzzle }

// Completed reports whether the part is complete.
func (c *PuzzlePart) Completed() bool { return c.completed }

// Activate notifies subscribers. Rejected once the part is complete.
func (c *PuzzlePart) Activate() error {
	if c.completed {
		logFor("puzzle").Warn("part already completed", "part", c.ID)
		return fmt.Errorf("part %q: %w", c.ID, ErrAlreadyCompleted)
	}
	logFor("puzzle").Info("part activated", "part", c.ID)
	c.onActivated.emit(c)
	return nil
}

// Complete marks the part complete and checks the parent puzzle.
func (c *PuzzlePart) Complete() error {
	if c.completed {
		logFor("puzzle").Warn("part already completed", "part", c.ID)
		return fmt.Errorf("part %q: %w", c.ID, ErrAlreadyCompleted)
	}
	c.completed = true
	logFor("puzzle").Info("part completed", "part", c.ID)
	c.onCompleted.emit(c)
	if c.puzzle != nil {
		c.puzzle.checkParts()
	}
	return nil
}

// Reset clears completion.
func (c *PuzzlePart) Reset() {
	c.completed = false
	logFor("puzzle").Debug("part reset", "part", c.ID)
	c.onReset.emit(c)
}

// OnActivated registers a callback fired when the part is activated.
func (c *PuzzlePart) OnActivated(fn func(*PuzzlePart)) CallbackHandle {
	return c.onActivated.add(fn)
}

// OnCompleted registers a callback fired when the part completes.
func (c *PuzzlePart) OnCompleted(fn func(*PuzzlePart)) CallbackHandle {
	return c.onCompleted.add(fn)
}

// OnReset registers a callback fired when the part is reset.
func (c *PuzzlePart) OnReset(fn func(*PuzzlePart)) CallbackHandle {
	return c.onReset.add(fn)
}

// RequiredProgress returns completed and total counts of required parts.
func (p *Puzzle) RequiredProgress() (completed, required int) {
	for _, part := range p.parts {
		if !part.Required {
			continue
		}
		required++
		if part.completed {
			completed++
		}
	}
	return completed, required
}

func (p *Puzzle) checkParts() {
	if p.IsCompleted() {
		return
	}
	done, required := p.RequiredProgress()
	logFor("puzzle").Info("completion check", "puzzle", p.cfg.Name, "completed", done, "required", required)
	if required > 0 && done == required {
		_ = p.Complete()
	}
}
