package orrery

import "errors"

// Rejected transitions and lookups. Every operation returning one of these
// leaves the state it guards unchanged.
var (
	ErrAlreadyActive       = errors.New("orrery: puzzle already active")
	ErrAlreadyCompleted    = errors.New("orrery: puzzle already completed")
	ErrResetNotAllowed     = errors.New("orrery: puzzle reset not allowed")
	ErrSkipNotAllowed      = errors.New("orrery: dialogue skip not allowed")
	ErrNotPlaying          = errors.New("orrery: dialogue not playing")
	ErrUnknownDialogue     = errors.New("orrery: unknown dialogue")
	ErrInvalidChoice       = errors.New("orrery: invalid choice index")
	ErrNotWaitingForChoice = errors.New("orrery: dialogue not waiting for a choice")
	ErrNoDialogueSource    = errors.New("orrery: no dialogue source")
	ErrInvalidConfig       = errors.New("orrery: invalid config")
	ErrInvalidIndex        = errors.New("orrery: invalid index")
	ErrInvalidTransition   = errors.New("orrery: invalid puzzle transition")
)
