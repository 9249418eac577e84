package orrery

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultHintDuration is the auto-hide delay for hints shown by interactions.
const DefaultHintDuration = 3.0

// Presenter is the UI collaborator. Calls are one-way notifications; a
// Presenter never calls back into the interaction core.
type Presenter interface {
	ShowDialogue(entry DialogueEntry, text string)
	UpdateDialogueText(text string, progress float64)
	HideDialogue()
	ShowChoices(choices []string)
	// ShowHint displays text; duration > 0 hides it automatically.
	ShowHint(text string, duration float64)
	HideHint()
	ShowPrompt(text string)
	HidePrompt()
}

// UIState is a Presenter that records what would be on screen. Front ends
// draw from it each frame. It also serves as a Navigator whose scene
// transitions are tweened over the requested duration.
type UIState struct {
	DialogueVisible bool
	Speaker         string
	SpeakerKind     SpeakerKind
	DialogueText    string
	Progress        float64
	Choices         []string

	HintVisible bool
	Hint        string

	PromptVisible bool
	Prompt        string

	// Level is the scene most recently navigated to.
	Level string

	timers    *Timers
	hintTimer TimerHandle

	pendingLevel string
	transition   *gween.Tween
	fade         float64

	onNavigated callbackList[string]
}

// NewUIState creates a UIState whose hint timeouts run on timers. A nil
// timers disables auto-hide.
func NewUIState(timers *Timers) *UIState {
	return &UIState{timers: timers}
}

func (u *UIState) ShowDialogue(entry DialogueEntry, text string) {
	u.DialogueVisible = true
	u.Speaker = entry.Speaker
	u.SpeakerKind = entry.SpeakerKind
	u.DialogueText = text
	u.Progress = 0
	u.Choices = nil
}

func (u *UIState) UpdateDialogueText(text string, progress float64) {
	u.DialogueText = text
	u.Progress = progress
}

func (u *UIState) HideDialogue() {
	u.DialogueVisible = false
	u.Choices = nil
}

func (u *UIState) ShowChoices(choices []string) {
	u.Choices = append(u.Choices[:0], choices...)
}

// ShowHint displays a hint. Showing a new hint re-arms the auto-hide timer so
// an earlier timeout cannot hide it early.
func (u *UIState) ShowHint(text string, duration float64) {
	u.Hint = text
	u.HintVisible = true
	if u.timers == nil {
		return
	}
	if duration > 0 {
		u.timers.Rearm(&u.hintTimer, duration, u.HideHint)
	} else {
		u.timers.Cancel(u.hintTimer)
		u.hintTimer = TimerHandle{}
	}
}

func (u *UIState) HideHint() {
	if u.timers != nil {
		u.timers.Cancel(u.hintTimer)
	}
	u.hintTimer = TimerHandle{}
	u.HintVisible = false
}

func (u *UIState) ShowPrompt(text string) {
	u.Prompt = text
	u.PromptVisible = true
}

func (u *UIState) HidePrompt() {
	u.PromptVisible = false
}

// HideAll clears every visible element.
func (u *UIState) HideAll() {
	u.HideDialogue()
	u.HideHint()
	u.HidePrompt()
}

// Navigate starts a scene transition. The level changes when the transition
// tween finishes; a non-positive duration switches immediately.
func (u *UIState) Navigate(level string, transition float64) {
	u.pendingLevel = level
	if transition <= 0 {
		u.finishTransition()
		return
	}
	u.transition = gween.New(0, 1, float32(transition), ease.InOutSine)
	u.fade = 0
}

// Transitioning reports whether a scene transition is in progress.
func (u *UIState) Transitioning() bool { return u.transition != nil }

// TransitionProgress returns the eased transition progress in [0, 1].
func (u *UIState) TransitionProgress() float64 { return u.fade }

// OnNavigated registers a callback fired with the level when a transition
// completes.
func (u *UIState) OnNavigated(fn func(level string)) CallbackHandle {
	return u.onNavigated.add(fn)
}

// Update advances the transition tween.
func (u *UIState) Update(dt float64) {
	if u.transition == nil {
		return
	}
	v, done := u.transition.Update(float32(dt))
	u.fade = float64(v)
	if done {
		u.finishTransition()
	}
}

func (u *UIState) finishTransition() {
	u.transition = nil
	u.fade = 1
	u.Level = u.pendingLevel
	logFor("ui").Info("navigated", "level", u.Level)
	u.onNavigated.emit(u.Level)
}
