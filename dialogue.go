package orrery

import (
	"fmt"
	"math"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// DialogueState is the playback state.
type DialogueState uint8

const (
	DialogueIdle DialogueState = iota
	DialoguePlaying
	DialogueWaitingForInput
	DialogueCompleted
)

var dialogueStateNames = [...]string{"idle", "playing", "waiting_for_input", "completed"}

func (s DialogueState) String() string {
	if int(s) < len(dialogueStateNames) {
		return dialogueStateNames[s]
	}
	return "unknown"
}

// DialogueConfig tunes playback.
type DialogueConfig struct {
	// TextDisplaySpeed is the reveal rate in characters per second. Zero
	// reveals the full text on the first tick.
	TextDisplaySpeed float64
	// Interval is the pause before an auto-chained entry plays.
	Interval     float64
	AutoPlayNext bool
	AllowSkip    bool
	Language     language.Tag
}

// DefaultDialogueConfig returns the stock playback tuning.
func DefaultDialogueConfig() DialogueConfig {
	return DefaultConfig().DialogueConfig()
}

// DialogueText is delivered to OnTextChanged subscribers.
type DialogueText struct {
	Text     string
	Progress float64
}

// ChoiceSelection is delivered to OnChoiceSelected subscribers.
type ChoiceSelection struct {
	Index  int
	Text   string
	Target string
}

// DialoguePlayer is the timed text-reveal and sequencing state machine.
//
//	Idle -> Playing -> WaitingForInput | Idle (interval) | Completed
type DialoguePlayer struct {
	cfg    DialogueConfig
	source DialogueSource
	ui     Presenter
	audio  AudioPlayer

	timers    *Timers
	ownTimers bool

	state    DialogueState
	current  DialogueEntry
	fullText string
	runes    int
	progress float64
	elapsed  float64
	choices  []string

	interval   TimerHandle
	inInterval bool

	onStarted   callbackList[DialogueEntry]
	onText      callbackList[DialogueText]
	onCompleted callbackList[DialogueEntry]
	onWaiting   callbackList[[]string]
	onChoice    callbackList[ChoiceSelection]
	onStopped   callbackList[DialogueEntry]
}

// NewDialoguePlayer creates an idle player reading from source. The
// inter-dialogue interval runs on a private timer service advanced by Update
// until SetTimers supplies a shared one.
func NewDialoguePlayer(source DialogueSource, cfg DialogueConfig) *DialoguePlayer {
	return &DialoguePlayer{
		cfg:       cfg,
		source:    source,
		timers:    NewTimers(),
		ownTimers: true,
	}
}

// SetSource replaces the dialogue data collaborator.
func (p *DialoguePlayer) SetSource(s DialogueSource) { p.source = s }

// SetPresenter sets the UI collaborator. nil disables UI calls.
func (p *DialoguePlayer) SetPresenter(ui Presenter) { p.ui = ui }

// SetAudio sets the audio collaborator. nil disables voice playback.
func (p *DialoguePlayer) SetAudio(a AudioPlayer) { p.audio = a }

// SetTimers schedules the interval on a shared timer service, which the
// caller advances. Passing nil restores a private one.
func (p *DialoguePlayer) SetTimers(t *Timers) {
	p.timers.Cancel(p.interval)
	p.inInterval = false
	if t == nil {
		p.timers, p.ownTimers = NewTimers(), true
		return
	}
	p.timers, p.ownTimers = t, false
}

// SetLanguage changes the display language for subsequent entries.
func (p *DialoguePlayer) SetLanguage(tag language.Tag) { p.cfg.Language = tag }

// Config returns the playback tuning.
func (p *DialoguePlayer) Config() DialogueConfig { return p.cfg }

// State returns the playback state.
func (p *DialoguePlayer) State() DialogueState { return p.state }

// Current returns the loaded entry. ok is false when nothing has played.
func (p *DialoguePlayer) Current() (entry DialogueEntry, ok bool) {
	return p.current, p.current.ID != ""
}

// Progress returns the text reveal progress in [0, 1].
func (p *DialoguePlayer) Progress() float64 { return p.progress }

// Elapsed returns seconds since the current entry started.
func (p *DialoguePlayer) Elapsed() float64 { return p.elapsed }

// InInterval reports whether an auto-chained entry is pending.
func (p *DialoguePlayer) InInterval() bool { return p.inInterval }

// Choices returns the options offered while WaitingForInput.
func (p *DialoguePlayer) Choices() []string { return p.choices }

// IsPlaying reports whether an entry is revealing.
func (p *DialoguePlayer) IsPlaying() bool { return p.state == DialoguePlaying }

// PlayDialogue looks up id and starts it, stopping whatever was playing.
func (p *DialoguePlayer) PlayDialogue(id string) error {
	if p.source == nil {
		logFor("dialogue").Error("no dialogue source")
		return ErrNoDialogueSource
	}
	e, ok := p.source.LookupByID(id)
	if !ok {
		return fmt.Errorf("%w: id %q", ErrUnknownDialogue, id)
	}
	p.play(e)
	return nil
}

// PlayDialogueByTrigger looks up the first entry for event and starts it.
func (p *DialoguePlayer) PlayDialogueByTrigger(event string) error {
	if p.source == nil {
		logFor("dialogue").Error("no dialogue source")
		return ErrNoDialogueSource
	}
	e, ok := p.source.LookupByTrigger(event)
	if !ok {
		return fmt.Errorf("%w: trigger %q", ErrUnknownDialogue, event)
	}
	p.play(e)
	return nil
}

func (p *DialoguePlayer) play(e DialogueEntry) {
	p.Stop()

	p.current = e
	p.fullText = p.source.DisplayText(e, p.cfg.Language)
	p.runes = utf8.RuneCountInString(p.fullText)
	p.state = DialoguePlaying
	p.progress = 0
	p.elapsed = 0
	p.choices = nil

	if p.audio != nil && e.AudioPath != "" {
		p.audio.PlayVoice(e.AudioPath)
	}
	if p.ui != nil {
		p.ui.ShowDialogue(e, "")
	}
	p.onStarted.emit(e)
	logFor("dialogue").Info("dialogue started", "id", e.ID, "speaker", e.Speaker)
}

// Stop returns to Idle, cancelling any pending auto-chain. No-op when already
// idle with nothing pending.
func (p *DialoguePlayer) Stop() {
	pending := p.inInterval
	p.cancelInterval()
	if p.state == DialogueIdle && !pending {
		return
	}
	wasActive := p.state == DialoguePlaying || p.state == DialogueWaitingForInput
	p.state = DialogueIdle
	p.progress = 0
	p.elapsed = 0
	p.choices = nil
	p.stopAudio()
	if p.ui != nil {
		p.ui.HideDialogue()
	}
	if wasActive {
		p.onStopped.emit(p.current)
	}
	logFor("dialogue").Info("dialogue stopped", "id", p.current.ID)
}

// Skip reveals the full text, jumps the timer to the entry duration and
// completes synchronously.
func (p *DialoguePlayer) Skip() error {
	if !p.cfg.AllowSkip {
		logFor("dialogue").Warn("skip rejected: not allowed")
		return ErrSkipNotAllowed
	}
	if p.state != DialoguePlaying {
		logFor("dialogue").Warn("skip rejected: not playing", "state", p.state.String())
		return ErrNotPlaying
	}
	p.progress = 1
	p.elapsed = p.current.Duration
	p.emitText()
	logFor("dialogue").Info("dialogue skipped", "id", p.current.ID)
	p.complete()
	return nil
}

// SelectChoice picks option index while WaitingForInput. A choice with a
// target plays that entry; otherwise the dialogue completes. A target missing
// from the source is rejected and the player keeps waiting.
func (p *DialoguePlayer) SelectChoice(index int) error {
	if p.state != DialogueWaitingForInput {
		logFor("dialogue").Warn("choice rejected: not waiting", "state", p.state.String())
		return ErrNotWaitingForChoice
	}
	if index < 0 || index >= len(p.choices) {
		logFor("dialogue").Warn("choice rejected: index out of range", "index", index, "count", len(p.choices))
		return fmt.Errorf("%w: %d of %d", ErrInvalidChoice, index, len(p.choices))
	}
	sel := ChoiceSelection{Index: index, Text: p.choices[index], Target: p.current.ChoiceTarget(index)}

	var next DialogueEntry
	if sel.Target != "" {
		if p.source == nil {
			logFor("dialogue").Error("no dialogue source")
			return ErrNoDialogueSource
		}
		e, ok := p.source.LookupByID(sel.Target)
		if !ok {
			logFor("dialogue").Warn("choice rejected: unknown target", "index", index, "target", sel.Target)
			return fmt.Errorf("%w: choice target %q", ErrUnknownDialogue, sel.Target)
		}
		next = e
	}

	logFor("dialogue").Info("choice selected", "index", index, "choice", sel.Text, "target", sel.Target)
	p.onChoice.emit(sel)

	if sel.Target != "" {
		// Branching is not an interruption.
		p.state = DialogueIdle
		p.choices = nil
		p.play(next)
		return nil
	}
	p.finish()
	return nil
}

// CurrentDisplayText returns the revealed prefix of the current text.
func (p *DialoguePlayer) CurrentDisplayText() string {
	if p.progress >= 1 {
		return p.fullText
	}
	n := int(math.Floor(float64(p.runes) * p.progress))
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range p.fullText {
		if i == n {
			return p.fullText[:pos]
		}
		i++
	}
	return p.fullText
}

// Update advances reveal and timing by dt seconds.
func (p *DialoguePlayer) Update(dt float64) {
	if p.ownTimers {
		p.timers.Update(dt)
	}
	if p.state == DialoguePlaying {
		p.reveal(dt)
		p.elapsed += dt
		if p.elapsed >= p.current.Duration && p.progress >= 1 {
			p.complete()
		}
	}
}

func (p *DialoguePlayer) reveal(dt float64) {
	switch {
	case p.cfg.TextDisplaySpeed <= 0 || p.runes == 0:
		p.progress = 1
	default:
		p.progress = clamp(p.progress+(p.cfg.TextDisplaySpeed/float64(p.runes))*dt, 0, 1)
	}
	p.emitText()
}

func (p *DialoguePlayer) emitText() {
	text := p.CurrentDisplayText()
	if p.ui != nil {
		p.ui.UpdateDialogueText(text, p.progress)
	}
	p.onText.emit(DialogueText{Text: text, Progress: p.progress})
}

func (p *DialoguePlayer) complete() {
	e := p.current
	p.onCompleted.emit(e)
	logFor("dialogue").Info("dialogue completed", "id", e.ID)

	if choices := e.ChoiceList(); len(choices) > 0 {
		p.state = DialogueWaitingForInput
		p.choices = choices
		if p.ui != nil {
			p.ui.ShowChoices(choices)
		}
		p.onWaiting.emit(choices)
		return
	}
	if p.cfg.AutoPlayNext && e.NextID != "" {
		p.state = DialogueIdle
		p.inInterval = true
		p.timers.Rearm(&p.interval, p.cfg.Interval, p.playNext)
		return
	}
	p.finish()
}

// finish enters the terminal Completed state.
func (p *DialoguePlayer) finish() {
	p.state = DialogueCompleted
	p.choices = nil
	p.stopAudio()
	if p.ui != nil {
		p.ui.HideDialogue()
	}
}

func (p *DialoguePlayer) playNext() {
	p.inInterval = false
	p.interval = TimerHandle{}
	next := p.current.NextID
	if next == "" {
		p.finish()
		return
	}
	if err := p.PlayDialogue(next); err != nil {
		logFor("dialogue").Warn("chained dialogue failed", "next", next, "err", err)
		p.finish()
	}
}

func (p *DialoguePlayer) cancelInterval() {
	if p.inInterval {
		p.timers.Cancel(p.interval)
	}
	p.interval = TimerHandle{}
	p.inInterval = false
}

func (p *DialoguePlayer) stopAudio() {
	if p.audio != nil {
		p.audio.StopVoice()
	}
}

// OnStarted registers a callback fired when an entry starts.
func (p *DialoguePlayer) OnStarted(fn func(DialogueEntry)) CallbackHandle {
	return p.onStarted.add(fn)
}

// OnTextChanged registers a callback fired after every reveal step.
func (p *DialoguePlayer) OnTextChanged(fn func(DialogueText)) CallbackHandle {
	return p.onText.add(fn)
}

// OnCompleted registers a callback fired when an entry finishes, before the
// player decides between choices, chaining and completion.
func (p *DialoguePlayer) OnCompleted(fn func(DialogueEntry)) CallbackHandle {
	return p.onCompleted.add(fn)
}

// OnWaitingForChoice registers a callback fired with the parsed options.
func (p *DialoguePlayer) OnWaitingForChoice(fn func([]string)) CallbackHandle {
	return p.onWaiting.add(fn)
}

// OnChoiceSelected registers a callback fired when a valid choice is made.
func (p *DialoguePlayer) OnChoiceSelected(fn func(ChoiceSelection)) CallbackHandle {
	return p.onChoice.add(fn)
}

// OnStopped registers a callback fired when a playing or waiting entry is
// interrupted by Stop or by a new entry.
func (p *DialoguePlayer) OnStopped(fn func(DialogueEntry)) CallbackHandle {
	return p.onStopped.add(fn)
}
