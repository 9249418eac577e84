package orrery

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func testDialogueConfig() DialogueConfig {
	return DialogueConfig{
		TextDisplaySpeed: 20,
		Interval:         0.5,
		AllowSkip:        true,
		Language:         language.English,
	}
}

func newTestPlayer(cfg DialogueConfig, entries ...DialogueEntry) (*DialoguePlayer, *UIState) {
	p := NewDialoguePlayer(NewDialogueTable(entries...), cfg)
	ui := NewUIState(nil)
	p.SetPresenter(ui)
	return p, ui
}

func tick(p *DialoguePlayer, dt float64, n int) {
	for range n {
		p.Update(dt)
	}
}

func TestDialogueRevealAndComplete(t *testing.T) {
	entry := DialogueEntry{ID: "intro", TextEN: strings.Repeat("a", 40), Duration: 3}
	p, ui := newTestPlayer(testDialogueConfig(), entry)

	var completed []string
	p.OnCompleted(func(e DialogueEntry) { completed = append(completed, e.ID) })

	if err := p.PlayDialogue("intro"); err != nil {
		t.Fatal(err)
	}
	if p.State() != DialoguePlaying || !ui.DialogueVisible {
		t.Fatalf("state = %v visible=%v", p.State(), ui.DialogueVisible)
	}

	tick(p, 0.25, 4)
	if p.Progress() != 0.5 {
		t.Errorf("progress at 1s = %v, want 0.5", p.Progress())
	}
	if got := p.CurrentDisplayText(); len(got) != 20 {
		t.Errorf("revealed %d chars, want 20", len(got))
	}

	tick(p, 0.25, 4)
	if p.Progress() != 1 {
		t.Errorf("progress at 2s = %v, want 1", p.Progress())
	}
	if p.State() != DialoguePlaying {
		t.Errorf("state at 2s = %v, want playing until duration elapses", p.State())
	}

	tick(p, 0.25, 3)
	if p.State() != DialoguePlaying {
		t.Errorf("state at 2.75s = %v", p.State())
	}
	tick(p, 0.25, 1)
	if p.State() != DialogueCompleted {
		t.Errorf("state at 3s = %v, want completed", p.State())
	}
	if len(completed) != 1 || completed[0] != "intro" {
		t.Errorf("completed = %v", completed)
	}
	if ui.DialogueVisible {
		t.Error("dialogue should be hidden after completion")
	}
}

func TestDialogueZeroSpeedRevealsImmediately(t *testing.T) {
	cfg := testDialogueConfig()
	cfg.TextDisplaySpeed = 0
	p, ui := newTestPlayer(cfg, DialogueEntry{ID: "a", TextEN: "Hello there", Duration: 1})
	_ = p.PlayDialogue("a")
	p.Update(0.01)
	if p.Progress() != 1 || p.CurrentDisplayText() != "Hello there" {
		t.Errorf("progress = %v text = %q", p.Progress(), p.CurrentDisplayText())
	}
	if ui.DialogueText != "Hello there" {
		t.Errorf("ui text = %q", ui.DialogueText)
	}
}

func TestDialogueRevealCountsRunes(t *testing.T) {
	cfg := testDialogueConfig()
	cfg.TextDisplaySpeed = 4
	cfg.Language = language.Chinese
	p, _ := newTestPlayer(cfg, DialogueEntry{ID: "a", TextCN: "你好世界", TextEN: "Hello world", Duration: 2})
	_ = p.PlayDialogue("a")
	p.Update(0.5)
	if got := p.CurrentDisplayText(); got != "你好" {
		t.Errorf("text = %q, want %q", got, "你好")
	}
}

func TestDialogueSkip(t *testing.T) {
	entry := DialogueEntry{ID: "a", TextEN: strings.Repeat("b", 40), Duration: 5}

	t.Run("allowed", func(t *testing.T) {
		p, _ := newTestPlayer(testDialogueConfig(), entry)
		_ = p.PlayDialogue("a")
		p.Update(0.25)
		if err := p.Skip(); err != nil {
			t.Fatal(err)
		}
		if p.State() != DialogueCompleted || p.Progress() != 1 || p.Elapsed() != 5 {
			t.Errorf("state=%v progress=%v elapsed=%v", p.State(), p.Progress(), p.Elapsed())
		}
	})

	t.Run("not allowed", func(t *testing.T) {
		cfg := testDialogueConfig()
		cfg.AllowSkip = false
		p, _ := newTestPlayer(cfg, entry)
		_ = p.PlayDialogue("a")
		if err := p.Skip(); !errors.Is(err, ErrSkipNotAllowed) {
			t.Errorf("err = %v", err)
		}
		if p.State() != DialoguePlaying {
			t.Errorf("state = %v", p.State())
		}
	})

	t.Run("not playing", func(t *testing.T) {
		p, _ := newTestPlayer(testDialogueConfig(), entry)
		if err := p.Skip(); !errors.Is(err, ErrNotPlaying) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestDialogueStop(t *testing.T) {
	p, ui := newTestPlayer(testDialogueConfig(), DialogueEntry{ID: "a", TextEN: "x", Duration: 1})
	audio := &recordingAudio{}
	p.SetAudio(audio)

	stopped := 0
	p.OnStopped(func(DialogueEntry) { stopped++ })

	p.Stop()
	if stopped != 0 {
		t.Error("stop while idle should not notify")
	}

	_ = p.PlayDialogue("a")
	p.Stop()
	if p.State() != DialogueIdle || stopped != 1 {
		t.Errorf("state=%v stopped=%d", p.State(), stopped)
	}
	if ui.DialogueVisible || audio.stops != 1 {
		t.Errorf("visible=%v voice stops=%d", ui.DialogueVisible, audio.stops)
	}
}

func TestDialogueNewEntryInterruptsCurrent(t *testing.T) {
	p, _ := newTestPlayer(testDialogueConfig(),
		DialogueEntry{ID: "a", TextEN: "first", Duration: 2},
		DialogueEntry{ID: "b", TextEN: "second", Duration: 2},
	)
	var stopped []string
	p.OnStopped(func(e DialogueEntry) { stopped = append(stopped, e.ID) })

	_ = p.PlayDialogue("a")
	p.Update(0.1)
	_ = p.PlayDialogue("b")
	if len(stopped) != 1 || stopped[0] != "a" {
		t.Errorf("stopped = %v", stopped)
	}
	cur, _ := p.Current()
	if cur.ID != "b" || p.Progress() != 0 || p.Elapsed() != 0 {
		t.Errorf("current=%s progress=%v elapsed=%v", cur.ID, p.Progress(), p.Elapsed())
	}
}

func TestDialogueChoices(t *testing.T) {
	entries := []DialogueEntry{
		{ID: "ask", TextEN: "Open the door?", Duration: 0, Choices: "Yes|No", ChoiceTargets: "opened|"},
		{ID: "opened", TextEN: "It creaks open.", Duration: 1},
	}

	t.Run("waits for input", func(t *testing.T) {
		cfg := testDialogueConfig()
		cfg.TextDisplaySpeed = 0
		p, ui := newTestPlayer(cfg, entries...)
		var offered []string
		p.OnWaitingForChoice(func(c []string) { offered = c })

		_ = p.PlayDialogue("ask")
		p.Update(0.1)
		if p.State() != DialogueWaitingForInput {
			t.Fatalf("state = %v", p.State())
		}
		if len(offered) != 2 || offered[1] != "No" || len(ui.Choices) != 2 {
			t.Errorf("offered = %v ui = %v", offered, ui.Choices)
		}
	})

	t.Run("invalid index", func(t *testing.T) {
		cfg := testDialogueConfig()
		cfg.TextDisplaySpeed = 0
		p, _ := newTestPlayer(cfg, entries...)
		_ = p.PlayDialogue("ask")
		p.Update(0.1)
		for _, idx := range []int{-1, 2, 7} {
			if err := p.SelectChoice(idx); !errors.Is(err, ErrInvalidChoice) {
				t.Errorf("SelectChoice(%d) = %v", idx, err)
			}
		}
		if p.State() != DialogueWaitingForInput {
			t.Errorf("state = %v", p.State())
		}
	})

	t.Run("not waiting", func(t *testing.T) {
		p, _ := newTestPlayer(testDialogueConfig(), entries...)
		if err := p.SelectChoice(0); !errors.Is(err, ErrNotWaitingForChoice) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("branch", func(t *testing.T) {
		cfg := testDialogueConfig()
		cfg.TextDisplaySpeed = 0
		p, _ := newTestPlayer(cfg, entries...)
		stopped := 0
		p.OnStopped(func(DialogueEntry) { stopped++ })
		var sel ChoiceSelection
		p.OnChoiceSelected(func(s ChoiceSelection) { sel = s })

		_ = p.PlayDialogue("ask")
		p.Update(0.1)
		if err := p.SelectChoice(0); err != nil {
			t.Fatal(err)
		}
		cur, _ := p.Current()
		if cur.ID != "opened" || p.State() != DialoguePlaying {
			t.Errorf("current=%s state=%v", cur.ID, p.State())
		}
		if sel.Index != 0 || sel.Text != "Yes" || sel.Target != "opened" {
			t.Errorf("selection = %+v", sel)
		}
		if stopped != 0 {
			t.Error("branching should not report a stop")
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		cfg := testDialogueConfig()
		cfg.TextDisplaySpeed = 0
		p, ui := newTestPlayer(cfg, DialogueEntry{ID: "ask", TextEN: "Go?", Choices: "Yes|No", ChoiceTargets: "missing|"})
		selected := 0
		p.OnChoiceSelected(func(ChoiceSelection) { selected++ })

		_ = p.PlayDialogue("ask")
		p.Update(0.1)
		if err := p.SelectChoice(0); !errors.Is(err, ErrUnknownDialogue) {
			t.Fatalf("err = %v", err)
		}
		if p.State() != DialogueWaitingForInput || len(p.Choices()) != 2 || len(ui.Choices) != 2 {
			t.Errorf("state=%v choices=%v ui=%v", p.State(), p.Choices(), ui.Choices)
		}
		if selected != 0 {
			t.Error("a rejected choice should not be reported as selected")
		}
		if err := p.SelectChoice(1); err != nil || p.State() != DialogueCompleted {
			t.Errorf("remaining choice: err=%v state=%v", err, p.State())
		}
	})

	t.Run("terminal choice", func(t *testing.T) {
		cfg := testDialogueConfig()
		cfg.TextDisplaySpeed = 0
		p, _ := newTestPlayer(cfg, entries...)
		_ = p.PlayDialogue("ask")
		p.Update(0.1)
		if err := p.SelectChoice(1); err != nil {
			t.Fatal(err)
		}
		if p.State() != DialogueCompleted {
			t.Errorf("state = %v", p.State())
		}
	})
}

func TestDialogueAutoPlayNext(t *testing.T) {
	cfg := testDialogueConfig()
	cfg.TextDisplaySpeed = 0
	cfg.AutoPlayNext = true
	entries := []DialogueEntry{
		{ID: "a", TextEN: "one", Duration: 1, NextID: "b"},
		{ID: "b", TextEN: "two", Duration: 1},
	}

	t.Run("chains after interval", func(t *testing.T) {
		p, _ := newTestPlayer(cfg, entries...)
		var started []string
		p.OnStarted(func(e DialogueEntry) { started = append(started, e.ID) })

		_ = p.PlayDialogue("a")
		tick(p, 0.25, 4)
		if p.State() != DialogueIdle || !p.InInterval() {
			t.Fatalf("state=%v interval=%v", p.State(), p.InInterval())
		}
		tick(p, 0.25, 1)
		if len(started) != 1 {
			t.Errorf("next entry started early: %v", started)
		}
		tick(p, 0.25, 1)
		if len(started) != 2 || started[1] != "b" {
			t.Errorf("started = %v", started)
		}
		if p.InInterval() {
			t.Error("interval should be consumed")
		}
	})

	t.Run("stop cancels interval", func(t *testing.T) {
		p, _ := newTestPlayer(cfg, entries...)
		_ = p.PlayDialogue("a")
		tick(p, 0.25, 4)
		p.Stop()
		if p.InInterval() {
			t.Error("interval should be cancelled")
		}
		tick(p, 0.25, 8)
		if cur, _ := p.Current(); cur.ID != "a" || p.State() != DialogueIdle {
			t.Errorf("current=%s state=%v", cur.ID, p.State())
		}
	})

	t.Run("disabled completes", func(t *testing.T) {
		c := cfg
		c.AutoPlayNext = false
		p, _ := newTestPlayer(c, entries...)
		_ = p.PlayDialogue("a")
		tick(p, 0.25, 4)
		if p.State() != DialogueCompleted || p.InInterval() {
			t.Errorf("state=%v interval=%v", p.State(), p.InInterval())
		}
	})
}

func TestDialogueSharedTimers(t *testing.T) {
	cfg := testDialogueConfig()
	cfg.TextDisplaySpeed = 0
	cfg.AutoPlayNext = true
	p, _ := newTestPlayer(cfg,
		DialogueEntry{ID: "a", TextEN: "one", Duration: 0.5, NextID: "b"},
		DialogueEntry{ID: "b", TextEN: "two", Duration: 1},
	)
	timers := NewTimers()
	p.SetTimers(timers)

	_ = p.PlayDialogue("a")
	tick(p, 0.25, 2)
	if !p.InInterval() || timers.Len() != 1 {
		t.Fatalf("interval=%v pending=%d", p.InInterval(), timers.Len())
	}
	tick(p, 0.25, 4)
	if !p.InInterval() {
		t.Error("player must not advance a shared timer service")
	}
	timers.Update(0.5)
	if cur, _ := p.Current(); cur.ID != "b" {
		t.Errorf("current = %s", cur.ID)
	}
}

func TestDialogueErrors(t *testing.T) {
	p := NewDialoguePlayer(nil, testDialogueConfig())
	if err := p.PlayDialogue("a"); !errors.Is(err, ErrNoDialogueSource) {
		t.Errorf("err = %v", err)
	}
	if err := p.PlayDialogueByTrigger("x"); !errors.Is(err, ErrNoDialogueSource) {
		t.Errorf("err = %v", err)
	}

	p.SetSource(NewDialogueTable(DialogueEntry{ID: "a", Trigger: "enter", TextEN: "hi", Duration: 1}))
	if err := p.PlayDialogue("missing"); !errors.Is(err, ErrUnknownDialogue) {
		t.Errorf("err = %v", err)
	}
	if err := p.PlayDialogueByTrigger("leave"); !errors.Is(err, ErrUnknownDialogue) {
		t.Errorf("err = %v", err)
	}
	if p.State() != DialogueIdle {
		t.Errorf("state = %v", p.State())
	}
	if err := p.PlayDialogueByTrigger("enter"); err != nil || !p.IsPlaying() {
		t.Errorf("err=%v playing=%v", err, p.IsPlaying())
	}
}

func TestDialogueVoice(t *testing.T) {
	cfg := testDialogueConfig()
	cfg.TextDisplaySpeed = 0
	p, _ := newTestPlayer(cfg, DialogueEntry{ID: "a", TextEN: "hi", AudioPath: "vo/a.ogg", Duration: 0.5})
	audio := &recordingAudio{}
	p.SetAudio(audio)

	_ = p.PlayDialogue("a")
	if len(audio.voices) != 1 || audio.voices[0] != "vo/a.ogg" {
		t.Errorf("voices = %v", audio.voices)
	}
	tick(p, 0.25, 2)
	if p.State() != DialogueCompleted || audio.stops != 1 {
		t.Errorf("state=%v stops=%d", p.State(), audio.stops)
	}
}
