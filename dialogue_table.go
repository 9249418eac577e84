package orrery

import (
	"strings"

	"golang.org/x/text/language"
)

// SpeakerKind classifies who delivers a dialogue line.
type SpeakerKind uint8

const (
	SpeakerNarrator SpeakerKind = iota
	SpeakerPlayer
	SpeakerNPC
	SpeakerSoundEffect
)

var speakerNames = [...]string{"narrator", "player", "npc", "sound_effect"}

func (k SpeakerKind) String() string {
	if int(k) < len(speakerNames) {
		return speakerNames[k]
	}
	return "unknown"
}

// DialogueEntry is one line of dialogue.
type DialogueEntry struct {
	ID          string      `json:"id"`
	Trigger     string      `json:"trigger,omitempty"`
	Speaker     string      `json:"speaker,omitempty"`
	SpeakerKind SpeakerKind `json:"speakerKind"`
	TextCN      string      `json:"textCN,omitempty"`
	TextEN      string      `json:"textEN,omitempty"`
	AudioPath   string      `json:"audioPath,omitempty"`
	Duration    float64     `json:"duration"`
	NextID      string      `json:"nextId,omitempty"`
	// Choices is a pipe-delimited option list ("Yes|No").
	Choices string `json:"choices,omitempty"`
	// ChoiceTargets is a pipe-delimited list of dialogue ids aligned with
	// Choices. An empty slot ends the dialogue when that choice is picked.
	ChoiceTargets string `json:"choiceTargets,omitempty"`
}

// ChoiceList splits Choices on '|', dropping empty options.
func (e DialogueEntry) ChoiceList() []string {
	if e.Choices == "" {
		return nil
	}
	parts := strings.Split(e.Choices, "|")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ChoiceTarget returns the dialogue id for choice i, or "".
func (e DialogueEntry) ChoiceTarget(i int) string {
	if e.ChoiceTargets == "" || i < 0 {
		return ""
	}
	targets := strings.Split(e.ChoiceTargets, "|")
	if i >= len(targets) {
		return ""
	}
	return strings.TrimSpace(targets[i])
}

// DialogueSource is the dialogue data collaborator.
type DialogueSource interface {
	LookupByID(id string) (DialogueEntry, bool)
	LookupByTrigger(event string) (DialogueEntry, bool)
	DisplayText(entry DialogueEntry, lang language.Tag) string
}

// dialogueLanguages lists the text slots of an entry in slot order. The first
// is the fallback when a requested language matches neither.
var dialogueLanguages = []language.Tag{language.Chinese, language.English}

var dialogueMatcher = language.NewMatcher(dialogueLanguages)

// DialogueTable is an in-memory DialogueSource. Lookups scan in order and the
// first match wins.
type DialogueTable struct {
	Entries []DialogueEntry
}

// NewDialogueTable creates a table over entries.
func NewDialogueTable(entries ...DialogueEntry) *DialogueTable {
	return &DialogueTable{Entries: entries}
}

// Add appends an entry.
func (t *DialogueTable) Add(e DialogueEntry) {
	t.Entries = append(t.Entries, e)
}

func (t *DialogueTable) LookupByID(id string) (DialogueEntry, bool) {
	for _, e := range t.Entries {
		if e.ID == id {
			return e, true
		}
	}
	logFor("dialogue").Warn("dialogue id not found", "id", id)
	return DialogueEntry{}, false
}

func (t *DialogueTable) LookupByTrigger(event string) (DialogueEntry, bool) {
	if event != "" {
		for _, e := range t.Entries {
			if e.Trigger == event {
				return e, true
			}
		}
	}
	logFor("dialogue").Warn("dialogue trigger not found", "trigger", event)
	return DialogueEntry{}, false
}

// DisplayText picks the entry text closest to lang. When the preferred slot
// is empty the other one is used.
func (t *DialogueTable) DisplayText(e DialogueEntry, lang language.Tag) string {
	return localizedText(e, lang)
}

func localizedText(e DialogueEntry, lang language.Tag) string {
	texts := [...]string{e.TextCN, e.TextEN}
	_, idx, conf := dialogueMatcher.Match(lang)
	if conf == language.No {
		idx = 0
	}
	if texts[idx] != "" {
		return texts[idx]
	}
	return texts[1-idx]
}
