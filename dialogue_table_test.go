package orrery

import (
	"slices"
	"testing"

	"golang.org/x/text/language"
)

func TestChoiceList(t *testing.T) {
	tests := []struct {
		choices string
		want    []string
	}{
		{"", nil},
		{"Yes", []string{"Yes"}},
		{"Yes|No", []string{"Yes", "No"}},
		{"Yes||No|", []string{"Yes", "No"}},
	}
	for _, tt := range tests {
		got := DialogueEntry{Choices: tt.choices}.ChoiceList()
		if !slices.Equal(got, tt.want) {
			t.Errorf("ChoiceList(%q) = %v, want %v", tt.choices, got, tt.want)
		}
	}
}

func TestChoiceTarget(t *testing.T) {
	e := DialogueEntry{Choices: "A|B|C", ChoiceTargets: "left| |right"}
	tests := []struct {
		index int
		want  string
	}{
		{-1, ""},
		{0, "left"},
		{1, ""},
		{2, "right"},
		{3, ""},
	}
	for _, tt := range tests {
		if got := e.ChoiceTarget(tt.index); got != tt.want {
			t.Errorf("ChoiceTarget(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestDialogueTableLookup(t *testing.T) {
	table := NewDialogueTable(
		DialogueEntry{ID: "a", Trigger: "door"},
		DialogueEntry{ID: "b", Trigger: "door"},
	)
	table.Add(DialogueEntry{ID: "a", Trigger: "dup"})

	if e, ok := table.LookupByID("a"); !ok || e.Trigger != "door" {
		t.Errorf("LookupByID(a) = %+v %v, want first match", e, ok)
	}
	if e, ok := table.LookupByTrigger("door"); !ok || e.ID != "a" {
		t.Errorf("LookupByTrigger(door) = %+v %v", e, ok)
	}
	if _, ok := table.LookupByID("zzz"); ok {
		t.Error("unknown id should miss")
	}
	if _, ok := table.LookupByTrigger(""); ok {
		t.Error("empty trigger should miss")
	}
}

func TestDialogueTableDisplayText(t *testing.T) {
	both := DialogueEntry{TextCN: "你好", TextEN: "Hello"}
	onlyCN := DialogueEntry{TextCN: "你好"}
	onlyEN := DialogueEntry{TextEN: "Hello"}
	table := NewDialogueTable()

	tests := []struct {
		name  string
		entry DialogueEntry
		lang  language.Tag
		want  string
	}{
		{"chinese", both, language.Chinese, "你好"},
		{"simplified", both, language.SimplifiedChinese, "你好"},
		{"english", both, language.English, "Hello"},
		{"british", both, language.BritishEnglish, "Hello"},
		{"english falls back", onlyCN, language.English, "你好"},
		{"chinese falls back", onlyEN, language.Chinese, "Hello"},
		{"unmatched uses chinese", both, language.Japanese, "你好"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.DisplayText(tt.entry, tt.lang); got != tt.want {
				t.Errorf("DisplayText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpeakerKindString(t *testing.T) {
	if SpeakerNPC.String() != "npc" || SpeakerKind(99).String() != "unknown" {
		t.Errorf("got %q %q", SpeakerNPC.String(), SpeakerKind(99).String())
	}
}
