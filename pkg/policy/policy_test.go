package policy

import (
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default(2026)

	if p.CurrentYear != 2026 {
		t.Errorf("Expected year 2026, got %d", p.CurrentYear)
	}

	if len(p.BannedPhrases) != 14 {
		t.Errorf("Expected 14 banned phrases, got %d", len(p.BannedPhrases))
	}

	err := p.Validate()
	if err != nil {
		t.Errorf("Expected default policy to validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		policy    Policy
		wantError bool
	}{
		{
			name:      "default",
			policy:    Default(2025),
			wantError: false,
		},
		{
			name:      "year too small",
			policy:    Default(0),
			wantError: true,
		},
		{
			name: "empty phrase",
			policy: Policy{
				CurrentYear:   2025,
				BannedPhrases: []BannedPhrase{{Phrase: "  "}},
			},
			wantError: true,
		},
		{
			name: "duplicate phrase",
			policy: Policy{
				CurrentYear: 2025,
				BannedPhrases: []BannedPhrase{
					{Phrase: "robust", Replacement: "strong"},
					{Phrase: "Robust", Replacement: "sturdy"},
				},
			},
			wantError: true,
		},
		{
			name: "replacement is banned",
			policy: Policy{
				CurrentYear: 2025,
				BannedPhrases: []BannedPhrase{
					{Phrase: "utilize", Replacement: "leverage"},
					{Phrase: "leverage", Replacement: "use"},
				},
			},
			wantError: true,
		},
		{
			name: "detection only phrase",
			policy: Policy{
				CurrentYear:   2025,
				BannedPhrases: []BannedPhrase{{Phrase: "synergy"}},
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestPhrasePattern(t *testing.T) {
	tests := []struct {
		phrase string
		text   string
		want   int
	}{
		{phrase: "robust", text: "A robust plan. Robust results.", want: 2},
		{phrase: "robust", text: "robustness is not the word", want: 0},
		{phrase: "robust", text: "a ROBUST, robust-looking frame", want: 2},
		{phrase: "delve into", text: "We delve  into it and delve\ninto more", want: 2},
		{phrase: "it's worth noting", text: "It’s worth noting that it's worth noting", want: 2},
		{phrase: "game-changer", text: "a game-changer indeed", want: 1},
		{phrase: "unlock", text: "unlocked doors", want: 0},
		{phrase: "", text: "anything", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.phrase+"/"+tt.text, func(t *testing.T) {
			got := len(PhrasePattern(tt.phrase).FindAllStringIndex(tt.text, -1))
			if got != tt.want {
				t.Errorf("Expected %d matches, got %d", tt.want, got)
			}
		})
	}
}
