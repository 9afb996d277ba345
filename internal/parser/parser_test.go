package parser

import (
	"slices"
	"strings"
	"testing"
)

var testSpecies = []string{"bean", "rose", "mint"}

func TestNormalisationTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  WATER!!  ", want: "water"},
		{in: "treat   Fungi-cide", want: "treat fungi cide"},
		{in: "?", want: "?"},
	}
	for _, tc := range tests {
		if got := normaliseInput(tc.in); got != tc.want {
			t.Fatalf("normaliseInput(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestAliasesMapToCanonicalVerbs(t *testing.T) {
	p := New(testSpecies)
	tests := map[string]string{
		"w":       "water",
		"pour":    "water",
		"lamp":    "light",
		"heat":    "warm",
		"n":       "next",
		"tick":    "next",
		"s":       "status",
		"?":       "help",
		"q":       "quit",
		"restart": "reset",
		"go":      "resume",
	}
	for in, want := range tests {
		intent := p.Parse(in)
		if !intent.OK() || intent.Verb != want {
			t.Fatalf("Parse(%q) = %+v, want verb %q", in, intent, want)
		}
	}
}

func TestTypoWithinOneEditIsAccepted(t *testing.T) {
	p := New(testSpecies)
	intent := p.Parse("wter")
	if !intent.OK() || intent.Verb != "water" {
		t.Fatalf("expected water, got %+v", intent)
	}
	if intent.Confidence >= 0.9 {
		t.Fatalf("expected reduced confidence for typo, got %.2f", intent.Confidence)
	}
}

func TestFarTypoSuggestsClosestCommand(t *testing.T) {
	p := New(testSpecies)
	intent := p.Parse("lihgt")
	if intent.OK() || intent.Clarify == nil {
		t.Fatalf("expected clarify, got %+v", intent)
	}
	if !slices.Equal(intent.Clarify.Options, []string{"light"}) {
		t.Fatalf("expected light suggestion, got %+v", intent.Clarify)
	}
}

func TestUnknownCommandListsCommands(t *testing.T) {
	p := New(testSpecies)
	intent := p.Parse("xyzzy")
	if intent.Clarify == nil || len(intent.Clarify.Options) != 0 {
		t.Fatalf("expected clarify without options, got %+v", intent.Clarify)
	}
	if !strings.Contains(intent.Clarify.Prompt, "water") {
		t.Fatalf("expected command list in prompt, got %q", intent.Clarify.Prompt)
	}
}

func TestAmbiguousPrefixAsks(t *testing.T) {
	p := New(testSpecies)
	intent := p.Parse("re")
	if intent.Clarify == nil {
		t.Fatalf("expected clarify, got %+v", intent)
	}
	if !slices.Equal(intent.Clarify.Options, []string{"reset", "resume"}) {
		t.Fatalf("unexpected options: %v", intent.Clarify.Options)
	}
}

func TestTreatResolvesTreatmentArgument(t *testing.T) {
	p := New(testSpecies)

	intent := p.Parse("spray fungi")
	if !intent.OK() || intent.Verb != "treat" || intent.Arg != "fungicide" {
		t.Fatalf("expected treat fungicide, got %+v", intent)
	}

	intent = p.Parse("treat insectiside")
	if intent.Arg != "insecticide" {
		t.Fatalf("expected insecticide, got %+v", intent)
	}

	intent = p.Parse("treat compost")
	if !intent.OK() || intent.Arg != "compost" {
		t.Fatalf("expected raw argument to pass through, got %+v", intent)
	}

	intent = p.Parse("treat")
	if intent.OK() || intent.Clarify == nil || !slices.Equal(intent.Clarify.Options, []string{"fungicide", "insecticide"}) {
		t.Fatalf("expected missing-argument clarify, got %+v", intent)
	}
}

func TestStartResolvesSpecies(t *testing.T) {
	p := New(testSpecies)
	tests := map[string]string{
		"start rose":   "rose",
		"plant bean":   "bean",
		"start roze":   "rose",
		"new mnt":      "mint",
		"start cactus": "cactus",
	}
	for in, want := range tests {
		intent := p.Parse(in)
		if intent.Verb != "start" || intent.Arg != want {
			t.Fatalf("Parse(%q) = %+v, want start %q", in, intent, want)
		}
	}
}

func TestEmptyInputAsksForCommand(t *testing.T) {
	intent := New(testSpecies).Parse("   ")
	if intent.OK() || intent.Clarify == nil {
		t.Fatalf("expected clarify, got %+v", intent)
	}
}

func TestRegisterCommandExtendsVocabulary(t *testing.T) {
	p := New(testSpecies)
	p.RegisterCommand(CommandDef{Canonical: "chart", Aliases: []string{"graph"}})
	if intent := p.Parse("graph"); intent.Verb != "chart" {
		t.Fatalf("expected chart, got %+v", intent)
	}
}
