package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type phrase struct {
	canonical string
	alias     string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []phrase
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]CommandDef)}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	r.commands[c.Canonical] = c
	r.phrases = append(r.phrases, phrase{canonical: c.Canonical, alias: c.Canonical})
	for _, a := range c.Aliases {
		if n := normaliseInput(a); n != "" {
			r.phrases = append(r.phrases, phrase{canonical: c.Canonical, alias: n})
		}
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	c, ok := r.commands[canonical]
	return c, ok
}

// Canonicals lists registered command names in alphabetical order.
func (r *Registry) Canonicals() []string {
	out := make([]string, 0, len(r.commands))
	for k := range r.commands {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type candidate struct {
	canonical string
	score     float64
	distance  int
}

// match scores every phrase against a single token. Exact names beat aliases,
// aliases beat prefixes, prefixes beat typo corrections.
func match(token string, phrases []phrase) []candidate {
	best := map[string]candidate{}
	for _, p := range phrases {
		var c candidate
		switch {
		case token == p.alias && p.alias == p.canonical:
			c = candidate{canonical: p.canonical, score: 1}
		case token == p.alias:
			c = candidate{canonical: p.canonical, score: 0.97}
		case len(token) >= 2 && strings.HasPrefix(p.alias, token):
			c = candidate{canonical: p.canonical, score: 0.9}
		default:
			if len(token) < 3 {
				continue
			}
			dist := levenshtein.ComputeDistance(token, p.alias)
			c = candidate{canonical: p.canonical, score: 0.72 - 0.08*float64(dist), distance: dist}
			if dist > levenshteinLimit(len(p.alias)) {
				c.score = 0
			}
		}
		if prev, ok := best[c.canonical]; !ok || c.score > prev.score || (c.score == prev.score && c.distance < prev.distance) {
			best[c.canonical] = c
		}
	}

	out := make([]candidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score == out[j].score {
			if out[i].distance == out[j].distance {
				return out[i].canonical < out[j].canonical
			}
			return out[i].distance < out[j].distance
		}
		return out[i].score > out[j].score
	})
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func DefaultRegistry(speciesIDs []string) *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "water", Aliases: []string{"w", "pour", "hydrate"}},
		{Canonical: "light", Aliases: []string{"lamp", "sun"}},
		{Canonical: "warm", Aliases: []string{"heat", "heater"}},
		{Canonical: "treat", Aliases: []string{"cure", "spray"}, Args: []string{"fungicide", "insecticide"}, ArgRequired: true},
		{Canonical: "start", Aliases: []string{"new", "plant", "grow"}, Args: speciesIDs, ArgRequired: true},
		{Canonical: "next", Aliases: []string{"n", "tick", "wait"}},
		{Canonical: "pause", Aliases: []string{"hold"}},
		{Canonical: "resume", Aliases: []string{"continue", "go"}},
		{Canonical: "status", Aliases: []string{"s", "look", "check"}},
		{Canonical: "reset", Aliases: []string{"restart"}},
		{Canonical: "help", Aliases: []string{"h", "?", "commands"}},
		{Canonical: "quit", Aliases: []string{"q", "exit", "bye"}},
	}
	for _, c := range commands {
		r.RegisterCommand(c)
	}
	return r
}
