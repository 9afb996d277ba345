package parser

import (
	"fmt"
	"strings"
)

const (
	// acceptScore is the lowest score that runs a command without asking.
	acceptScore = 0.6
	// ambiguityGap separates a clear winner from a tie.
	ambiguityGap = 0.05
)

type Parser struct {
	registry *Registry
}

// New builds a parser for the default garden commands; speciesIDs are the
// values "start" accepts.
func New(speciesIDs []string) *Parser {
	return &Parser{registry: DefaultRegistry(speciesIDs)}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

// Commands lists the canonical command names.
func (p *Parser) Commands() []string {
	return p.registry.Canonicals()
}

func (p *Parser) Parse(raw string) Intent {
	intent := Intent{Raw: raw, Normalised: normaliseInput(raw)}
	tokens := tokenise(intent.Normalised)
	if len(tokens) == 0 {
		intent.Clarify = &ClarifyQuestion{Prompt: "Type a command, or help."}
		return intent
	}

	cands := match(tokens[0], p.registry.phrases)
	if len(cands) == 0 || cands[0].score < acceptScore {
		intent.Clarify = p.unknown(tokens[0], cands)
		return intent
	}
	best := cands[0]
	if len(cands) > 1 && best.score < 1 && best.score-cands[1].score < ambiguityGap {
		intent.Clarify = &ClarifyQuestion{
			Prompt:  "Did you mean:",
			Options: []string{best.canonical, cands[1].canonical},
		}
		return intent
	}

	def, _ := p.registry.command(best.canonical)
	intent.Verb = def.Canonical
	intent.Confidence = best.score

	args := tokens[1:]
	if def.Args == nil {
		return intent
	}
	if len(args) == 0 {
		if def.ArgRequired {
			intent.Clarify = &ClarifyQuestion{
				Prompt:  fmt.Sprintf("%s needs one of:", def.Canonical),
				Options: append([]string(nil), def.Args...),
			}
		}
		return intent
	}

	arg, score := resolveArg(args[0], def.Args)
	intent.Arg = arg
	intent.Confidence = min(intent.Confidence, score)
	return intent
}

// resolveArg maps a token onto one of the accepted values. Unmatched tokens
// pass through so the game can report them.
func resolveArg(token string, values []string) (string, float64) {
	phrases := make([]phrase, 0, len(values))
	for _, v := range values {
		phrases = append(phrases, phrase{canonical: v, alias: v})
	}
	cands := match(token, phrases)
	if len(cands) == 0 || cands[0].score < acceptScore {
		return token, 0.5
	}
	if len(cands) > 1 && cands[0].score < 1 && cands[0].score-cands[1].score < ambiguityGap {
		return token, 0.5
	}
	return cands[0].canonical, cands[0].score
}

func (p *Parser) unknown(token string, cands []candidate) *ClarifyQuestion {
	q := &ClarifyQuestion{
		Prompt: fmt.Sprintf("Unknown command %q. Try: %s.", token, strings.Join(p.registry.Canonicals(), ", ")),
	}
	for _, c := range cands {
		if c.score > 0 {
			q.Prompt = fmt.Sprintf("Unknown command %q. Did you mean %s?", token, c.canonical)
			q.Options = []string{c.canonical}
			break
		}
	}
	return q
}
