package parser

type Intent struct {
	Raw        string
	Normalised string
	Verb       string
	Arg        string
	Confidence float64
	// Clarify is set when the input could not be turned into a command.
	Clarify *ClarifyQuestion
}

func (i Intent) OK() bool {
	return i.Verb != "" && i.Clarify == nil
}

type ClarifyQuestion struct {
	Prompt  string
	Options []string
}

type CommandDef struct {
	Canonical string
	Aliases   []string
	// Args lists the accepted argument values; nil means the command takes none.
	Args []string
	// ArgRequired rejects the command when no argument is given.
	ArgRequired bool
}
