package preproc

// Mode is one entry of the preprocessor's nesting stack. Pushes and pops
// are paired on every path that does not end in a fatal error.
type Mode uint8

const (
	IgnoreComment Mode = iota + 1
	HandlingDirective
	GettingMacroArgs
	SkippingGroup
	HandlingInclude
	HandlingLine
	HandlingEmbed
)

func (m Mode) String() string {
	switch m {
	case IgnoreComment:
		return "IgnoreComment"
	case HandlingDirective:
		return "HandlingDirective"
	case GettingMacroArgs:
		return "GettingMacroArgs"
	case SkippingGroup:
		return "SkippingGroup"
	case HandlingInclude:
		return "HandlingInclude"
	case HandlingLine:
		return "HandlingLine"
	case HandlingEmbed:
		return "HandlingEmbed"
	}
	return "Unknown"
}

func (pp *Preprocessor) push(m Mode) {
	pp.modes = append(pp.modes, m)
}

func (pp *Preprocessor) pop(m Mode) {
	n := len(pp.modes)
	if n == 0 || pp.modes[n-1] != m {
		panic("preproc: unbalanced mode stack, popping " + m.String())
	}
	pp.modes = pp.modes[:n-1]
}

func (pp *Preprocessor) in(m Mode) bool {
	for _, x := range pp.modes {
		if x == m {
			return true
		}
	}
	return false
}

// plain — ни директива, ни сбор аргументов, ни пропуск группы.
func (pp *Preprocessor) plain() bool {
	for _, x := range pp.modes {
		if x != IgnoreComment {
			return false
		}
	}
	return true
}

// expanding reports whether identifiers are macro-replaced right now.
// Inside directives only #include, #line and #embed operands expand.
func (pp *Preprocessor) expanding() bool {
	if pp.in(GettingMacroArgs) || pp.in(SkippingGroup) {
		return false
	}
	return !pp.in(HandlingDirective) || pp.in(HandlingInclude) || pp.in(HandlingLine) || pp.in(HandlingEmbed)
}

func (pp *Preprocessor) ignoringComments() bool {
	return pp.in(IgnoreComment) || pp.in(HandlingDirective) || pp.in(GettingMacroArgs) || pp.in(SkippingGroup)
}
