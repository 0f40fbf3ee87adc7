package latex

// Chars is a run of plain text.
type Chars string

// ControlWord is a letter-named macro such as \alpha, stored without the backslash.
type ControlWord string

// ControlSymbol is a single-character macro such as \{ or \\, stored without the backslash.
type ControlSymbol string

type Special string
type Comment string

// MathShift is "$" or "$$".
type MathShift string

// MathOpen is `\(` or `\[`.
type MathOpen string

// MathClose is `\)` or `\]`.
type MathClose string

type BraceOpen struct {
}

type BraceClose struct {
}

type EnvironmentStart struct {
	Name string
}

type EnvironmentEnd struct {
	Name string
}

// literal renders a token back to source text. Stray closers are kept as chars
// in tolerant mode using this representation.
func literal(t any) string {
	switch token := t.(type) {
	case Chars:
		return string(token)
	case ControlWord:
		return "\\" + string(token)
	case ControlSymbol:
		return "\\" + string(token)
	case Special:
		return string(token)
	case Comment:
		return "%" + string(token)
	case MathShift:
		return string(token)
	case MathOpen:
		return string(token)
	case MathClose:
		return string(token)
	case BraceOpen:
		return "{"
	case BraceClose:
		return "}"
	case EnvironmentStart:
		return "\\begin{" + token.Name + "}"
	case EnvironmentEnd:
		return "\\end{" + token.Name + "}"
	default:
		return ""
	}
}
