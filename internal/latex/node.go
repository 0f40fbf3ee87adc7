package latex

// Kind tags the variant of a Node.
type Kind int

const (
	MacroKind Kind = iota
	MathKind
	EnvironmentKind
	CharsKind
	SpecialsKind
	GroupKind
	CommentKind
)

func (k Kind) String() string {
	switch k {
	case MacroKind:
		return "macro"
	case MathKind:
		return "math"
	case EnvironmentKind:
		return "environment"
	case CharsKind:
		return "chars"
	case SpecialsKind:
		return "specials"
	case GroupKind:
		return "group"
	case CommentKind:
		return "comment"
	default:
		return "unknown"
	}
}

// Node is one parsed unit of LaTeX-bearing text. The set of implementations is
// closed: only the types in this file satisfy it.
type Node interface {
	Kind() Kind
	node()
}

// MacroNode is a macro invocation. Name holds the identifier after the escape
// character (`\alpha` -> "alpha", `\{` -> "{"); arguments are not attached.
type MacroNode struct {
	Name string
}

// MathNode is an inline or display math region. Delimiter is the opening
// delimiter as written: "$", "$$", `\(` or `\[`.
type MathNode struct {
	Delimiter string
	Display   bool
	Children  []Node
}

// EnvironmentNode is a \begin{Name} ... \end{Name} region.
type EnvironmentNode struct {
	Name     string
	Children []Node
}

// CharsNode is a run of plain characters.
type CharsNode struct {
	Text string
}

// SpecialsNode holds characters with special meaning (`&`, `~`, `^`, `--`, ...).
type SpecialsNode struct {
	Chars string
}

// GroupNode is a brace-delimited group.
type GroupNode struct {
	Children []Node
}

// CommentNode is a `%` comment without the leading percent sign.
type CommentNode struct {
	Text string
}

func (*MacroNode) Kind() Kind       { return MacroKind }
func (*MathNode) Kind() Kind        { return MathKind }
func (*EnvironmentNode) Kind() Kind { return EnvironmentKind }
func (*CharsNode) Kind() Kind       { return CharsKind }
func (*SpecialsNode) Kind() Kind    { return SpecialsKind }
func (*GroupNode) Kind() Kind       { return GroupKind }
func (*CommentNode) Kind() Kind     { return CommentKind }

func (*MacroNode) node()       {}
func (*MathNode) node()        {}
func (*EnvironmentNode) node() {}
func (*CharsNode) node()       {}
func (*SpecialsNode) node()    {}
func (*GroupNode) node()       {}
func (*CommentNode) node()     {}
