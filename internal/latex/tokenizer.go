package latex

import (
	"io"
	"strings"
	"unicode/utf8"
)

type Tokenizer struct {
	r       io.RuneScanner
	pos     int // byte offset of the next rune
	size    int // byte size of the last rune read
	start   int // byte offset where the last token began
	pending []any
}

func NewTokenizer(r io.RuneScanner) *Tokenizer {
	return &Tokenizer{r: r}
}

// Offset returns the byte offset at which the most recent token started.
func (l *Tokenizer) Offset() int {
	return l.start
}

// Token returns the next token or io.EOF once the input is exhausted.
func (l *Tokenizer) Token() (any, error) {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t, nil
	}

	l.start = l.pos

	char, err := l.read()
	if err != nil {
		return nil, err
	}

	switch char {
	case '{':
		return BraceOpen{}, nil
	case '}':
		return BraceClose{}, nil
	case '&', '~', '^', '_', '#':
		return Special(char), nil
	case '-', '`', '\'':
		return l.readLigature(char)
	case '%':
		return l.readComment()
	case '$':
		return l.readMathShift()
	case '\\':
		return l.readBackslash()
	default:
		if err := l.unread(); err != nil {
			return nil, err
		}

		return l.readText()
	}
}

func (l *Tokenizer) read() (rune, error) {
	r, n, err := l.r.ReadRune()
	if err != nil {
		return r, err
	}

	l.pos += n
	l.size = n
	return r, nil
}

func (l *Tokenizer) unread() error {
	if err := l.r.UnreadRune(); err != nil {
		return err
	}

	l.pos -= l.size
	l.size = 0
	return nil
}

func (l *Tokenizer) readText() (any, error) {
	var b strings.Builder
	for {
		read, err := l.read()
		if err == io.EOF {
			return Chars(b.String()), nil
		}

		if err != nil {
			return nil, err
		}

		if isSpecial(read) {
			return Chars(b.String()), l.unread()
		}

		b.WriteRune(read)
	}
}

// readMathShift is called after one $ was consumed, a second one makes it display math.
func (l *Tokenizer) readMathShift() (any, error) {
	read, err := l.read()
	if err == io.EOF {
		return MathShift("$"), nil
	}

	if err != nil {
		return nil, err
	}

	if read == '$' {
		return MathShift("$$"), nil
	}

	return MathShift("$"), l.unread()
}

func (l *Tokenizer) readBackslash() (any, error) {
	r, err := l.read()
	if err == io.EOF {
		return Chars("\\"), nil
	}

	if err != nil {
		return nil, err
	}

	switch {
	case isLetter(r):
		if err := l.unread(); err != nil {
			return nil, err
		}

		return l.readControlWord()
	case r == '(' || r == '[':
		return MathOpen([]rune{'\\', r}), nil
	case r == ')' || r == ']':
		return MathClose([]rune{'\\', r}), nil
	case r == utf8.RuneError:
		// undecodable input names no macro
		return Chars([]rune{'\\', r}), nil
	default:
		// \{, \\, \&, \$ and friends are single character macros
		return ControlSymbol(r), nil
	}
}

func (l *Tokenizer) readControlWord() (any, error) {
	name, err := l.word()
	if err != nil {
		return nil, err
	}

	if name == "begin" || name == "end" {
		return l.readEnvironment(name)
	}

	// starred form, the star is not part of the name
	star, err := l.read()
	switch {
	case err == io.EOF:
		return ControlWord(name), nil
	case err != nil:
		return nil, err
	case star != '*':
		if err := l.unread(); err != nil {
			return nil, err
		}
	}

	return ControlWord(name), l.spaces()
}

// readEnvironment reads the {name} following \begin or \end. When the braces
// are missing the command degrades to a plain macro named "begin" or "end".
func (l *Tokenizer) readEnvironment(command string) (any, error) {
	if err := l.spaces(); err != nil {
		return nil, err
	}

	open, err := l.read()
	if err == io.EOF {
		return ControlWord(command), nil
	}

	if err != nil {
		return nil, err
	}

	if open != '{' {
		return ControlWord(command), l.unread()
	}

	var name strings.Builder
	for {
		read, err := l.read()
		if err != nil && err != io.EOF {
			return nil, err
		}

		if err == io.EOF || read == '\n' || read == '{' || read == '\\' {
			l.pending = append(l.pending, Chars("{"+name.String()))
			if err == io.EOF {
				return ControlWord(command), nil
			}

			return ControlWord(command), l.unread()
		}

		if read == '}' {
			break
		}

		name.WriteRune(read)
	}

	env := strings.TrimSpace(name.String())
	if command == "begin" {
		return EnvironmentStart{Name: env}, nil
	}

	return EnvironmentEnd{Name: env}, nil
}

// readComment reads one line comment after %, the line break stays in the input.
func (l *Tokenizer) readComment() (any, error) {
	var b strings.Builder
	for {
		read, err := l.read()
		if err == io.EOF {
			return Comment(b.String()), nil
		}

		if err != nil {
			return nil, err
		}

		if read == '\n' {
			return Comment(b.String()), l.unread()
		}

		b.WriteRune(read)
	}
}

func (l *Tokenizer) readLigature(first rune) (any, error) {
	line := []rune{first}
	for {
		read, err := l.read()
		if err != nil && err != io.EOF {
			return nil, err
		}

		if err == nil {
			switch string(append(line, read)) {
			case "--", "---", "``", "''":
				line = append(line, read)
				continue
			}

			if err := l.unread(); err != nil {
				return nil, err
			}
		}

		if len(line) == 1 {
			return Chars(line), nil
		}

		return Special(line), nil
	}
}

// word reads a sequence of letters
func (l *Tokenizer) word() (string, error) {
	var runes []rune
	for {
		read, err := l.read()
		if err == io.EOF {
			return string(runes), nil
		}

		if err != nil {
			return "", err
		}

		if !isLetter(read) {
			return string(runes), l.unread()
		}

		runes = append(runes, read)
	}
}

// spaces skips blanks on the current line
func (l *Tokenizer) spaces() error {
	for {
		r, err := l.read()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		if r != ' ' && r != '\t' {
			return l.unread()
		}
	}
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// isSpecial returns true if a symbol interrupts a text run
func isSpecial(r rune) bool {
	switch r {
	case '\\', '$', '{', '}', '%', '&', '~', '^', '_', '#', '-', '`', '\'':
		return true
	default:
		return false
	}
}
