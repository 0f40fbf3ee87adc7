package macros

import "strings"

// DefaultDenylist holds single character artifacts that the walker reports as
// macros but that are not macro usage: escaped braces and ampersands, `\\` line
// breaks, and `\t` / `\n` escapes from code cells.
var DefaultDenylist = []string{"{", "}", "t", "n", "&", `\`}

// Cleaner filters parser artifacts out of a macro set.
type Cleaner struct {
	deny map[string]struct{}
}

// NewCleaner creates a cleaner that drops entries exactly equal to one of denylist.
func NewCleaner(denylist []string) *Cleaner {
	deny := make(map[string]struct{}, len(denylist))
	for _, item := range denylist {
		deny[item] = struct{}{}
	}
	return &Cleaner{deny: deny}
}

// Clean returns a new set without blank entries and denylisted entries.
// Matching is exact, there is no substring or prefix matching. The input is not modified.
func (c *Cleaner) Clean(s Set) Set {
	out := make(Set, len(s))
	for name := range s {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, denied := c.deny[name]; denied {
			continue
		}
		out.Add(name)
	}
	return out
}
