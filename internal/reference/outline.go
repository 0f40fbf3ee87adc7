package reference

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Title is the first level heading a reference document starts with.
const Title = "Latex Reference"

// Category is a second level section of a reference document.
type Category struct {
	Name    string
	Entries int // Text lines under the heading, one per macro in the requested format
}

// Outline is the heading structure of a reference document.
type Outline struct {
	Title      string
	Categories []Category
}

// ParseOutline reads the level 1 title and level 2 categories of a markdown document.
func ParseOutline(doc []byte) Outline {
	root := goldmark.New().Parser().Parse(text.NewReader(doc))

	var outline Outline
	var current *Category
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok {
			switch heading.Level {
			case 1:
				if outline.Title == "" {
					outline.Title = headingText(heading, doc)
				}
				current = nil
				continue
			case 2:
				outline.Categories = append(outline.Categories, Category{Name: headingText(heading, doc)})
				current = &outline.Categories[len(outline.Categories)-1]
				continue
			}
		}

		if current != nil {
			current.Entries += countLines(n)
		}
	}

	return outline
}

// Entries returns the number of entries across all categories.
func (o Outline) Entries() int {
	total := 0
	for _, c := range o.Categories {
		total += c.Entries
	}
	return total
}

// Problems lists the ways the document differs from the requested format.
func (o Outline) Problems() []string {
	var problems []string
	if o.Title != Title {
		problems = append(problems, fmt.Sprintf("title is %q, want %q", o.Title, Title))
	}
	if len(o.Categories) == 0 {
		problems = append(problems, "no categories")
	}
	for _, c := range o.Categories {
		if c.Entries == 0 {
			problems = append(problems, fmt.Sprintf("category %q is empty", c.Name))
		}
	}
	return problems
}

// countLines counts the text lines of paragraphs and list items inside n.
func countLines(n ast.Node) int {
	count := 0
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			count += node.Lines().Len()
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return count
}

func headingText(heading *ast.Heading, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(heading, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
