// Package extract pulls instructor names out of class search HTML. It
// recognizes the three page layouts the registrar uses: the class search
// results table, the class detail panel, and the calendar week view.
package extract

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/emilyynorton/NotreDameRMP/internal/names"
)

const instructorLabel = "Instructor:"

// Instructors parses an HTML fragment and returns the instructor names it
// contains, in document order with duplicates and placeholder names removed.
func Instructors(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var found []string
	visit(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch {
		case n.Data == "span" && hasClass(n, "result__flex--9") && hasClass(n, "text--right"):
			text := extractTextContent(n)
			if strings.Contains(text, instructorLabel) {
				found = append(found, stripLabel(text))
			}
		case n.Data == "div" && hasClass(n, "instructor-detail"):
			found = append(found, stripLabel(extractTextContent(n)))
		case n.Data == "div" && hasClass(n, "calendar_viewing__instr"):
			found = append(found, stripLabel(extractTextContent(n)))
		}
	})

	seen := make(map[string]bool)
	result := make([]string, 0, len(found))
	for _, name := range found {
		if name == "" || names.IsSentinel(name) {
			continue
		}
		key := names.Fold(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, name)
	}

	return result, nil
}

// stripLabel removes a leading "Instructor:" label and trims whitespace.
func stripLabel(text string) string {
	if i := strings.Index(text, instructorLabel); i >= 0 {
		text = text[i+len(instructorLabel):]
	}
	return strings.TrimSpace(text)
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func visit(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visit(c, fn)
	}
}

func extractTextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(node *html.Node) {
		if node.Type == html.TextNode {
			buf.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
