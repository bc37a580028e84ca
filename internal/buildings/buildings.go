// Package buildings extracts building abbreviations, names and addresses
// from a saved copy of the campus buildings index and expands the
// abbreviated building tokens used in exam locations.
package buildings

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"golang.org/x/net/html"
)

// Building holds one entry of the abbreviations table.
type Building struct {
	Abbreviation string `csv:"Abbreviation"`
	Name         string `csv:"Building"`
	Address      string `csv:"Address"`
}

// ParseIndex extracts building entries from the saved index page. Each entry
// lives in an accordion section: the left column labels the full name and
// abbreviation, the right column carries the mailing address.
func ParseIndex(r io.Reader) ([]Building, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	var out []Building
	for _, entry := range findAll(doc, byClass("ui-accordion-content")) {
		var b Building

		if left := findFirst(entry, byClass("left-2column")); left != nil {
			for _, strong := range findAll(left, byTag("strong")) {
				label := strings.TrimSpace(nodeText(strong))
				value := siblingText(strong)
				switch {
				case strings.Contains(label, "Full Name:"):
					b.Name = value
				case strings.Contains(label, "Abbreviation:"):
					b.Abbreviation = value
				}
			}
		}

		if right := findFirst(entry, byClass("right-2column")); right != nil {
			raw := strings.TrimSpace(nodeText(right))
			b.Address = strings.TrimSpace(strings.ReplaceAll(raw, "Mailing Address:", ""))
		}

		if b.Abbreviation != "" || b.Name != "" {
			out = append(out, b)
		}
	}

	return out, nil
}

// WriteCSV stores building entries as a CSV file.
func WriteCSV(path string, entries []Building) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&entries, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadCSV reads building entries from a CSV file.
func LoadCSV(path string) ([]Building, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Building
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return entries, nil
}

// Expander replaces abbreviations in a location's building token with full
// building names.
type Expander struct {
	entries []Building
}

// NewExpander creates an expander. Entries are applied longest abbreviation
// first so that overlapping abbreviations resolve to the longer match.
func NewExpander(entries []Building) *Expander {
	sorted := make([]Building, 0, len(entries))
	for _, e := range entries {
		if e.Abbreviation != "" {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Abbreviation) > len(sorted[j].Abbreviation)
	})
	return &Expander{entries: sorted}
}

// Expand takes a location like "PAB-148" and returns the expanded building
// description, "Physics and Astronomy Building: 1151 Richmond St". Unknown
// abbreviations pass through unchanged.
func (e *Expander) Expand(location string) string {
	token := strings.TrimSpace(strings.SplitN(location, "-", 2)[0])
	for _, b := range e.entries {
		full := b.Name
		if b.Address != "" {
			full = b.Name + ": " + b.Address
		}
		token = strings.ReplaceAll(token, b.Abbreviation, full)
	}
	return token
}

// findAll returns every node under root matching the predicate, in document
// order.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	if nodes := findAll(root, match); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, attr := range n.Attr {
			if attr.Key != "class" {
				continue
			}
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
		return false
	}
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// nodeText concatenates the text content of a node's subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// siblingText returns the trimmed text node immediately following n, the way
// the index page lays out "<strong>Label:</strong> value".
func siblingText(n *html.Node) string {
	if s := n.NextSibling; s != nil && s.Type == html.TextNode {
		return strings.TrimSpace(s.Data)
	}
	return ""
}
