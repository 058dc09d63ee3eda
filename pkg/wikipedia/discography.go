package wikipedia

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StudioAlbumsHeading is the section marker ParseStudioAlbums looks for.
const StudioAlbumsHeading = "Studio albums"

// Entry is one item of a discography list.
type Entry struct {
	Title string
	Link  string // absolute URL, empty when the item is not linked
}

// ParseStudioAlbums extracts the studio album list from a discography
// article.
//
// The marker is the first heading-like element (th, h2-h4, dt or
// span.mw-headline) whose text is "Studio albums"; a navbox group header
// wins over other matches. Each direct li of the list belonging to the
// marker becomes an Entry. Relative links are resolved against base.
//
// A navbox group or dt owns the first ul in the cells or definitions that
// follow it in the same row. A section heading owns only lists that are
// siblings in its section, up to the next heading of the same or higher
// level; lists inside tables are never taken.
//
// A page without the marker, or whose section holds no list, yields an
// empty slice and a nil error.
func ParseStudioAlbums(r io.Reader, base *url.URL) ([]Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("wikipedia: failed to parse page: %w", err)
	}

	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		nodes = append(nodes, n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var marker *html.Node
	for _, n := range nodes {
		if !isHeading(n) || !strings.EqualFold(textOf(n), StudioAlbumsHeading) {
			continue
		}
		if marker == nil {
			marker = n
		}
		if n.DataAtom == atom.Th && hasClass(n, "navbox-group") {
			marker = n
			break
		}
	}
	if marker == nil {
		return []Entry{}, nil
	}

	var list *html.Node
	switch marker.DataAtom {
	case atom.Th, atom.Dt:
		list = rowList(marker)
	default:
		list = sectionList(marker)
	}
	if list == nil {
		return []Entry{}, nil
	}

	entries := []Entry{}
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}

		title := ""
		if italic := find(li, func(n *html.Node) bool { return n.DataAtom == atom.I }); italic != nil {
			title = textOf(italic)
		}
		if title == "" {
			title = textOf(li)
		}
		if title == "" {
			continue
		}

		entries = append(entries, Entry{Title: title, Link: linkOf(li, base)})
	}

	return entries, nil
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Th, atom.H2, atom.H3, atom.H4, atom.Dt:
		return true
	case atom.Span:
		return hasClass(n, "mw-headline")
	}
	return false
}

// rowList returns the first ul inside the siblings following a th or dt,
// stopping at the next header of the same kind.
func rowList(marker *html.Node) *html.Node {
	for sib := marker.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if sib.DataAtom == marker.DataAtom {
			return nil
		}
		if sib.DataAtom == atom.Ul {
			return sib
		}
		if ul := find(sib, func(n *html.Node) bool { return n.DataAtom == atom.Ul }); ul != nil {
			return ul
		}
	}
	return nil
}

// sectionList returns the first list in the section opened by a heading.
// Only sibling ul elements, or a ul wrapped in a sibling div such as a
// column layout, count.
func sectionList(marker *html.Node) *html.Node {
	anchor := marker
	if marker.DataAtom == atom.Span && marker.Parent != nil && headingLevel(marker.Parent) > 0 {
		anchor = marker.Parent
	}
	level := headingLevel(anchor)
	if p := anchor.Parent; p != nil && p.DataAtom == atom.Div && hasClass(p, "mw-heading") {
		anchor = p
	}

	for sib := anchor.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if l := sectionLevel(sib); l > 0 && (level == 0 || l <= level) {
			return nil
		}
		switch sib.DataAtom {
		case atom.Ul:
			return sib
		case atom.Div:
			if ul := find(sib, func(n *html.Node) bool {
				return n.DataAtom == atom.Ul && !insideTable(n, sib)
			}); ul != nil {
				return ul
			}
		}
	}
	return nil
}

// headingLevel is 1-6 for h1-h6 and 0 for anything else.
func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// sectionLevel is the level of a heading, or of the heading inside a
// div.mw-heading wrapper.
func sectionLevel(n *html.Node) int {
	if l := headingLevel(n); l > 0 {
		return l
	}
	if n.DataAtom == atom.Div && hasClass(n, "mw-heading") {
		if h := find(n, func(c *html.Node) bool { return headingLevel(c) > 0 }); h != nil {
			return headingLevel(h)
		}
	}
	return 0
}

func insideTable(n, stop *html.Node) bool {
	for p := n.Parent; p != nil && p != stop; p = p.Parent {
		if p.DataAtom == atom.Table {
			return true
		}
	}
	return false
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

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// textOf returns the whitespace-normalized text content of n.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// find returns the first element below n, in document order, matching fn.
func find(n *html.Node, fn func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && fn(c) {
			return c
		}
		if found := find(c, fn); found != nil {
			return found
		}
	}
	return nil
}

func linkOf(n *html.Node, base *url.URL) string {
	anchor := find(n, func(c *html.Node) bool {
		if c.DataAtom != atom.A {
			return false
		}
		_, ok := attr(c, "href")
		return ok
	})
	if anchor == nil {
		return ""
	}

	href, _ := attr(anchor, "href")
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base == nil || ref.IsAbs() {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
