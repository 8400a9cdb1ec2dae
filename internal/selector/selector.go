// Package selector matches a small CSS selector subset against parsed HTML:
// tag, #id, .class (repeatable), [attr] and [attr=value] compounds joined by
// the descendant combinator.
package selector

import (
	"strings"

	"golang.org/x/net/html"
)

// Selector is a parsed descendant chain.
type Selector struct {
	parts []compound
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrKey string
	attrVal string
	hasVal  bool
}

// Parse parses a selector. An empty selector matches nothing.
func Parse(raw string) Selector {
	var sel Selector
	for _, part := range strings.Fields(raw) {
		sel.parts = append(sel.parts, parseCompound(part))
	}
	return sel
}

// Empty reports whether the selector has no parts.
func (s Selector) Empty() bool {
	return len(s.parts) == 0
}

// MatchAll returns the elements under root matching the selector, in
// document order and without duplicates.
func (s Selector) MatchAll(root *html.Node) []*html.Node {
	if root == nil || s.Empty() {
		return nil
	}
	var out []*html.Node
	Walk(root, func(n *html.Node) {
		if s.Match(n) {
			out = append(out, n)
		}
	})
	return out
}

// Match reports whether n matches the last compound and its ancestors match
// the preceding ones.
func (s Selector) Match(n *html.Node) bool {
	if s.Empty() || !s.parts[len(s.parts)-1].match(n) {
		return false
	}
	idx := len(s.parts) - 2
	for p := n.Parent; p != nil && idx >= 0; p = p.Parent {
		if s.parts[idx].match(p) {
			idx--
		}
	}
	return idx < 0
}

func parseCompound(sel string) compound {
	var c compound

	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attrPart := strings.TrimRight(sel[idx+1:], "]")
		sel = sel[:idx]
		if eq := strings.IndexByte(attrPart, '='); eq >= 0 {
			c.attrKey = attrPart[:eq]
			c.attrVal = strings.Trim(attrPart[eq+1:], `"'`)
			c.hasVal = true
		} else {
			c.attrKey = attrPart
		}
	}

	// Split on '#' and '.' markers while keeping the marker with its token.
	start := 0
	flush := func(end int) {
		token := sel[start:end]
		switch {
		case token == "":
		case token[0] == '#':
			c.id = token[1:]
		case token[0] == '.':
			if token[1:] != "" {
				c.classes = append(c.classes, token[1:])
			}
		default:
			c.tag = strings.ToLower(token)
		}
		start = end
	}
	for i := 0; i < len(sel); i++ {
		if i > start && (sel[i] == '#' || sel[i] == '.') {
			flush(i)
		}
	}
	flush(len(sel))
	return c
}

func (c compound) match(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && c.tag != "*" && n.Data != c.tag {
		return false
	}
	if c.id != "" && Attr(n, "id") != c.id {
		return false
	}
	for _, class := range c.classes {
		if !HasClass(n, class) {
			return false
		}
	}
	if c.attrKey != "" {
		val, ok := Lookup(n, c.attrKey)
		if !ok || (c.hasVal && val != c.attrVal) {
			return false
		}
	}
	return true
}

// Walk visits n and its descendants depth first.
func Walk(n *html.Node, visit func(*html.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		Walk(child, visit)
	}
}

// Attr returns an attribute value or "".
func Attr(n *html.Node, key string) string {
	val, _ := Lookup(n, key)
	return val
}

// Lookup returns an attribute value and whether it is present.
func Lookup(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Classes splits the class attribute.
func Classes(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}

// HasClass reports whether the class attribute lists class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces an attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute when present.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		out = append(out, attr)
	}
	n.Attr = out
}
