package htmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formdirty/internal/selector"
	"github.com/goliatone/go-formdirty/pkg/dirty"
)

// ErrNoForm is returned when a form lookup by identifier fails.
var ErrNoForm = errors.New("htmldoc: form not found")

// Document is a mutable, in-memory HTML page. It is not safe for concurrent
// use; drive it from one goroutine, as a browser drives its DOM.
type Document struct {
	root     *html.Node
	handlers map[*html.Node]dirty.SubmitHandler
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	return &Document{
		root:     root,
		handlers: make(map[*html.Node]dirty.SubmitHandler),
	}, nil
}

// ParseString parses an HTML page held in memory.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Replace swaps the page content, as a navigation or full re-render would.
// Submit handlers attached to the previous forms are dropped.
func (d *Document) Replace(r io.Reader) error {
	root, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("htmldoc: parse: %w", err)
	}
	d.root = root
	d.handlers = make(map[*html.Node]dirty.SubmitHandler)
	return nil
}

// Forms implements dirty.Scope over the whole page.
func (d *Document) Forms() []dirty.Form {
	return d.formsUnder([]*html.Node{d.root})
}

// Within returns a scope restricted to the subtrees matching a selector. The
// matched elements themselves count, so Within("#checkout") on a form id
// yields that form.
func (d *Document) Within(sel string) dirty.Scope {
	return scope{doc: d, sel: selector.Parse(sel)}
}

// Form looks up a form by id, falling back to its name.
func (d *Document) Form(id string) (*Form, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	var byName *Form
	for _, node := range d.formNodes([]*html.Node{d.root}) {
		if selector.Attr(node, "id") == id {
			return d.wrapForm(node), true
		}
		if byName == nil && selector.Attr(node, "name") == id {
			byName = d.wrapForm(node)
		}
	}
	return byName, byName != nil
}

// Submit triggers the submit handler of a form and reports whether the
// submission went ahead.
func (d *Document) Submit(id string) (bool, error) {
	form, ok := d.Form(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNoForm, id)
	}
	return form.Submit(), nil
}

// AppendForm parses markup and appends the resulting nodes to the body.
func (d *Document) AppendForm(markup string) error {
	return appendMarkup(d.body(), markup)
}

// Render serialises the current page.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("htmldoc: render: %w", err)
	}
	return buf.String(), nil
}

func (d *Document) body() *html.Node {
	var body *html.Node
	selector.Walk(d.root, func(n *html.Node) {
		if body == nil && n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
		}
	})
	if body == nil {
		return d.root
	}
	return body
}

func (d *Document) formNodes(roots []*html.Node) []*html.Node {
	seen := make(map[*html.Node]struct{})
	var out []*html.Node
	for _, root := range roots {
		selector.Walk(root, func(n *html.Node) {
			if n.Type != html.ElementNode || n.DataAtom != atom.Form {
				return
			}
			if _, dup := seen[n]; dup {
				return
			}
			seen[n] = struct{}{}
			out = append(out, n)
		})
	}
	return out
}

func (d *Document) formsUnder(roots []*html.Node) []dirty.Form {
	nodes := d.formNodes(roots)
	out := make([]dirty.Form, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, d.wrapForm(node))
	}
	return out
}

func (d *Document) wrapForm(node *html.Node) *Form {
	return &Form{doc: d, node: node}
}

type scope struct {
	doc *Document
	sel selector.Selector
}

func (s scope) Forms() []dirty.Form {
	return s.doc.formsUnder(s.sel.MatchAll(s.doc.root))
}

func appendMarkup(parent *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return fmt.Errorf("htmldoc: parse fragment: %w", err)
	}
	for _, node := range nodes {
		parent.AppendChild(node)
	}
	return nil
}
