package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formdirty/internal/selector"
	"github.com/goliatone/go-formdirty/pkg/dirty"
)

// Form wraps a <form> element. Wrappers are cheap; two wrappers of the same
// element share the submit handler stored on the document.
type Form struct {
	doc  *Document
	node *html.Node
}

var (
	_ dirty.Form        = (*Form)(nil)
	_ dirty.Submittable = (*Form)(nil)
	_ dirty.Keyed       = (*Form)(nil)
)

func (f *Form) ID() string {
	return selector.Attr(f.node, "id")
}

func (f *Form) Name() string {
	return selector.Attr(f.node, "name")
}

func (f *Form) Classes() []string {
	return selector.Classes(f.node)
}

// Key identifies the underlying element.
func (f *Form) Key() any {
	return f.node
}

// Fields returns the form controls (input, textarea, select) in document
// order.
func (f *Form) Fields() []dirty.Field {
	elements := f.elements()
	out := make([]dirty.Field, 0, len(elements))
	for _, el := range elements {
		out = append(out, el)
	}
	return out
}

// Field looks up a control by name, falling back to its id. For radio groups
// it returns the first member; use Radio to address a specific one.
func (f *Form) Field(name string) (*Element, bool) {
	name = strings.TrimSpace(name)
	var byID *Element
	for _, el := range f.elements() {
		if el.Name() == name {
			return el, true
		}
		if byID == nil && el.ID() == name {
			byID = el
		}
	}
	return byID, byID != nil
}

// Radio returns the radio button of a group carrying the given value.
func (f *Form) Radio(name, value string) (*Element, bool) {
	for _, el := range f.elements() {
		if el.Type() == "radio" && el.Name() == name && el.Value() == value {
			return el, true
		}
	}
	return nil, false
}

// AppendField parses markup and appends the resulting controls to the form.
func (f *Form) AppendField(markup string) error {
	return appendMarkup(f.node, markup)
}

// AddClass adds a class to the form element.
func (f *Form) AddClass(class string) {
	addClass(f.node, class)
}

// Remove detaches the form from the page.
func (f *Form) Remove() {
	delete(f.doc.handlers, f.node)
	detach(f.node)
}

// SubmitHandler returns the handler currently attached to the form.
func (f *Form) SubmitHandler() dirty.SubmitHandler {
	return f.doc.handlers[f.node]
}

// SetSubmitHandler replaces the form's submit handler; nil removes it.
func (f *Form) SetSubmitHandler(handler dirty.SubmitHandler) {
	if handler == nil {
		delete(f.doc.handlers, f.node)
		return
	}
	f.doc.handlers[f.node] = handler
}

// Submit runs the submit handler. Without a handler the submission proceeds.
func (f *Form) Submit() bool {
	handler := f.SubmitHandler()
	if handler == nil {
		return true
	}
	return handler()
}

func (f *Form) elements() []*Element {
	var out []*Element
	for child := f.node.FirstChild; child != nil; child = child.NextSibling {
		selector.Walk(child, func(n *html.Node) {
			if n.Type != html.ElementNode {
				return
			}
			switch n.DataAtom {
			case atom.Input, atom.Textarea, atom.Select:
				out = append(out, &Element{form: f, node: n})
			}
		})
	}
	return out
}

func addClass(n *html.Node, class string) {
	class = strings.TrimSpace(class)
	if class == "" || selector.HasClass(n, class) {
		return
	}
	classes := append(selector.Classes(n), class)
	selector.SetAttr(n, "class", strings.Join(classes, " "))
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
