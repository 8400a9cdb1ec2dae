package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formdirty/internal/selector"
	"github.com/goliatone/go-formdirty/pkg/dirty"
)

// Element wraps a form control. Values follow browser semantics: inputs read
// their value attribute (checkboxes and radios default to "on"), textareas
// their text, selects the value of the selected option.
type Element struct {
	form *Form
	node *html.Node
}

var _ dirty.Field = (*Element)(nil)

func (e *Element) ID() string {
	return selector.Attr(e.node, "id")
}

func (e *Element) Name() string {
	return selector.Attr(e.node, "name")
}

func (e *Element) Classes() []string {
	return selector.Classes(e.node)
}

// Type reports the control type the way the DOM's .type property does.
func (e *Element) Type() string {
	switch e.node.DataAtom {
	case atom.Textarea:
		return "textarea"
	case atom.Select:
		if _, multiple := selector.Lookup(e.node, "multiple"); multiple {
			return "select-multiple"
		}
		return "select-one"
	}
	kind := strings.ToLower(strings.TrimSpace(selector.Attr(e.node, "type")))
	if kind == "" {
		return "text"
	}
	return kind
}

func (e *Element) Value() string {
	switch e.node.DataAtom {
	case atom.Textarea:
		return textContent(e.node)
	case atom.Select:
		return strings.Join(e.selected(), ",")
	}
	if val, ok := selector.Lookup(e.node, "value"); ok {
		return val
	}
	switch e.Type() {
	case "checkbox", "radio":
		return "on"
	}
	return ""
}

func (e *Element) Checked() bool {
	_, ok := selector.Lookup(e.node, "checked")
	return ok
}

// SetValue updates the control value. For selects it selects the options
// matching the comma separated values.
func (e *Element) SetValue(value string) {
	switch e.node.DataAtom {
	case atom.Textarea:
		for child := e.node.FirstChild; child != nil; {
			next := child.NextSibling
			e.node.RemoveChild(child)
			child = next
		}
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	case atom.Select:
		e.Select(strings.Split(value, ",")...)
	default:
		selector.SetAttr(e.node, "value", value)
	}
}

// SetChecked toggles a checkbox or radio. Checking a radio unchecks the other
// members of its group.
func (e *Element) SetChecked(checked bool) {
	if !checked {
		selector.RemoveAttr(e.node, "checked")
		return
	}
	if e.Type() == "radio" && e.form != nil {
		for _, other := range e.form.elements() {
			if other.node != e.node && other.Type() == "radio" && other.Name() == e.Name() {
				selector.RemoveAttr(other.node, "checked")
			}
		}
	}
	selector.SetAttr(e.node, "checked", "checked")
}

// Select marks the options carrying the given values as selected and clears
// the rest.
func (e *Element) Select(values ...string) {
	want := make(map[string]struct{}, len(values))
	for _, v := range values {
		want[v] = struct{}{}
	}
	for _, opt := range e.options() {
		if _, ok := want[optionValue(opt)]; ok {
			selector.SetAttr(opt, "selected", "selected")
			continue
		}
		selector.RemoveAttr(opt, "selected")
	}
}

// AddClass adds a class to the control.
func (e *Element) AddClass(class string) {
	addClass(e.node, class)
}

// Remove detaches the control from its form.
func (e *Element) Remove() {
	detach(e.node)
}

func (e *Element) options() []*html.Node {
	var out []*html.Node
	selector.Walk(e.node, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			out = append(out, n)
		}
	})
	return out
}

func (e *Element) selected() []string {
	options := e.options()
	var values []string
	for _, opt := range options {
		if _, ok := selector.Lookup(opt, "selected"); ok {
			values = append(values, optionValue(opt))
		}
	}
	if len(values) == 0 && e.Type() == "select-one" && len(options) > 0 {
		return []string{optionValue(options[0])}
	}
	return values
}

func optionValue(opt *html.Node) string {
	if val, ok := selector.Lookup(opt, "value"); ok {
		return val
	}
	return strings.Join(strings.Fields(textContent(opt)), " ")
}

func textContent(n *html.Node) string {
	var b strings.Builder
	selector.Walk(n, func(child *html.Node) {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	})
	return b.String()
}
