// Package dom provides the document surface the page behaviors run against:
// a parsed HTML tree with attribute, class-list, and text helpers plus the
// event dispatch the behavior layer listens on. It wraps golang.org/x/net/html
// nodes so documents round-trip losslessly between Parse and Render.
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page together with its registered event
// listeners. A Document is not safe for concurrent use; the behavior layer
// drives it from a single event loop.
type Document struct {
	root         *html.Node // html.DocumentNode
	listeners    map[*html.Node][]listener
	docListeners []listener
}

// Element is a handle to one element node of a Document. Handles are cheap
// and may be recreated freely; two handles refer to the same element when
// they wrap the same underlying node.
type Element struct {
	doc *Document
	n   *html.Node
}

// Parse reads an HTML page into a Document. Incomplete markup is normalized
// the way browsers do it (html/head/body are always present afterwards).
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root, listeners: make(map[*html.Node][]listener)}, nil
}

// ParseString is Parse over an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render serializes the document, including any modifications, back to HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// HTML returns the serialized document as a string.
func (d *Document) HTML() (string, error) {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Root returns the document's <html> element, the carrier of page-wide
// presentation attributes.
func (d *Document) Root() *Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "html" {
			return &Element{doc: d, n: c}
		}
	}
	return nil
}

// ByID returns the first element with the given id attribute, or nil.
func (d *Document) ByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if attrVal(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return &Element{doc: d, n: found}
}

// ElementsByTag returns all elements with the given tag name in document
// order.
func (d *Document) ElementsByTag(tag string) []*Element {
	var els []*Element
	walk(d.root, func(n *html.Node) bool {
		if n.Data == tag {
			els = append(els, &Element{doc: d, n: n})
		}
		return true
	})
	return els
}

// FirstByTag returns the first element with the given tag name, or nil.
func (d *Document) FirstByTag(tag string) *Element {
	els := d.ElementsByTag(tag)
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

// CreateElement returns a new detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{doc: d, n: &html.Node{Type: html.ElementNode, Data: tag}}
}

// walk visits every element node under n in depth-first document order until
// fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n.Type == html.ElementNode {
		if !fn(n) {
			return false
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.n.Data }

// ID returns the element's id attribute, if any.
func (e *Element) ID() string { return e.Attr("id") }

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string { return attrVal(e.n, name) }

// SetAttr sets the named attribute, replacing any prior value.
func (e *Element) SetAttr(name, value string) {
	for i := range e.n.Attr {
		if e.n.Attr[i].Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether the element's class attribute contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.Attr("class")) {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the element's class attribute if absent.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	e.SetAttr("class", strings.TrimSpace(e.Attr("class")+" "+name))
}

// RemoveClass removes name from the element's class attribute.
func (e *Element) RemoveClass(name string) {
	fields := strings.Fields(e.Attr("class"))
	kept := fields[:0]
	for _, c := range fields {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// Text returns the concatenated text content of the element's subtree,
// untrimmed.
func (e *Element) Text() string {
	var b strings.Builder
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(e.n)
	return b.String()
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(s string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	if s != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}

// Parent returns the element's parent element, or nil at the top of the
// tree.
func (e *Element) Parent() *Element {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return &Element{doc: e.doc, n: p}
}

// Children returns the element's child elements in order.
func (e *Element) Children() []*Element {
	var els []*Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			els = append(els, &Element{doc: e.doc, n: c})
		}
	}
	return els
}

// FirstByTag returns the first descendant with the given tag name, or nil.
// The element itself is not considered.
func (e *Element) FirstByTag(tag string) *Element {
	var found *html.Node
	for c := e.n.FirstChild; c != nil && found == nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if n.Data == tag {
				found = n
				return false
			}
			return true
		})
	}
	if found == nil {
		return nil
	}
	return &Element{doc: e.doc, n: found}
}

// Contains reports whether other is e itself or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	for n := other.n; n != nil; n = n.Parent {
		if n == e.n {
			return true
		}
	}
	return false
}

// Same reports whether two handles refer to the same element.
func (e *Element) Same(other *Element) bool {
	return other != nil && e.n == other.n
}

// AppendChild attaches a detached element as e's last child.
func (e *Element) AppendChild(child *Element) {
	e.n.AppendChild(child.n)
}

// WrapWith puts wrapper into e's position and moves e inside it, preserving
// e's place among its siblings. wrapper must be detached.
func (e *Element) WrapWith(wrapper *Element) {
	parent := e.n.Parent
	if parent == nil {
		return
	}
	parent.InsertBefore(wrapper.n, e.n)
	parent.RemoveChild(e.n)
	wrapper.n.AppendChild(e.n)
}
