package page

import "pagelet/internal/dom"

// NavToggle opens and closes the collapsible navigation panel. The open
// marker sits on both the panel and its control so the stylesheet can style
// them together, and clicks anywhere outside the pair close the panel.
type NavToggle struct {
	doc     *dom.Document
	panel   *dom.Element
	control *dom.Element
}

func newNavToggle(doc *dom.Document) *NavToggle {
	return &NavToggle{doc: doc}
}

// bind attaches the listeners when the page has both the control and the
// panel. Missing either one leaves the whole feature inert.
func (n *NavToggle) bind() {
	n.control = n.doc.ByID(IDMenuToggle)
	n.panel = n.doc.ByID(IDSidebar)
	if n.control == nil || n.panel == nil {
		n.control, n.panel = nil, nil
		return
	}

	n.control.On(dom.Click, func(dom.Event) {
		n.setOpen(!n.Open())
	})

	// Element handlers run before this one, so a click on the control has
	// already toggled by the time it arrives here. Excluding the control and
	// the panel keeps this handler from undoing that toggle or closing over
	// in-panel navigation.
	n.doc.On(dom.Click, func(ev dom.Event) {
		if !n.Open() {
			return
		}
		if n.panel.Contains(ev.Target) || n.control.Contains(ev.Target) {
			return
		}
		n.setOpen(false)
	})
}

// Bound reports whether the panel and control were both found at setup.
func (n *NavToggle) Bound() bool {
	return n.panel != nil && n.control != nil
}

// Open reports whether the panel is currently open. An unbound panel is
// never open.
func (n *NavToggle) Open() bool {
	return n.panel != nil && n.panel.HasClass(ClassOpen)
}

// setOpen moves the open marker on the panel and control together.
func (n *NavToggle) setOpen(open bool) {
	if open {
		n.panel.AddClass(ClassOpen)
		n.control.AddClass(ClassOpen)
	} else {
		n.panel.RemoveClass(ClassOpen)
		n.control.RemoveClass(ClassOpen)
	}
}
