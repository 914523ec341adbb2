package dom

// Click is the only event type the page behaviors react to.
const Click = "click"

// Event is a user activation delivered to the document. Target is the
// element the activation happened on.
type Event struct {
	Type   string
	Target *Element
}

// Handler reacts to one event delivery.
type Handler func(Event)

type listener struct {
	event string
	fn    Handler
}

// On registers fn for events of the given type on this element. The handler
// also fires when the event targets a descendant, after the descendant's own
// handlers.
func (e *Element) On(event string, fn Handler) {
	e.doc.listeners[e.n] = append(e.doc.listeners[e.n], listener{event: event, fn: fn})
}

// On registers a document-level handler. Document handlers run last, after
// every element handler on the target's ancestor chain.
func (d *Document) On(event string, fn Handler) {
	d.docListeners = append(d.docListeners, listener{event: event, fn: fn})
}

// Dispatch delivers ev to the target's handlers, then to each ancestor's
// handlers in order, then to the document-level handlers. There is no way
// for a handler to stop the remaining deliveries. The delivery path is fixed
// before the first handler runs.
func (d *Document) Dispatch(ev Event) {
	var path [][]listener
	if ev.Target != nil {
		for n := ev.Target.n; n != nil; n = n.Parent {
			path = append(path, snapshot(d.listeners[n]))
		}
	}
	path = append(path, snapshot(d.docListeners))
	for _, ls := range path {
		for _, l := range ls {
			if l.event == ev.Type {
				l.fn(ev)
			}
		}
	}
}

// ClickOn dispatches a click event targeting el.
func (d *Document) ClickOn(el *Element) {
	d.Dispatch(Event{Type: Click, Target: el})
}

// snapshot copies a listener slice so handlers registered during dispatch do
// not run for the event that registered them.
func snapshot(ls []listener) []listener {
	if len(ls) == 0 {
		return nil
	}
	out := make([]listener, len(ls))
	copy(out, ls)
	return out
}
