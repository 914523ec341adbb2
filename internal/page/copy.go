package page

import (
	"pagelet/internal/dom"
	"pagelet/internal/eventloop"
)

// CodeBlockEnhancer attaches a copy control to every code block on the
// page. Enhancement is a single pass over the blocks present at setup;
// blocks added later are not picked up.
type CodeBlockEnhancer struct {
	doc  *dom.Document
	clip Clipboard
	loop *eventloop.Loop
}

func newCodeBlockEnhancer(doc *dom.Document, env Environment) *CodeBlockEnhancer {
	return &CodeBlockEnhancer{doc: doc, clip: env.Clipboard, loop: env.Loop}
}

// EnhanceAll wraps each <pre> in a marked container and adds its copy
// button. Blocks keep their position among their siblings.
func (e *CodeBlockEnhancer) EnhanceAll() int {
	pres := e.doc.ElementsByTag("pre")
	for _, pre := range pres {
		e.enhance(pre)
	}
	return len(pres)
}

func (e *CodeBlockEnhancer) enhance(pre *dom.Element) {
	wrapper := e.doc.CreateElement("div")
	wrapper.AddClass(ClassCodeBlock)
	pre.WrapWith(wrapper)

	btn := e.doc.CreateElement("button")
	btn.AddClass(ClassCopyBtn)
	btn.SetText(labelCopy)
	wrapper.AppendChild(btn)

	btn.On(dom.Click, func(dom.Event) {
		e.requestCopy(btn, CopyText(pre))
	})
}

// CopyText is what a copy activation on pre puts on the clipboard: the text
// of the nested <code> element when there is one, the block's own text
// otherwise. No whitespace is trimmed.
func CopyText(pre *dom.Element) string {
	if code := pre.FirstByTag("code"); code != nil {
		return code.Text()
	}
	return pre.Text()
}

// requestCopy submits the clipboard write to the loop and settles the
// control's label from the result.
func (e *CodeBlockEnhancer) requestCopy(btn *dom.Element, text string) {
	e.loop.Post(func() {
		err := ErrNoClipboard
		if e.clip != nil {
			err = e.clip.WriteText(text)
		}
		e.loop.Post(func() { e.settle(btn, err) })
	})
}

// settle shows the outcome on the control and schedules its revert. Every
// activation schedules its own revert; rapid repeat clicks may flicker, and
// the last timer leaves the control idle.
func (e *CodeBlockEnhancer) settle(btn *dom.Element, err error) {
	if err != nil {
		btn.SetText(labelError)
	} else {
		btn.SetText(labelCopied)
		btn.AddClass(ClassCopied)
	}
	e.loop.After(RevertDelay, func() {
		btn.SetText(labelCopy)
		btn.RemoveClass(ClassCopied)
	})
}

// Copy control labels, also written literally into the stylesheet's
// selectors and the site templates.
const (
	labelCopy   = "Copy"
	labelCopied = "Copied!"
	labelError  = "Error"
)
