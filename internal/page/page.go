// Package page implements the reader-facing behaviors of a generated
// documentation page: persisted light/dark theme switching, copy controls on
// code blocks, and the collapsible navigation panel. The behaviors run
// against a dom.Document and reach the host only through the small
// capability interfaces in Environment, so the same engine drives the
// preview server, the batch enhancer, and the tests.
package page

import (
	"errors"
	"time"

	"pagelet/internal/dom"
	"pagelet/internal/eventloop"
)

// Markup contract shared with the site templates and the stylesheet. The
// behaviors locate their elements by these identifiers and communicate state
// back through these classes and attributes.
const (
	ThemeAttr = "data-theme"
	ThemeKey  = "pagelet-theme"
	StampAttr = "data-pagelet"

	IDThemeToggle = "theme-toggle"
	IDMenuToggle  = "menu-toggle"
	IDSidebar     = "sidebar"

	ClassCodeBlock = "code-block"
	ClassCopyBtn   = "copy-btn"
	ClassCopied    = "copied"
	ClassOpen      = "open"
)

// RevertDelay is how long a copy control shows its outcome before returning
// to the idle label.
const RevertDelay = 2 * time.Second

// ErrNoClipboard is the copy failure reported when the environment has no
// clipboard at all.
var ErrNoClipboard = errors.New("clipboard unavailable")

// ThemeStore persists the reader's explicit theme choice across visits.
// Get reports absence through its second return; Set overwrites.
type ThemeStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// ColorSchemeProbe reports the ambient color-scheme preference used when no
// theme has been persisted yet.
type ColorSchemeProbe interface {
	PrefersDark() bool
}

// Clipboard receives the text of a copy activation. A nil Clipboard in the
// Environment makes every copy activation fail.
type Clipboard interface {
	WriteText(text string) error
}

// Environment supplies the host capabilities the behaviors depend on. Zero
// fields get inert defaults: an empty store, a light-preferring probe, and a
// fresh loop. Clipboard has no default.
type Environment struct {
	Store     ThemeStore
	Probe     ColorSchemeProbe
	Clipboard Clipboard
	Loop      *eventloop.Loop
}

func (env *Environment) fill() {
	if env.Store == nil {
		env.Store = noopStore{}
	}
	if env.Probe == nil {
		env.Probe = lightProbe{}
	}
	if env.Loop == nil {
		env.Loop = eventloop.New()
	}
}

// Page is one document with the behaviors attached.
type Page struct {
	Doc    *dom.Document
	Theme  *ThemeController
	Blocks *CodeBlockEnhancer
	Nav    *NavToggle
}

// Setup attaches all three behaviors to doc and applies the initial theme.
// It runs synchronously: by the time it returns, the resolved theme is on
// the document, every code block carries its copy control, and the
// navigation listeners are bound. Call it once per document, before
// dispatching any events.
func Setup(doc *dom.Document, env Environment) *Page {
	env.fill()
	p := &Page{
		Doc:    doc,
		Theme:  newThemeController(doc, env),
		Blocks: newCodeBlockEnhancer(doc, env),
		Nav:    newNavToggle(doc),
	}
	p.Theme.Apply(p.Theme.Preferred())
	p.Theme.bind()
	p.Blocks.EnhanceAll()
	p.Nav.bind()
	if root := doc.Root(); root != nil {
		root.SetAttr(StampAttr, "1")
	}
	return p
}

// Stamped reports whether doc has already been through Setup, so hosts can
// avoid attaching the behaviors twice.
func Stamped(doc *dom.Document) bool {
	root := doc.Root()
	return root != nil && root.Attr(StampAttr) != ""
}

// ApplyPreferred resolves the current theme from store and probe and applies
// it to doc without touching the other behaviors. Hosts use it to refresh
// already enhanced documents.
func ApplyPreferred(doc *dom.Document, store ThemeStore, probe ColorSchemeProbe) Theme {
	env := Environment{Store: store, Probe: probe}
	env.fill()
	c := newThemeController(doc, env)
	t := c.Preferred()
	c.Apply(t)
	return t
}

type noopStore struct{}

func (noopStore) Get(string) (string, bool) { return "", false }
func (noopStore) Set(string, string)        {}

type lightProbe struct{}

func (lightProbe) PrefersDark() bool { return false }
