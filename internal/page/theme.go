package page

import "pagelet/internal/dom"

// Theme is the page-wide presentation mode.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is one of the two recognized themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeController resolves, applies, and persists the page theme. Applying
// always writes the document attribute and the store together, so the two
// never drift apart.
type ThemeController struct {
	doc   *dom.Document
	store ThemeStore
	probe ColorSchemeProbe
}

func newThemeController(doc *dom.Document, env Environment) *ThemeController {
	return &ThemeController{doc: doc, store: env.Store, probe: env.Probe}
}

// Preferred returns the persisted theme when one exists, otherwise the theme
// matching the ambient color-scheme preference. Unrecognized persisted
// values are ignored.
func (c *ThemeController) Preferred() Theme {
	return Preferred(c.store, c.probe)
}

// Preferred resolves the effective theme from a store and a probe alone,
// for hosts that need the answer without a document.
func Preferred(store ThemeStore, probe ColorSchemeProbe) Theme {
	if v, ok := store.Get(ThemeKey); ok {
		if t := Theme(v); t.Valid() {
			return t
		}
	}
	if probe.PrefersDark() {
		return ThemeDark
	}
	return ThemeLight
}

// Apply puts t on the document root and persists it, overwriting any prior
// stored value. Unrecognized themes apply as light.
func (c *ThemeController) Apply(t Theme) {
	if !t.Valid() {
		t = ThemeLight
	}
	if root := c.doc.Root(); root != nil {
		root.SetAttr(ThemeAttr, string(t))
	}
	c.store.Set(ThemeKey, string(t))
}

// Current returns the theme the document is presently rendered in. A
// missing or unrecognized attribute reads as light.
func (c *ThemeController) Current() Theme {
	root := c.doc.Root()
	if root == nil {
		return ThemeLight
	}
	if t := Theme(root.Attr(ThemeAttr)); t.Valid() {
		return t
	}
	return ThemeLight
}

// Toggle applies the opposite of the document's current theme. It reads the
// document, not the store, so it stays correct even if something else
// changed the attribute.
func (c *ThemeController) Toggle() Theme {
	next := c.Current().Toggle()
	c.Apply(next)
	return next
}

// bind attaches the toggle control when the page has one. Pages without the
// control still get the initial theme applied.
func (c *ThemeController) bind() {
	btn := c.doc.ByID(IDThemeToggle)
	if btn == nil {
		return
	}
	btn.On(dom.Click, func(dom.Event) { c.Toggle() })
}
