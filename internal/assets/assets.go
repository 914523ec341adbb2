// Package assets carries the browser-side runtime: the script that attaches
// the page behaviors in a real browser and the stylesheet that renders their
// markers. Both are embedded so the serve and enhance commands ship them
// without a build step.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pagelet/internal/dom"
)

//go:embed static
var staticFS embed.FS

// Asset file names, as referenced from enhanced pages.
const (
	ScriptName     = "pagelet.js"
	StylesheetName = "pagelet.css"
)

// Script returns the embedded behavior script.
func Script() []byte {
	return mustRead(ScriptName)
}

// Stylesheet returns the embedded stylesheet.
func Stylesheet() []byte {
	return mustRead(StylesheetName)
}

func mustRead(name string) []byte {
	data, err := staticFS.ReadFile("static/" + name)
	if err != nil {
		panic(fmt.Sprintf("embedded asset %s missing: %v", name, err))
	}
	return data
}

// Handler serves the embedded assets over HTTP. Paths are relative to the
// mount point: /pagelet.js and /pagelet.css.
func Handler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("embedded asset root missing: %v", err))
	}
	return http.FileServer(http.FS(sub))
}

// WriteTo writes both assets into dir, creating it if needed.
func WriteTo(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating asset directory: %w", err)
	}
	for _, name := range []string{ScriptName, StylesheetName} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, mustRead(name), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// InjectRefs adds the stylesheet link and script tag to doc so a browser
// loads the runtime. prefix is the URL path the assets are served under.
// Pages that already reference the assets, under any prefix, are left
// alone.
func InjectRefs(doc *dom.Document, prefix string) {
	head := doc.FirstByTag("head")
	body := doc.FirstByTag("body")
	if head == nil || body == nil {
		return
	}

	if !hasAssetRef(doc, "link", "href", StylesheetName) {
		link := doc.CreateElement("link")
		link.SetAttr("rel", "stylesheet")
		link.SetAttr("href", prefix+StylesheetName)
		head.AppendChild(link)
	}

	if !hasAssetRef(doc, "script", "src", ScriptName) {
		script := doc.CreateElement("script")
		script.SetAttr("src", prefix+ScriptName)
		script.SetAttr("defer", "")
		body.AppendChild(script)
	}
}

func hasAssetRef(doc *dom.Document, tag, attr, name string) bool {
	for _, el := range doc.ElementsByTag(tag) {
		if v := el.Attr(attr); v == name || strings.HasSuffix(v, "/"+name) {
			return true
		}
	}
	return false
}
