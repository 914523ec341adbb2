package site

import (
	"log"
	"net/http"
	"os"
	"path"
	"sort"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"pagelet/internal/assets"
)

// serveListing renders a directory without an index page as a browsable
// file list.
func (s *Server) serveListing(w http.ResponseWriter, r *http.Request, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		http.Error(w, "reading directory", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := listingPage(r.URL.Path, entries).Render(w); err != nil {
		log.Printf("rendering listing for %s: %v", dir, err)
	}
}

// listingPage builds the directory listing document. Directories sort
// before files; hidden entries are left out.
func listingPage(urlPath string, entries []os.DirEntry) gomponents.Node {
	sorted := make([]os.DirEntry, 0, len(entries))
	for _, e := range entries {
		if e.Name()[0] == '.' {
			continue
		}
		sorted = append(sorted, e)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsDir() != sorted[j].IsDir() {
			return sorted[i].IsDir()
		}
		return sorted[i].Name() < sorted[j].Name()
	})

	items := make([]gomponents.Node, 0, len(sorted)+1)
	if urlPath != "/" {
		items = append(items, html.Li(html.A(html.Href(path.Join(urlPath, "..")), gomponents.Text(".."))))
	}
	for _, e := range sorted {
		name := e.Name()
		href := path.Join(urlPath, name)
		if e.IsDir() {
			name += "/"
			href += "/"
		}
		items = append(items, html.Li(html.A(html.Href(href), gomponents.Text(name))))
	}

	return html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text("Index of "+urlPath)),
			html.Link(html.Rel("stylesheet"), html.Href("/__pagelet/"+assets.StylesheetName)),
		),
		html.Body(
			html.Main(
				html.H1(gomponents.Text("Index of "+urlPath)),
				html.Ul(gomponents.Group(items)),
			),
		),
	)
}
