package site

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"pagelet/internal/ambient"
	"pagelet/internal/dom"
	"pagelet/internal/page"
	"pagelet/internal/prefs"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Install</title></head>
<body>
<button id="menu-toggle">Menu</button>
<nav id="sidebar"><a href="/">Home</a></nav>
<main>
<pre><code>go install pagelet@latest</code></pre>
</main>
</body>
</html>`

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return dir
}

func newTestServer(t *testing.T, cfg Config, store page.ThemeStore) *Server {
	t.Helper()
	if store == nil {
		store = prefs.NewMemory()
	}
	return New(cfg, store, ambient.Fixed(false))
}

func TestHealthCheck(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": samplePage})
	srv := newTestServer(t, Config{Dir: dir, Port: 0}, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": samplePage})
	srv := newTestServer(t, Config{Dir: dir, Port: 0, AllowAll: true}, nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestServePageEnhanced(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": samplePage})
	srv := newTestServer(t, Config{Dir: dir, Port: 0, Inject: true}, nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()

	if !strings.Contains(body, `data-theme="light"`) {
		t.Error("served page missing resolved theme attribute")
	}
	if !strings.Contains(body, `class="code-block"`) {
		t.Error("served page missing code block wrapper")
	}
	if !strings.Contains(body, "copy-btn") {
		t.Error("served page missing copy button")
	}
	if !strings.Contains(body, "/__pagelet/pagelet.js") {
		t.Error("served page missing injected script reference")
	}
	if !strings.Contains(body, "/__pagelet/pagelet.css") {
		t.Error("served page missing injected stylesheet reference")
	}

	// The source file itself is untouched.
	raw, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}
	if strings.Contains(string(raw), "code-block") {
		t.Error("serving modified the file on disk")
	}
}

func TestServePagePersistedTheme(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": samplePage})
	store := prefs.NewMemory()
	store.Set(page.ThemeKey, "dark")
	srv := newTestServer(t, Config{Dir: dir, Port: 0}, store)

	req := httptest.NewRequest("GET", "/index.html", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), `data-theme="dark"`) {
		t.Error("persisted dark theme not applied to served page")
	}
}

func TestServeStampedPageRefreshesTheme(t *testing.T) {
	// A page enhanced ahead of time gets its theme updated but is not
	// wrapped a second time.
	store := prefs.NewMemory()
	enhanced := enhanceAheadOfTime(t, samplePage)
	dir := writeSite(t, map[string]string{"index.html": enhanced})

	store.Set(page.ThemeKey, "dark")
	srv := newTestServer(t, Config{Dir: dir, Port: 0}, store)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, `data-theme="dark"`) {
		t.Error("stamped page did not get its theme refreshed")
	}
	if got := strings.Count(body, `class="code-block"`); got != 1 {
		t.Errorf("code block wrapped %d times, want 1", got)
	}
}

func enhanceAheadOfTime(t *testing.T, src string) string {
	t.Helper()
	doc, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("parsing sample: %v", err)
	}
	page.Setup(doc, page.Environment{Store: prefs.NewMemory()})
	out, err := doc.HTML()
	if err != nil {
		t.Fatalf("rendering sample: %v", err)
	}
	return out
}

func TestServeNonPageVerbatim(t *testing.T) {
	css := "body{margin:0}"
	dir := writeSite(t, map[string]string{
		"index.html": samplePage,
		"style.css":  css,
	})
	srv := newTestServer(t, Config{Dir: dir, Port: 0}, nil)

	req := httptest.NewRequest("GET", "/style.css", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != css {
		t.Errorf("non-page body = %q, want %q", w.Body.String(), css)
	}
}

func TestServeMissingPage(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": samplePage})
	srv := newTestServer(t, Config{Dir: dir, Port: 0}, nil)

	req := httptest.NewRequest("GET", "/nope.html", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestServeDirectoryListing(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"guide/install.html": samplePage,
		"guide/notes.txt":    "notes",
	})
	srv := newTestServer(t, Config{Dir: dir, Port: 0}, nil)

	req := httptest.NewRequest("GET", "/guide/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "install.html") {
		t.Error("listing missing install.html entry")
	}
	if !strings.Contains(body, "Index of /guide") {
		t.Error("listing missing heading")
	}
}

func TestAssetRoutes(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": samplePage})
	srv := newTestServer(t, Config{Dir: dir, Port: 0}, nil)

	for _, path := range []string{"/__pagelet/pagelet.js", "/__pagelet/pagelet.css"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "pagelet") {
			t.Errorf("%s: unexpected body", path)
		}
	}
}

func TestThemeAPI(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": samplePage})
	store := prefs.NewMemory()
	srv := newTestServer(t, Config{Dir: dir, Port: 0}, store)

	getTheme := func() page.Theme {
		t.Helper()
		req := httptest.NewRequest("GET", "/api/theme", nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("GET /api/theme: expected 200, got %d", w.Code)
		}
		var resp themeResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return resp.Theme
	}

	if got := getTheme(); got != page.ThemeLight {
		t.Errorf("initial theme = %q, want light", got)
	}

	req := httptest.NewRequest("POST", "/api/theme/toggle", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST toggle: expected 200, got %d", w.Code)
	}

	if got := getTheme(); got != page.ThemeDark {
		t.Errorf("theme after toggle = %q, want dark", got)
	}
	if v, _ := store.Get(page.ThemeKey); v != "dark" {
		t.Errorf("stored theme after toggle = %q, want dark", v)
	}

	// Pages served after the toggle come out dark.
	req = httptest.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `data-theme="dark"`) {
		t.Error("page served after toggle is not dark")
	}
}

func TestReloadScriptInjected(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": samplePage})
	srv := newTestServer(t, Config{Dir: dir, Port: 0, Reload: true}, nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "data-pagelet-reload") {
		t.Error("reload snippet missing from served page")
	}

	// Without reload, no snippet.
	srv = newTestServer(t, Config{Dir: dir, Port: 0}, nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if strings.Contains(w.Body.String(), "data-pagelet-reload") {
		t.Error("reload snippet injected with reload disabled")
	}
}

func TestReloadWebSocket(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": samplePage})
	srv := newTestServer(t, Config{Dir: dir, Port: 0, Reload: true}, nil)

	server := httptest.NewServer(srv.Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/__pagelet/reload"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	srv.hub.Broadcast()

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("broadcast message = %q, want %q", msg, "reload")
	}
}
