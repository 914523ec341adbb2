package site

import (
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"pagelet/internal/dom"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// reloadHub tracks the browsers connected to the reload websocket and tells
// them when to refresh.
type reloadHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]string
}

func newReloadHub() *reloadHub {
	return &reloadHub{conns: make(map[*websocket.Conn]string)}
}

// handleWS upgrades the connection and parks it until the browser goes
// away. Clients never send anything meaningful; the read loop only notices
// disconnects.
func (h *reloadHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("reload: websocket upgrade: %v", err)
		return
	}

	id := uuid.New().String()
	h.mu.Lock()
	h.conns[conn] = id
	h.mu.Unlock()
	log.Printf("reload: client %s connected", id)

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
		log.Printf("reload: client %s disconnected", id)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("reload: client %s: %v", id, err)
			}
			return
		}
	}
}

// Broadcast tells every connected browser to refresh. Dead connections are
// dropped.
func (h *reloadHub) Broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, id := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			log.Printf("reload: client %s write failed: %v", id, err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// reloadScript is injected into served pages when live reload is on.
const reloadScript = `(function() {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/__pagelet/reload");
  ws.onmessage = function() { location.reload(); };
})();`

// injectReloadScript appends the reload snippet to the page body, once.
func injectReloadScript(doc *dom.Document) {
	body := doc.FirstByTag("body")
	if body == nil {
		return
	}
	for _, script := range doc.ElementsByTag("script") {
		if script.Attr("data-pagelet-reload") != "" {
			return
		}
	}
	script := doc.CreateElement("script")
	script.SetAttr("data-pagelet-reload", "1")
	script.SetText(reloadScript)
	body.AppendChild(script)
}
