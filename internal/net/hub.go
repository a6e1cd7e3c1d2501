package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"StrokePad/internal/state"
)

const (
	// WebsocketPath is where a hub accepts viewers.
	WebsocketPath = "/ws"

	writeWait  = 5 * time.Second
	peerBuffer = 16
)

// peer is one connected viewer. Only its own goroutine writes to conn.
type peer struct {
	conn *websocket.Conn
	send chan state.Snapshot
	once sync.Once
}

func (p *peer) close() {
	p.once.Do(func() { close(p.send) })
}

// Hub is used by the HOST to push snapshots to every connected viewer.
type Hub struct {
	upgrader websocket.Upgrader
	peers    map[*peer]bool
	latest   *state.Snapshot
	mu       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Viewers are other StrokePad instances, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]bool),
	}
}

// Publish sends snap to every viewer and remembers it for late joiners.
// A viewer that cannot keep up is disconnected.
func (h *Hub) Publish(snap state.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = &snap
	for p := range h.peers {
		select {
		case p.send <- snap:
		default:
			log.Printf("[HUB] Dropping slow viewer %s", p.conn.RemoteAddr())
			delete(h.peers, p)
			p.close()
		}
	}
}

// Peers returns the number of connected viewers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

func (h *Hub) add(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = true
	if h.latest != nil {
		p.send <- *h.latest
	}
	log.Printf("[HUB] Viewer connected from %s", p.conn.RemoteAddr())
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.peers[p] {
		delete(h.peers, p)
		p.close()
	}
	log.Printf("[HUB] Viewer %s disconnected", p.conn.RemoteAddr())
}

// ServeHTTP upgrades the request and streams snapshots to it.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HUB] Upgrade failed: %v", err)
		return
	}

	p := &peer{conn: conn, send: make(chan state.Snapshot, peerBuffer)}
	h.add(p)
	go h.writeLoop(p)

	// Viewers never send anything; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(p)
}

func (h *Hub) writeLoop(p *peer) {
	defer p.conn.Close()
	for snap := range p.send {
		if err := p.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("[HUB] Error preparing write to %s: %v", p.conn.RemoteAddr(), err)
			return
		}
		if err := p.conn.WriteJSON(snap); err != nil {
			log.Printf("[HUB] Error sending to %s: %v", p.conn.RemoteAddr(), err)
			return
		}
	}
	if err := p.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}
	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := p.conn.WriteMessage(websocket.CloseMessage, closing); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		log.Printf("[HUB] Close to %s not sent: %v", p.conn.RemoteAddr(), err)
	}
}

// Serve listens on addr until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(WebsocketPath, h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[HUB] Shutdown: %v", err)
		}
	}()

	log.Printf("[HUB] Listening on %s%s", addr, WebsocketPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving hub: %w", err)
	}
	return nil
}
