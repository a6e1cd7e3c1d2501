package net

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gorilla/websocket"

	"StrokePad/internal/state"
)

// URLScheme prefixes share links handed out by hosts.
const URLScheme = "strokepad://"

// ShareLink is the link a host shows to viewers.
func ShareLink(host string, port int) string {
	return fmt.Sprintf("%s%s:%d", URLScheme, host, port)
}

// WebsocketURL turns a share link (or a bare host:port) into the hub URL.
func WebsocketURL(link string) string {
	address := strings.TrimPrefix(link, URLScheme)
	address = strings.TrimSuffix(address, "/")
	return "ws://" + address + WebsocketPath
}

// Subscribe connects to a hub and calls handle for every snapshot with a
// well-formed stroke sequence. It returns nil when ctx ends and the read
// error when the host goes away.
func Subscribe(ctx context.Context, url string, handle func(state.Snapshot)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", url, err)
	}
	defer conn.Close()
	log.Printf("[CLIENT] Connected to %s as %s", url, conn.LocalAddr())

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var snap state.Snapshot
		if err := conn.ReadJSON(&snap); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading from host: %w", err)
		}
		if err := snap.Strokes.Validate(); err != nil {
			log.Printf("[CLIENT] Ignoring snapshot %d of %s: %v", snap.Revision, snap.SessionID, err)
			continue
		}
		handle(snap)
	}
}
