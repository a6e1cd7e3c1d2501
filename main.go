package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"

	"StrokePad/internal/config"
	sharenet "StrokePad/internal/net"
	"StrokePad/internal/sketch"
	"StrokePad/internal/state"
	"StrokePad/internal/ui"
)

const discoverTimeout = 3 * time.Second

func main() {
	configPath := flag.String("config", "strokepad.toml", "Path to the TOML configuration file")
	connect := flag.String("connect", "", "Open a host's share link ("+sharenet.URLScheme+"host:port) as a viewer")
	discover := flag.Bool("discover", false, "Find a host on the local network and view it")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	// Share links are also handed over as the first argument by the OS.
	link := *connect
	if link == "" && flag.NArg() > 0 && strings.HasPrefix(flag.Arg(0), sharenet.URLScheme) {
		link = flag.Arg(0)
	}

	switch {
	case link != "":
		runViewer(cfg, sharenet.WebsocketURL(link))
	case *discover:
		addr, err := sharenet.Discover(discoverTimeout)
		if err != nil {
			log.Fatalf("Discovery: %v", err)
		}
		runViewer(cfg, sharenet.WebsocketURL(addr))
	default:
		runHost(cfg, *configPath)
	}
}

func strokesJSON(seq sketch.Sequence) string {
	data, err := json.Marshal(seq)
	if err != nil {
		return fmt.Sprint([]sketch.Point(seq))
	}
	return string(data)
}

func runHost(cfg config.Config, configPath string) {
	log.Println("Starting as HOST")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.New()
	session := state.NewSession(cfg.Canvas.Width, cfg.Canvas.Height)
	pad := ui.NewPadWidget(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height), cfg.Style())
	pad.SessionID = session.ID()

	var hub *sharenet.Hub
	shareLink := ""
	if cfg.Share.Enabled {
		hub = sharenet.NewHub()
		go func() {
			if err := hub.Serve(ctx, fmt.Sprintf(":%d", cfg.Share.Port)); err != nil {
				log.Fatalf("Failed to start hub: %v", err)
			}
		}()
		shareLink = sharenet.ShareLink(sharenet.OutgoingIP(), cfg.Share.Port)

		if cfg.Share.Advertise {
			server, err := sharenet.Advertise(cfg.Share.Port)
			if err != nil {
				log.Printf("[HOST] Not advertising: %v", err)
			} else {
				defer server.Shutdown()
			}
		}
	}

	if hub != nil {
		pad.Viewers = hub.Peers
	}
	pad.OnStrokes = func(seq sketch.Sequence) {
		log.Printf("[PAD] Current strokes: %s", strokesJSON(seq))
		if hub != nil {
			hub.Publish(session.Snapshot(seq))
		}
	}

	go func() {
		err := config.Watch(ctx, configPath, config.DefaultDebounce, func(c config.Config) {
			fyne.Do(func() { pad.SetStyle(c.Style()) })
		})
		if err != nil {
			log.Printf("[CONFIG] Not watching %s: %v", configPath, err)
		}
	}()

	win := ui.NewHostWindow(a, pad, shareLink)
	win.ShowAndRun()
}

func runViewer(cfg config.Config, url string) {
	log.Println("Starting as VIEWER of", url)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.New()
	viewer := ui.NewViewerWidget(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height), cfg.Style())
	status := widget.NewLabel("Connecting to " + url)

	go func() {
		err := sharenet.Subscribe(ctx, url, func(snap state.Snapshot) {
			fyne.Do(func() {
				if viewer.Apply(snap) {
					status.SetText(fmt.Sprintf("Session %s, revision %d (%d sessions)", snap.SessionID, snap.Revision, viewer.SessionCount()))
				}
			})
		})
		if err != nil {
			log.Printf("[CLIENT] %v", err)
			fyne.Do(func() { status.SetText(fmt.Sprintf("Disconnected from host: %v", err)) })
		}
	}()

	win := ui.NewViewerWindow(a, viewer, status)
	win.ShowAndRun()
}
