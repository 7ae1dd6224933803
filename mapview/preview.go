package mapview

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// Preview serves the most recently published map page on localhost so
// the map detail modal can hand the user a full interactive map. At
// most one page is held; publishing replaces it atomically.
type Preview struct {
	mu   sync.Mutex
	page []byte

	server *http.Server
}

func NewPreview(port int) *Preview {
	p := &Preview{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", p.handleIndex)
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	p.server = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return p
}

// Publish replaces the served page.
func (p *Preview) Publish(html string) {
	p.mu.Lock()
	p.page = []byte(html)
	p.mu.Unlock()
}

// URL returns the address the preview is reachable at.
func (p *Preview) URL() string {
	return "http://" + p.server.Addr + "/"
}

// Start begins serving in the background.
func (p *Preview) Start() {
	go func() {
		if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("map preview server error: %v", err)
		}
	}()
	log.Printf("map preview listening on %s", p.server.Addr)
}

// Shutdown stops the server, waiting up to the context deadline.
func (p *Preview) Shutdown(ctx context.Context) error {
	return p.server.Shutdown(ctx)
}

func (p *Preview) handleIndex(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	page := p.page
	p.mu.Unlock()
	if len(page) == 0 {
		http.Error(w, "no hay mapa publicado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
