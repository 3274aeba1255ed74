package webserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Manager owns the HTTP surface: display pages, the live websocket feed and
// the export endpoints register themselves on its router.
type Manager struct {
	r    *mux.Router
	addr string
}

func NewManager(addr string) *Manager {
	return &Manager{
		r:    mux.NewRouter(),
		addr: addr,
	}
}

func (m *Manager) Router() *mux.Router {
	return m.r
}

// Serve runs the server until the context is cancelled, then shuts down
// gracefully.
func (m *Manager) Serve(ctx context.Context) {
	srv := &http.Server{
		Addr: m.addr,
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.r,
	}

	go func() {
		log.Printf("webserver listening on %s\n", m.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Println("webserver shutting down")
}
