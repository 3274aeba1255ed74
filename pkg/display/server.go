package display

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/leoniltonftc/corrida/pkg/export"
	"github.com/leoniltonftc/corrida/pkg/model"
)

var upgrader = websocket.Upgrader{} // use default options

// DocumentProvider yields the current visible document.
type DocumentProvider interface {
	Current() model.Document
}

// Message is the envelope pushed over the live websocket.
type Message struct {
	MessageType string `json:"type"`
	Body        any    `json:"body,omitempty"`
}

type Server struct {
	docs      DocumentProvider
	mu        sync.Mutex
	obsMaster bool
}

func NewServer(r *mux.Router, docs DocumentProvider) *Server {
	s := &Server{
		docs:      docs,
		obsMaster: true,
	}
	s.addHandlers(r)
	return s
}

func (s *Server) addHandlers(r *mux.Router) {
	r.HandleFunc("/public", s.pageHandler(false))
	r.HandleFunc("/tv", s.pageHandler(true))
	r.HandleFunc("/obs", s.overlayHandler())
	r.HandleFunc("/ws", s.websocketHandler())
	r.HandleFunc("/export/classificacao.csv", s.csvHandler("classificacao.csv", export.StandingsCSV))
	r.HandleFunc("/export/equipes.csv", s.csvHandler("equipes.csv", export.TeamsCSV))
	r.HandleFunc("/export/corridas.csv", s.csvHandler("corridas.csv", export.RacesCSV))
	r.HandleFunc("/export/resultados.csv", s.csvHandler("resultados.csv", export.ResultsCSV))
	r.HandleFunc("/report/classificacao", s.reportHandler())
}

// SetOverlayEnabled is the master switch for the OBS overlay, toggled from
// the admin surface.
func (s *Server) SetOverlayEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obsMaster = enabled
}

func (s *Server) OverlayEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.obsMaster
}

func (s *Server) liveView() LiveView {
	return BuildLiveView(s.docs.Current(), s.OverlayEnabled())
}

func (s *Server) pageHandler(tv bool) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := pageTmpl.Execute(w, struct {
			View LiveView
			TV   bool
		}{View: s.liveView(), TV: tv})
		if err != nil {
			log.Printf("error rendering display page: %s\n", err.Error())
		}
	}
}

func (s *Server) overlayHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := overlayTmpl.Execute(w, struct {
			View LiveView
		}{View: s.liveView()})
		if err != nil {
			log.Printf("error rendering overlay: %s\n", err.Error())
		}
	}
}

// websocketHandler pushes the live view on connect and then once a second
// until the client goes away. The first client message is only read to
// complete the handshake.
func (s *Server) websocketHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}
		defer c.Close()
		mt, message, err := c.ReadMessage()
		if err != nil {
			log.Println("read:", err)
			return
		}
		log.Printf("recv: %s (%d)", message, mt)
		// first frame goes out on connect, the ticker keeps it fresh
		if err := c.WriteJSON(Message{MessageType: "liveView", Body: s.liveView()}); err != nil {
			log.Println("write:", err)
			return
		}
		t := time.NewTicker(1 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if err := c.WriteJSON(Message{MessageType: "liveView", Body: s.liveView()}); err != nil {
					log.Println("write:", err)
					return
				}
			case <-r.Context().Done():
				log.Print("websocket closed\n")
				return
			}
		}
	}
}

func (s *Server) csvHandler(filename string, render func(model.Document) []byte) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		if _, err := w.Write(render(s.docs.Current())); err != nil {
			log.Printf("error writing %s: %s\n", filename, err.Error())
		}
	}
}

func (s *Server) reportHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := export.ClassificationReportHTML(s.docs.Current())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(report)
	}
}
