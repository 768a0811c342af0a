package server

import (
	"log"
	"net/http"

	"github.com/caseops/casectl/pkg/api"
	"github.com/caseops/casectl/pkg/dossier"
)

// Server is the local JSON console: it proxies the backend through the
// shared client, serving normalized records, field descriptors and the
// cached dossier to whatever front end sits on top.
type Server struct {
	Client   *api.Client
	Fetcher  *dossier.Fetcher
	Username string
	Password string
}

func New(client *api.Client, fetcher *dossier.Fetcher, user, pass string) *Server {
	return &Server{
		Client:   client,
		Fetcher:  fetcher,
		Username: user,
		Password: pass,
	}
}

func (s *Server) Start(addr string) error {
	log.Printf("Starting console server on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/records/{type}", s.basicAuth(s.handleList))
	mux.HandleFunc("GET /api/records/{type}/{id}", s.basicAuth(s.handleRecord))
	mux.HandleFunc("PATCH /api/records/{type}/{id}", s.basicAuth(s.handleUpdate))
	mux.HandleFunc("DELETE /api/records/{type}/{id}", s.basicAuth(s.handleDelete))
	mux.HandleFunc("GET /api/dossier/{id}", s.basicAuth(s.handleDossier))
	mux.HandleFunc("DELETE /api/dossier/{id}", s.basicAuth(s.handleDossierClear))

	return mux
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
