package http

import (
	"github.com/gorilla/mux"
)

// NewRouter configures HTTP routes.
func NewRouter(handler *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", handler.Home).Methods("GET")
	r.HandleFunc("/api/formats", handler.ListFormats).Methods("GET")
	r.HandleFunc("/api/download", handler.StartDownload).Methods("POST")
	r.HandleFunc("/api/status/{id}", handler.Status).Methods("GET")
	r.HandleFunc("/api/file/{id}", handler.File).Methods("GET")
	r.HandleFunc("/api/health", handler.Health).Methods("GET")
	return r
}
