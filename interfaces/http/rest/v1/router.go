package v1

import (
	"net/http"

	"github.com/gorilla/mux"

	"graphd/interfaces/http/rest/handlers"
)

// Prefixes lists the paths served by the legacy router
var Prefixes = []string{"/api/node", "/api/connect", "/api/shortest-path", "/api/cycles"}

// Param reads a gorilla path variable
func Param(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// NewRouter creates the legacy API router. It matches full paths so it can
// be mounted anywhere under the main router.
func NewRouter(h *handlers.LegacyHandler) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/node", h.CreateNode).Methods(http.MethodPost)
	api.HandleFunc("/node/{id}", h.GetNode).Methods(http.MethodGet)
	api.HandleFunc("/node/{id}", h.UpdateNode).Methods(http.MethodPut)
	api.HandleFunc("/node/{id}", h.DeleteNode).Methods(http.MethodDelete)

	api.HandleFunc("/connect/{src}/{dst}", h.Connect).Methods(http.MethodGet)
	api.HandleFunc("/connect/{src}/{dst}", h.Disconnect).Methods(http.MethodDelete)

	api.HandleFunc("/shortest-path/{src}/{dst}", h.ShortestPath).Methods(http.MethodGet)
	api.HandleFunc("/cycles", h.FindCycles).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	})

	return router
}
