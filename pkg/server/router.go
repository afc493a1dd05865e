package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amiskov/simple-ledger/pkg/middleware"
)

func NewRouter(h *Handler, mw *middleware.LoggingMiddleware) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/extract", h.Extract).Methods(http.MethodGet)
	api.HandleFunc("/deposit", h.Deposit).Methods(http.MethodPost)
	api.HandleFunc("/withdraw", h.Withdraw).Methods(http.MethodPost)
	api.HandleFunc("/reset", h.Reset).Methods(http.MethodPost)

	r.Use(mw.SetupTracing)
	r.Use(mw.SetupLogging)
	r.Use(mw.AccessLog)
	r.Use(mw.Recover)

	return r
}
