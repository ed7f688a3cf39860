package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"ushay-etl/internal/domain"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(containerHandler *ContainerHandler, logger domain.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestLogger(logger))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "ushay-etl"})
	}).Methods(http.MethodGet)

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/containers/inspect", containerHandler.InspectContainer).Methods(http.MethodPost)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:4173",
			"http://localhost:3000",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
