package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docqa/internal/answer"
	"docqa/internal/handlers"
	"docqa/internal/ingest"
	"docqa/internal/storage"
	"docqa/internal/vectorindex"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Index         vectorindex.Index
	Pipeline      *ingest.Pipeline
	Generator     *answer.Generator
	Conversations storage.ConversationStore
	DB            *sql.DB
	UploadDir     string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	uploadHandler := handlers.NewUploadHandler(deps.Pipeline, deps.UploadDir)
	queryHandler := handlers.NewQueryHandler(deps.Index, deps.Generator, deps.Conversations)
	documentsHandler := handlers.NewDocumentsHandler(deps.Index, deps.Generator)
	statsHandler := handlers.NewStatsHandler(deps.Index)
	conversationsHandler := handlers.NewConversationsHandler(deps.Conversations)
	healthHandler := handlers.NewHealthHandler(deps.Index, deps.DB)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Route("/v1", func(r chi.Router) {
			r.Post("/documents/upload", uploadHandler.Upload)
			r.Post("/query", queryHandler.Query)

			r.Get("/documents", documentsHandler.List)
			r.Post("/documents/search", documentsHandler.Search)
			r.Get("/documents/stats/advanced", statsHandler.Advanced)
			r.Delete("/documents/reset", statsHandler.Reset)
			r.Get("/documents/{documentID}", documentsHandler.Get)
			r.Patch("/documents/{documentID}", documentsHandler.Update)
			r.Delete("/documents/{documentID}", documentsHandler.Delete)
			r.Get("/documents/{documentID}/content", documentsHandler.Content)
			r.Get("/documents/{documentID}/summary", documentsHandler.Summary)

			r.Get("/conversations/{conversationID}", conversationsHandler.History)
			r.Delete("/conversations/{conversationID}", conversationsHandler.Delete)

			r.Get("/stats", statsHandler.Stats)
		})
	})

	return r
}
