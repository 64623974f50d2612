package server

import "net/http"

// Handler assembles the full route table. Protected routes sit behind the
// bearer-token check; the banner, health and stats endpoints stay open so
// probes and dashboards work without credentials.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /v1/embeddings", s.instrument(s.requireAuth(http.HandlerFunc(s.handleEmbeddings))))
	mux.Handle("GET /v1/models", s.instrument(s.requireAuth(http.HandlerFunc(s.handleListModels))))
	// Wildcard rather than {id}: served model identifiers contain slashes
	// (BAAI/bge-m3), which a single-segment parameter can never match.
	mux.Handle("GET /v1/models/{id...}", s.instrument(s.requireAuth(http.HandlerFunc(s.handleGetModel))))

	mux.Handle("GET /{$}", s.instrument(http.HandlerFunc(s.handleRoot)))
	mux.Handle("GET /health", s.instrument(http.HandlerFunc(s.handleHealth)))
	mux.Handle("GET /stats", s.instrument(http.HandlerFunc(s.handleStats)))

	return s.cors(mux)
}
