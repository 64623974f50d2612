// Package server exposes the embedding service over HTTP.
//
// The API surface mirrors the OpenAI embeddings convention with the BGE-M3
// selective-vector extension:
//
//	POST /v1/embeddings      compute embeddings (bearer token required)
//	GET  /v1/models          list servable models (bearer token required)
//	GET  /v1/models/{id}     describe one model (bearer token required)
//	GET  /                   service banner
//	GET  /health             liveness plus batching state
//	GET  /stats              batching statistics
//
// Error responses use the {"detail": "..."} body shape throughout.
//
// The embeddings handler is a thin pipeline: decode, normalize the
// polymorphic input, validate, consult the response cache, submit to the
// batching scheduler, store the result back in the cache. Queue pressure
// surfaces as 503, encoder trouble as 502, bad requests as 400.
//
// Lifecycle ordering matters during shutdown: the server stops accepting
// requests first, then the scheduler drains what was already admitted.
package server
