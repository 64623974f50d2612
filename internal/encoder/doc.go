// Package encoder provides the client for computing BGE-M3 embeddings
// against a remote inference backend.
//
// The backend is any model server exposing the BGE-M3 selective-vector API:
// one POST endpoint accepting a list of texts plus return_dense,
// return_sparse and return_colbert flags, answering with per-text dense,
// sparse (token index to weight) and ColBERT multi-vector data.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Encoder interface: the contract consumed by the scheduler
//   - Client struct: public entrypoint hiding all provider details
//   - inferenceProvider: HTTP implementation talking to the backend
//
// The scheduler depends on the Encoder interface only, which keeps it
// trivial to fake in tests and leaves room for an in-process provider
// should one ever exist.
//
// # Usage
//
//	cfg := encoder.NewConfig()
//	client, err := encoder.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	vectors, err := client.Encode(ctx, []string{"hello world"}, encoder.Kinds{Dense: true})
//
// # Configuration
//
//	ENCODER_ENDPOINT=http://bge-m3-backend:8080   # required
//	ENCODER_SERVICE_TOKEN=...                     # optional bearer token
//	MODEL_NAME=BAAI/bge-m3
//	ENCODER_HTTP_TIMEOUT_SECONDS=30
package encoder
