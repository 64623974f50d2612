// Package schema defines the wire-level request and response types of the
// embedding API.
//
// The surface is OpenAI-compatible with BGE-M3 extensions: requests carry
// return_dense, return_sparse and return_colbert selection flags, and
// response data items carry the corresponding dense_embedding,
// sparse_embedding and colbert_embedding fields.
//
// The request input field accepts three JSON forms: a single string, an
// array of strings, or an array of token integers (which is folded into one
// synthetic text of space-joined digits). See Input.
package schema
