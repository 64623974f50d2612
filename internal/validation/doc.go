// Package validation enforces the BGE-M3 input limits before a request is
// admitted to the batching queue.
//
// Limits cover batch width (texts per request), per-text character length
// and an estimated token count. Token estimation is a character-based
// heuristic (roughly four characters per token); running the real tokenizer
// on the gateway would cost more than the protection is worth, and the
// backend enforces the hard limit anyway.
//
// Rejections are *Error values carrying the offending text index and a
// client-facing detail message, which the HTTP layer maps to 400 responses.
package validation
