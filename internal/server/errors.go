package server

// errorBody is the JSON error envelope used by every failing endpoint.
type errorBody struct {
	Detail string `json:"detail"`
}

// Canned error details. Clients match on these strings, so they are part of
// the API contract.
const (
	detailQueueFull = "Server is currently handling maximum number of requests. Please try again later."

	detailShuttingDown = "Server is shutting down. Please try again later."

	detailNotAuthenticated = "Not authenticated"

	detailInvalidToken = "Invalid API token"

	detailMalformedBody = "Malformed request body"

	detailInvalidInput = "Invalid input format: expected a string, an array of strings, or an array of integers"

	detailNoVectorKind = "At least one vector type must be requested (return_dense, return_sparse, or return_colbert)"

	detailEncodeFailed = "Embedding computation failed"

	detailSubmitTimeout = "Timed out waiting for batch execution"
)
