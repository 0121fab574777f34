// Package server exposes the HTTP API over the recipe store: extraction,
// recipe browsing and exports, collections, followed channels, expenses,
// settings, and a health probe.
//
// Routing uses the standard ServeMux with manual method dispatch and path
// trimming. Responses are the DTOs from internal/api; errors are rendered
// as {"error": message} with a status derived from the failure class
// (caller mistakes 4xx, upstream trouble 502). When an API token is
// configured every route except /api/health requires a bearer token.
//
// The server binds lazily: New validates configuration, Start listens and
// serves until the context ends, and Stop shuts down gracefully.
package server
