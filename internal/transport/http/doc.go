// Package http provides the HTTP transport layer for the analytics API.
//
// Handlers follow RFC 7807: every error response is an
// application/problem+json document with type, title, status, detail,
// and instance members. Request payloads are validated before they reach
// the analytics service, and all responses are rendered through
// go-chi/render for consistent content negotiation.
package http
