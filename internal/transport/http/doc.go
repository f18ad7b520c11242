// Package http provides the HTTP transport layer: a chi router, handlers
// for conversion and document retrieval, and health and metrics endpoints.
// Handlers stay thin; they translate requests into service calls and map
// service errors to structured API errors.
package http
