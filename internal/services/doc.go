// Package services contains the business logic between the HTTP transport
// and the parser, exporter, and catalog layers. Services accept a
// context.Context, log with slog, and return domain errors that the
// transport maps to API error responses.
package services
