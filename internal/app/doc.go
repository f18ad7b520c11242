// Package app wires configuration, logging, telemetry, the conversion
// catalog, and the HTTP router into a runnable server application.
package app
