// Package server implements the optional HTTP API for monitoring a running
// analysis batch. It provides health, configuration, batch statistics and
// Prometheus metrics endpoints.
package server
