// Package observability provides structured logging and Prometheus metrics
// for the lead swarm service.
//
// This package implements:
//   - zap logger construction from level and format settings
//   - Prometheus collectors for swarm cycles, lead stages, uploads,
//     the notification hub and HTTP traffic
//
// Metrics are registered against a caller-supplied registry so that
// several instances (for example in tests) never collide.
package observability
