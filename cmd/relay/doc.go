// Package main runs the parley relay server.
//
// The relay keeps the username directory and queues sealed envelopes for
// recipients until they fetch and acknowledge them. All state is held in
// memory and lost on process exit; the relay never sees plaintext or
// secret keys. See the internal/relay package for the HTTP API.
//
// Configuration comes from relay.yaml (or --config), with --listen and the
// PARLEY_RELAY_* environment variables taking precedence. Prometheus
// metrics are served on /metrics and a liveness probe on /healthz. SIGINT
// or SIGTERM drains in-flight requests before exit.
package main
