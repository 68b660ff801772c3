// Package metrics records pipeline counters and stage timings with
// Prometheus and pushes them to a pushgateway at the end of a run.
package metrics
