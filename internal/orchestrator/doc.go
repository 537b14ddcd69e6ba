// Package orchestrator drives a validated chain start to finish: it
// resolves descriptors to executors, validates type adjacency, threads one
// payload container through the chain in order, observes cancellation at
// step boundaries, and records per-step metrics.
package orchestrator
