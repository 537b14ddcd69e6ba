// Package telemetry consumes the metrics records produced by the
// orchestrator. The core only produces RunResult values; formatting and
// persistence live here, behind the Sink interface.
package telemetry
