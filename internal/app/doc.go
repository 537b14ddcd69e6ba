// Package app wires configuration loading, module registration,
// orchestration, and telemetry into a runnable application instance.
package app
