// Package tracing bootstraps OpenTelemetry for versionary and exposes the
// small span helpers used by the traced repository decorator. Applications
// that do not need tracing never import it.
package tracing
