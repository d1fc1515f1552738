/*
Package tracing bundles the tracing helpers of majora's sub-packages.

All packages trace through schuko's global tracers: the engine and the
validator trace to the core-tracer, the pattern compiler traces to the
syntax-tracer.
*/
package tracing

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// ST traces to the syntax-tracer.
func ST() tracing.Trace {
	return gtrace.SyntaxTracer
}

// SetTestingLog redirects core- and syntax-tracing to the log of t.
// Clients should call the returned teardown function at the end of the test.
func SetTestingLog(t *testing.T) (teardown func()) {
	gtrace.CoreTracer = gotestingadapter.New()
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown = gotestingadapter.RedirectTracing(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelDebug)
	return teardown
}
