// Package trace records what the front end is doing: CLI commands, passes,
// translation units and #include nesting, down to individual grammar rules
// at the debug level.
//
// Tracers travel in context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.ParentID(ctx))
//	defer span.End("")
//	ctx = trace.WithParent(ctx, span)
//
// StreamTracer writes events as they happen (text or NDJSON), RingTracer
// keeps the most recent ones for a crash dump, MultiTracer does both.
package trace
