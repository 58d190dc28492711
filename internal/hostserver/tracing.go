package hostserver

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	traceScopeHost = "ifengine.hostserver"
	traceSpanTurn  = "ifengine.host.handle_message"

	traceAttrSessionID = "ifengine.session_id"
	traceAttrVerb       = "ifengine.verb"
	traceAttrSuccess    = "ifengine.success"
	traceAttrFatal      = "ifengine.fatal"
)

// startTurnSpan opens one span per HandleMessage call, labeled with the
// session's correlation id (mirroring the teacher's session/run id
// attributes on its react-loop spans).
func startTurnSpan(ctx context.Context, sessionID string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{}
	if sessionID != "" {
		attrs = append(attrs, attribute.String(traceAttrSessionID, sessionID))
	}
	return otel.Tracer(traceScopeHost).Start(ctx, traceSpanTurn, trace.WithAttributes(attrs...))
}

// markTurnResult annotates span with the reply's outcome.
func markTurnResult(span trace.Span, reply map[string]any) {
	if span == nil {
		return
	}
	if verb, ok := reply["action"].(string); ok {
		span.SetAttributes(attribute.String(traceAttrVerb, verb))
	}
	success, _ := reply["success"].(bool)
	span.SetAttributes(attribute.Bool(traceAttrSuccess, success))

	fatal := false
	if errObj, ok := reply["error"].(map[string]any); ok {
		fatal, _ = errObj["fatal"].(bool)
	}
	span.SetAttributes(attribute.Bool(traceAttrFatal, fatal))

	if !success {
		span.SetStatus(codes.Error, "command failed")
		return
	}
	span.SetStatus(codes.Ok, "")
}
