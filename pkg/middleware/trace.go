package middleware

import (
	"context"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/Suhaibinator/SHook/pkg/hook"
	"github.com/google/uuid"
)

// TraceIDKey is the ctx.state key under which the trace ID is stored
const TraceIDKey = "traceId"

// Trace creates a callback that generates a unique trace ID for each request
// and stores it in ctx.state. An existing trace ID is kept, so stacked
// decorators share one ID per call.
func Trace[S any]() hook.BeforeFunc[S] {
	return func(ctx context.Context, req *common.Request, caller S) error {
		if GetTraceID(req) != "" {
			return nil
		}
		return req.State().Set(TraceIDKey, uuid.New().String())
	}
}

// GetTraceID extracts the trace ID from ctx.state.
// Returns an empty string if no trace ID is found.
func GetTraceID(req *common.Request) string {
	return stateString(req, TraceIDKey)
}
