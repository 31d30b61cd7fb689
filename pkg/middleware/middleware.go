// Package middleware provides a collection of ready-made before-callbacks for the SHook framework.
//
// Every callback reads only the frozen request and writes only into ctx.state,
// so it can be passed to hook.Before or hook.Wrap for any service type.
package middleware

import (
	"context"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/Suhaibinator/SHook/pkg/hook"
	"go.uber.org/zap"
)

// Chain combines several callbacks into one. They run in order and the first
// error stops the chain.
func Chain[S any](callbacks ...hook.BeforeFunc[S]) hook.BeforeFunc[S] {
	return func(ctx context.Context, req *common.Request, caller S) error {
		for _, fn := range callbacks {
			if err := fn(ctx, req, caller); err != nil {
				return err
			}
		}
		return nil
	}
}

// Logging is a callback that logs every call of the named method with its query parameters
func Logging[S any](logger *zap.Logger, method string) hook.BeforeFunc[S] {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(ctx context.Context, req *common.Request, caller S) error {
		// Create log fields
		fields := []zap.Field{
			zap.String("method", method),
			zap.Object("query", req.Query()),
		}

		// Add trace ID if present
		if traceID := GetTraceID(req); traceID != "" {
			fields = append([]zap.Field{zap.String("trace_id", traceID)}, fields...)
		}

		logger.Debug("Request", fields...)
		return nil
	}
}

// stateString reads a string value from ctx.state.
func stateString(req *common.Request, key string) string {
	v, _ := req.State().GetString(key)
	return v
}
