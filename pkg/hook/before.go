// Package hook decorates service methods with callbacks that run before the method body.
//
// A before-callback receives the incoming request after it has been deep-frozen,
// except for its "ctx" field, together with the receiver the method is invoked
// on. The callback may read the request, stash derived values in ctx.state, or
// call back into the receiver. If it returns an error, the method is not run.
//
//	type UserService struct{}
//
//	func (s *UserService) Get(ctx context.Context, req *common.Request) (*common.Response, error) {
//		user, _ := req.State().Get("user")
//		return &common.Response{Status: 200, Body: user}, nil
//	}
//
//	get := hook.Wrap((*UserService).Get, func(ctx context.Context, req *common.Request, s *UserService) error {
//		return req.State().Set("user", map[string]any{"id": req.QueryValue("userId")})
//	})
//	res, err := get(&UserService{}, ctx, req)
package hook

import (
	"context"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/Suhaibinator/SHook/pkg/freeze"
)

// ExcludedKeys lists the top-level request fields left writable by the freeze step.
var ExcludedKeys = []string{common.CtxKey}

// BeforeFunc is a callback run before a method of S. req is frozen except for
// its ctx subtree, and caller is the receiver the method was invoked on.
type BeforeFunc[S any] func(ctx context.Context, req *common.Request, caller S) error

// Before returns a Decorator that runs fn before the decorated method.
func Before[S any](fn BeforeFunc[S]) common.Decorator[S] {
	return func(original common.Method[S]) common.Method[S] {
		return Wrap(original, fn)
	}
}

// Wrap returns a method with the same signature as original that, on every call:
//
//  1. deep-freezes req in place, leaving its ctx field writable
//  2. calls fn with the frozen request and the receiver
//  3. calls original with the same receiver and request if fn returned nil
//
// Errors from fn and from original are returned unchanged, and original is
// never called when fn fails. Wrap adds no cancellation, timeout or recovery.
func Wrap[S any](original common.Method[S], fn BeforeFunc[S]) common.Method[S] {
	return func(s S, ctx context.Context, req *common.Request) (*common.Response, error) {
		freeze.Deep(req, ExcludedKeys...)

		if err := fn(ctx, req, s); err != nil {
			return nil, err
		}

		return original(s, ctx, req)
	}
}
