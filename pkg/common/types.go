// Package common provides shared types and utilities used across the SHook packages.
package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/Suhaibinator/SHook/pkg/freeze"
	"go.uber.org/zap/zapcore"
)

// Well-known request fields.
const (
	// QueryKey holds the string-keyed request parameters.
	QueryKey = "query"
	// CtxKey holds the per-call context. It is the only top-level field left
	// writable when a request is frozen.
	CtxKey = "ctx"
	// StateKey holds the mutable state mapping inside the per-call context.
	StateKey = "state"
)

// ErrFieldType is returned by NewRequest when a well-known field holds a value
// that is not an object.
var ErrFieldType = errors.New("request field is not an object")

// Request is a mapping from field names to values. It always contains a
// "query" object and a "ctx" object, and "ctx" always contains a "state" object.
// A Request implements freeze.Container, so it can be passed to freeze.Deep directly.
type Request struct {
	fields *freeze.Object
}

// NewRequest wraps fields as a request, adding any missing "query", "ctx" and
// "ctx.state" objects. fields is used as is, not copied.
func NewRequest(fields *freeze.Object) (*Request, error) {
	if fields == nil {
		fields = freeze.NewObject()
	}
	if err := ensureObject(fields, QueryKey); err != nil {
		return nil, err
	}
	if err := ensureObject(fields, CtxKey); err != nil {
		return nil, err
	}
	ctx, _ := fields.GetObject(CtxKey)
	if err := ensureObject(ctx, StateKey); err != nil {
		return nil, err
	}
	return &Request{fields: fields}, nil
}

func ensureObject(parent *freeze.Object, key string) error {
	v, ok := parent.Get(key)
	if !ok || v == nil {
		return parent.Set(key, freeze.NewObject())
	}
	if _, isObject := v.(*freeze.Object); !isObject {
		return fmt.Errorf("%w: %s", ErrFieldType, key)
	}
	return nil
}

// Fields returns the top-level mapping backing the request.
func (r *Request) Fields() *freeze.Object {
	return r.fields
}

// Get returns a top-level field.
func (r *Request) Get(key string) (any, bool) {
	return r.fields.Get(key)
}

// Set writes a top-level field. It fails once the request is frozen.
func (r *Request) Set(key string, value any) error {
	return r.fields.Set(key, value)
}

// Query returns the request parameters.
func (r *Request) Query() *freeze.Object {
	q, _ := r.fields.GetObject(QueryKey)
	return q
}

// QueryValue returns the string parameter name, or "" when it is absent or not a string.
func (r *Request) QueryValue(name string) string {
	v, _ := r.Query().GetString(name)
	return v
}

// Ctx returns the per-call context object.
func (r *Request) Ctx() *freeze.Object {
	c, _ := r.fields.GetObject(CtxKey)
	return c
}

// State returns the mutable state object inside the per-call context.
func (r *Request) State() *freeze.Object {
	s, _ := r.Ctx().GetObject(StateKey)
	return s
}

// Range implements freeze.Container.
func (r *Request) Range(fn func(key string, value any) bool) {
	r.fields.Range(fn)
}

// Freeze implements freeze.Container. Only the top-level mapping is marked.
func (r *Request) Freeze() {
	r.fields.Freeze()
}

// IsFrozen implements freeze.Container.
func (r *Request) IsFrozen() bool {
	return r.fields.IsFrozen()
}

// MarshalJSON encodes the request fields.
func (r *Request) MarshalJSON() ([]byte, error) {
	return r.fields.MarshalJSON()
}

// MarshalLogObject lets zap log the request as a structured field.
func (r *Request) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return r.fields.MarshalLogObject(enc)
}

// Response is produced by a handler. Status is numeric; Body is optional.
type Response struct {
	Status int               `json:"status"`
	Body   any               `json:"body,omitempty"`
	Header map[string]string `json:"header,omitempty"`
}

// Handler produces a response for a request.
type Handler func(ctx context.Context, req *Request) (*Response, error)

// Method is a handler method of a service type S, in the form of a Go method
// expression such as (*UserService).Get. The receiver is supplied at call time.
type Method[S any] func(s S, ctx context.Context, req *Request) (*Response, error)

// Bind returns a Handler that invokes m on the receiver s.
func (m Method[S]) Bind(s S) Handler {
	return func(ctx context.Context, req *Request) (*Response, error) {
		return m(s, ctx, req)
	}
}

// Decorator wraps a Method to add behavior around it.
// Decorators can be stacked; each one decorates the result of the previous.
type Decorator[S any] func(Method[S]) Method[S]
