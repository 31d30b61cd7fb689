// Package request constructs common.Request values from Go maps, builders,
// HTTP requests and JSON documents.
package request

import (
	"errors"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/Suhaibinator/SHook/pkg/freeze"
)

// Fields populated by the constructors in this package, besides
// common.QueryKey and common.CtxKey.
const (
	HeadersKey    = "headers"
	ParamsKey     = "params"
	MethodKey     = "method"
	PathKey       = "path"
	RemoteAddrKey = "remoteAddr"
)

// ErrNotObject is returned when a JSON document does not hold an object.
var ErrNotObject = errors.New("request document is not a JSON object")

// New creates a request with the given query parameters and an empty ctx.state.
func New(query map[string]string) *common.Request {
	fields := freeze.NewObject()
	_ = fields.Set(common.QueryKey, query) // converted to an object by From

	req, _ := common.NewRequest(fields) // query is an object, ctx is added
	return req
}

// Mock creates a request from plain Go values: overrides are laid over an
// empty query and a ctx holding an empty state. Mock panics if overrides put a
// non-object value under query, ctx or ctx.state; it is meant for tests and fixtures.
func Mock(overrides map[string]any) *common.Request {
	req, err := common.NewRequest(freeze.ObjectOf(overrides))
	if err != nil {
		panic("request.Mock: " + err.Error())
	}
	return req
}

// FromJSON decodes a JSON object into a request, adding any missing query,
// ctx and ctx.state objects.
func FromJSON(data []byte) (*common.Request, error) {
	v, err := freeze.DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	fields, ok := v.(*freeze.Object)
	if !ok {
		return nil, ErrNotObject
	}
	return common.NewRequest(fields)
}
