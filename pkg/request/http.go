package request

import (
	"net/http"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/julienschmidt/httprouter"
)

// FromHTTP converts an incoming HTTP request into a request. The first value
// of every query parameter and header is kept. Route parameters are read from
// the request context when the request was dispatched by httprouter.
// The body is not read.
func FromHTTP(r *http.Request) (*common.Request, error) {
	b := NewBuilder()

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			b.WithQuery(key, values[0])
		}
	}
	for key, values := range r.Header {
		if len(values) > 0 {
			b.WithHeader(key, values[0])
		}
	}
	for _, p := range httprouter.ParamsFromContext(r.Context()) {
		b.WithParam(p.Key, p.Value)
	}

	b.WithField(MethodKey, r.Method)
	b.WithField(PathKey, r.URL.Path)
	b.WithField(RemoteAddrKey, r.RemoteAddr)

	return b.Build()
}

// Header returns the header value stored by FromHTTP or Builder.WithHeader.
// Lookups use the canonical header key.
func Header(req *common.Request, key string) string {
	headers, _ := req.Fields().GetObject(HeadersKey)
	v, _ := headers.GetString(http.CanonicalHeaderKey(key))
	return v
}

// Param returns the path parameter stored by FromHTTP or Builder.WithParam.
func Param(req *common.Request, name string) string {
	params, _ := req.Fields().GetObject(ParamsKey)
	v, _ := params.GetString(name)
	return v
}
