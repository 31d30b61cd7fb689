package request

import (
	"net/http"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/Suhaibinator/SHook/pkg/freeze"
)

// Builder assembles a request field by field.
type Builder struct {
	fields  *freeze.Object
	query   *freeze.Object
	headers *freeze.Object
	params  *freeze.Object
	state   *freeze.Object
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		fields:  freeze.NewObject(),
		query:   freeze.NewObject(),
		headers: freeze.NewObject(),
		params:  freeze.NewObject(),
		state:   freeze.NewObject(),
	}
}

// WithQuery sets a query parameter.
func (b *Builder) WithQuery(key, value string) *Builder {
	_ = b.query.Set(key, value)
	return b
}

// WithParam sets a path parameter.
func (b *Builder) WithParam(key, value string) *Builder {
	_ = b.params.Set(key, value)
	return b
}

// WithHeader sets a header value under its canonical key.
func (b *Builder) WithHeader(key, value string) *Builder {
	_ = b.headers.Set(http.CanonicalHeaderKey(key), value)
	return b
}

// WithField sets an arbitrary top-level field. Plain maps and slices are
// converted so that they are frozen along with the rest of the request.
func (b *Builder) WithField(key string, value any) *Builder {
	_ = b.fields.Set(key, value)
	return b
}

// WithState seeds a value in ctx.state.
func (b *Builder) WithState(key string, value any) *Builder {
	_ = b.state.Set(key, value)
	return b
}

// Build creates the request. Headers and params are only added when set.
// Fields set with WithField under query or ctx are replaced. The request
// takes ownership of the builder's containers, so use one Builder per request.
func (b *Builder) Build() (*common.Request, error) {
	fields := freeze.NewObject()
	b.fields.Range(func(key string, value any) bool {
		_ = fields.Set(key, value)
		return true
	})

	ctx := freeze.NewObject()
	if err := ctx.Set(common.StateKey, b.state); err != nil {
		return nil, err
	}
	if err := fields.Set(common.QueryKey, b.query); err != nil {
		return nil, err
	}
	if err := fields.Set(common.CtxKey, ctx); err != nil {
		return nil, err
	}
	if b.headers.Len() > 0 {
		if err := fields.Set(HeadersKey, b.headers); err != nil {
			return nil, err
		}
	}
	if b.params.Len() > 0 {
		if err := fields.Set(ParamsKey, b.params); err != nil {
			return nil, err
		}
	}

	return common.NewRequest(fields)
}
