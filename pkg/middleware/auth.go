package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/Suhaibinator/SHook/pkg/hook"
	"github.com/Suhaibinator/SHook/pkg/request"
	"go.uber.org/zap"
)

// UserKey is the ctx.state key under which the authenticated user is stored
const UserKey = "user"

var (
	// ErrMissingCredentials is returned by a required authentication callback
	// when the request carries no credentials.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrUnauthorized is returned by a required authentication callback
	// when the credentials are rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

// AuthProvider defines an interface for authentication providers.
// Different authentication mechanisms can implement this interface
// to be used with the Authentication callback.
type AuthProvider[U any] interface {
	// HasCredentials reports whether the request carries credentials for this provider.
	HasCredentials(req *common.Request) bool

	// Authenticate validates the request's credentials and returns the authenticated user.
	Authenticate(ctx context.Context, req *common.Request) (U, bool)
}

// BasicAuthProvider provides HTTP Basic Authentication.
// It validates username and password credentials against a predefined map
// and yields the username as the user.
type BasicAuthProvider struct {
	Credentials map[string]string // username -> password
}

// credentials decodes the "Basic" Authorization header.
func (p *BasicAuthProvider) credentials(req *common.Request) (string, string, bool) {
	encoded, ok := strings.CutPrefix(request.Header(req, "Authorization"), "Basic ")
	if !ok {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	return strings.Cut(string(decoded), ":")
}

// HasCredentials implements AuthProvider.
func (p *BasicAuthProvider) HasCredentials(req *common.Request) bool {
	_, _, ok := p.credentials(req)
	return ok
}

// Authenticate implements AuthProvider.
func (p *BasicAuthProvider) Authenticate(_ context.Context, req *common.Request) (string, bool) {
	username, password, ok := p.credentials(req)
	if !ok {
		return "", false
	}

	expectedPassword, exists := p.Credentials[username]
	if !exists || password != expectedPassword {
		return "", false
	}
	return username, true
}

// BearerTokenProvider provides Bearer Token Authentication.
// The token is read from the Authorization header and passed to Validator.
type BearerTokenProvider[U any] struct {
	Validator func(ctx context.Context, token string) (U, bool)
}

func bearerToken(req *common.Request) (string, bool) {
	return strings.CutPrefix(request.Header(req, "Authorization"), "Bearer ")
}

// HasCredentials implements AuthProvider.
func (p *BearerTokenProvider[U]) HasCredentials(req *common.Request) bool {
	_, ok := bearerToken(req)
	return ok
}

// Authenticate implements AuthProvider.
func (p *BearerTokenProvider[U]) Authenticate(ctx context.Context, req *common.Request) (U, bool) {
	token, ok := bearerToken(req)
	if !ok || p.Validator == nil {
		var zero U
		return zero, false
	}
	return p.Validator(ctx, token)
}

// APIKeyProvider provides API Key Authentication.
// It can validate API keys provided in a header or query parameter.
type APIKeyProvider[U any] struct {
	ValidKeys map[string]U // key -> user
	Header    string       // header name (e.g., "X-API-Key")
	Query     string       // query parameter name (e.g., "api_key")
}

func (p *APIKeyProvider[U]) keys(req *common.Request) []string {
	var keys []string
	if p.Header != "" {
		if key := request.Header(req, p.Header); key != "" {
			keys = append(keys, key)
		}
	}
	if p.Query != "" {
		if key := req.QueryValue(p.Query); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// HasCredentials implements AuthProvider.
func (p *APIKeyProvider[U]) HasCredentials(req *common.Request) bool {
	return len(p.keys(req)) > 0
}

// Authenticate implements AuthProvider. The header takes precedence over the query parameter.
func (p *APIKeyProvider[U]) Authenticate(_ context.Context, req *common.Request) (U, bool) {
	for _, key := range p.keys(req) {
		if user, ok := p.ValidKeys[key]; ok {
			return user, true
		}
	}
	var zero U
	return zero, false
}

// Authentication creates a callback that authenticates the request with provider
// and stores the user in ctx.state. When required is true, requests without
// valid credentials fail with ErrMissingCredentials or ErrUnauthorized; otherwise
// they proceed without a user.
func Authentication[S, U any](provider AuthProvider[U], required bool, logger *zap.Logger) hook.BeforeFunc[S] {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(ctx context.Context, req *common.Request, caller S) error {
		// Create log fields
		fields := []zap.Field{}
		if traceID := GetTraceID(req); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}

		if !provider.HasCredentials(req) {
			if required {
				logger.Warn("Authentication failed", append(fields, zap.Error(ErrMissingCredentials))...)
				return ErrMissingCredentials
			}
			return nil
		}

		user, ok := provider.Authenticate(ctx, req)
		if !ok {
			if required {
				logger.Warn("Authentication failed", append(fields, zap.Error(ErrUnauthorized))...)
				return ErrUnauthorized
			}
			return nil
		}

		logger.Debug("Authentication successful", fields...)
		return req.State().Set(UserKey, user)
	}
}

// GetUser returns the user stored by Authentication. Users of plain map or
// slice types are stored as freeze containers and are not found as U.
func GetUser[U any](req *common.Request) (U, bool) {
	v, _ := req.State().Get(UserKey)
	user, ok := v.(U)
	return user, ok
}
