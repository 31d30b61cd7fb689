package middleware

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/Suhaibinator/SHook/pkg/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testUser struct {
	ID   int
	Name string
}

func bearerProvider() *BearerTokenProvider[testUser] {
	return &BearerTokenProvider[testUser]{
		Validator: func(ctx context.Context, token string) (testUser, bool) {
			if token == "good" {
				return testUser{ID: 1, Name: "ada"}, true
			}
			return testUser{}, false
		},
	}
}

func authRequest(t *testing.T, authorization string) *common.Request {
	t.Helper()
	b := request.NewBuilder()
	if authorization != "" {
		b.WithHeader("Authorization", authorization)
	}
	req, err := b.Build()
	require.NoError(t, err)
	return req
}

func TestAuthenticationRequired(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	auth := Authentication[*testService, testUser](bearerProvider(), true, zap.New(core))

	t.Run("valid token stores the user", func(t *testing.T) {
		req := authRequest(t, "Bearer good")
		svc, err := call(t, auth, req)

		require.NoError(t, err)
		assert.Equal(t, 1, svc.calls)
		user, ok := GetUser[testUser](req)
		require.True(t, ok)
		assert.Equal(t, testUser{ID: 1, Name: "ada"}, user)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		svc, err := call(t, auth, authRequest(t, "Bearer bad"))

		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Zero(t, svc.calls)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		svc, err := call(t, auth, authRequest(t, ""))

		assert.ErrorIs(t, err, ErrMissingCredentials)
		assert.Zero(t, svc.calls)
	})

	assert.Equal(t, 2, logs.FilterMessage("Authentication failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Authentication successful").Len())
}

func TestAuthenticationOptional(t *testing.T) {
	auth := Authentication[*testService, testUser](bearerProvider(), false, nil)

	req := authRequest(t, "Bearer bad")
	svc, err := call(t, auth, req)

	require.NoError(t, err)
	assert.Equal(t, 1, svc.calls)
	_, ok := GetUser[testUser](req)
	assert.False(t, ok)
}

func TestBasicAuthProvider(t *testing.T) {
	provider := &BasicAuthProvider{Credentials: map[string]string{"user": "pass"}}
	auth := Authentication[*testService, string](provider, true, nil)
	encode := func(s string) string { return "Basic " + base64.StdEncoding.EncodeToString([]byte(s)) }

	req := authRequest(t, encode("user:pass"))
	_, err := call(t, auth, req)
	require.NoError(t, err)
	user, _ := GetUser[string](req)
	assert.Equal(t, "user", user)

	_, err = call(t, auth, authRequest(t, encode("user:wrong")))
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = call(t, auth, authRequest(t, "Basic !!!"))
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAPIKeyProvider(t *testing.T) {
	provider := &APIKeyProvider[string]{
		ValidKeys: map[string]string{"key-1": "service-a"},
		Header:    "X-API-Key",
		Query:     "api_key",
	}
	auth := Authentication[*testService, string](provider, true, nil)

	req, err := request.NewBuilder().WithHeader("X-API-Key", "key-1").Build()
	require.NoError(t, err)
	_, err = call(t, auth, req)
	require.NoError(t, err)
	user, _ := GetUser[string](req)
	assert.Equal(t, "service-a", user)

	req, err = request.NewBuilder().WithQuery("api_key", "key-1").Build()
	require.NoError(t, err)
	_, err = call(t, auth, req)
	assert.NoError(t, err)

	req, err = request.NewBuilder().WithQuery("api_key", "nope").Build()
	require.NoError(t, err)
	_, err = call(t, auth, req)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
