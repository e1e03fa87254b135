// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/pkg/constants"
)

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	var captured string
	handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = r.Context().Value(constants.RequestIDContextID).(string)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/chat", nil))

	require.NotEmpty(t, captured)
	assert.Equal(t, captured, recorder.Header().Get(constants.RequestIDHeader))
}

func TestRequestIDMiddlewarePropagatesHeader(t *testing.T) {
	var captured string
	handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = r.Context().Value(constants.RequestIDContextID).(string)
	}))

	request := httptest.NewRequest(http.MethodGet, "/chat", nil)
	request.Header.Set(constants.RequestIDHeader, "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, "req-123", captured)
}

func TestAuthorizationMiddlewareDefaultsPrincipal(t *testing.T) {
	var principal string
	handler := AuthorizationMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ = r.Context().Value(constants.PrincipalContextID).(string)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/chat", nil))

	assert.Equal(t, DefaultPrincipal, principal)
}

func TestAuthorizationMiddlewareReadsHeaders(t *testing.T) {
	var principal, token string
	handler := AuthorizationMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ = r.Context().Value(constants.PrincipalContextID).(string)
		token, _ = r.Context().Value(constants.AuthorizationContextID).(string)
	}))

	request := httptest.NewRequest(http.MethodPost, "/chat", nil)
	request.Header.Set(constants.XOnBehalfOfHeader, "jane")
	request.Header.Set("Authorization", "Bearer abc")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, "jane", principal)
	assert.Equal(t, "Bearer abc", token)
}
