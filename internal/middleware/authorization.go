// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/pkg/constants"
)

// DefaultPrincipal is used when no on-behalf-of header is present, matching
// local single-user deployments.
const DefaultPrincipal = "local"

// AuthorizationMiddleware carries the caller's principal and bearer token on
// the request context. Identity arrives as an opaque header set by the
// gateway; the service itself does no token validation.
func AuthorizationMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := r.Header.Get(constants.XOnBehalfOfHeader)
			if principal == "" {
				principal = DefaultPrincipal
			}

			ctx := context.WithValue(r.Context(), constants.PrincipalContextID, principal)
			if token := r.Header.Get(constants.AuthorizationHeader); token != "" {
				ctx = context.WithValue(ctx, constants.AuthorizationContextID, token)
			}
			ctx = logging.AppendCtx(ctx, slog.String("principal", principal))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
