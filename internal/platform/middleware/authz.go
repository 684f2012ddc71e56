// Copyright (c) 2026 ScoreHub. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/scorehub/scorehub/internal/platform/apperr"
	"github.com/scorehub/scorehub/internal/platform/ctxutil"
	"github.com/scorehub/scorehub/internal/platform/respond"
	"github.com/scorehub/scorehub/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous (actor stays nil).
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject the resulting [*sec.Actor] into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithActor(request.Context(), claims.Actor())
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetActor(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// AdminOrReadOnly guards a resource whose writes are reserved for admin-tier
// actors while reads stay public.
//
// A denied write maps to 403 for authenticated actors and 401 for anonymous
// ones, keeping "forbidden" distinguishable from "unauthenticated".
func AdminOrReadOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		actor := ctxutil.GetActor(request.Context())
		if !sec.AdminOrReadOnly(actor, request.Method) {
			respond.Error(writer, request, denied(actor))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// AdminOnly guards resources reserved entirely for admin-tier actors.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		actor := ctxutil.GetActor(request.Context())
		if !sec.AdminOnly(actor) {
			respond.Error(writer, request, denied(actor))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// AuthenticatedAny guards resources writable by any signed-in user.
// Object-level ownership (owner-or-staff) is checked in the service layer
// where the target row is loaded.
func AuthenticatedAny(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		actor := ctxutil.GetActor(request.Context())
		if !sec.AuthenticatedAny(actor, request.Method) {
			respond.Error(writer, request, denied(actor))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// denied maps a failed predicate to the right authentication vs permission error.
func denied(actor *sec.Actor) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.Forbidden("You do not have permission to perform this action")
}
