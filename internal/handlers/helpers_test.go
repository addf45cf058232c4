package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/recipe-api/internal/jwt"
	"github.com/sbilibin2017/recipe-api/internal/middlewares"
)

// newRequest builds a request authenticated as userID (0 for anonymous) with
// the given chi URL params as alternating key/value pairs.
func newRequest(method, target, body string, userID int64, params ...string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if userID != 0 {
		ctx = middlewares.WithClaims(ctx, &jwt.Claims{UserID: userID})
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			rctx.URLParams.Add(params[i], params[i+1])
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func strPtr(s string) *string { return &s }
