package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/dmitrijs2005/recetario/internal/logging"
	"github.com/google/uuid"
)

// TokenStore is the part of the credential store the transport needs.
type TokenStore interface {
	Token() string
	ClearToken(ctx context.Context) error
}

// Location is where the client currently is and how to move it. The router
// implements it.
type Location interface {
	CurrentPath() string
	Redirect(path string)
}

// LoginPath is where a 401 sends the user.
const LoginPath = "/login"

// authExemptPaths are locations that are not redirected after a 401; matching
// is by substring.
var authExemptPaths = []string{"/login", "/register"}

type transport struct {
	base     http.RoundTripper
	store    TokenStore
	location Location
	log      logging.Logger
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if token := t.store.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerValue(token))
	} else {
		req.Header.Del(common.AuthorizationHeader)
	}
	if req.Header.Get(common.RequestIDHeader) == "" {
		req.Header.Set(common.RequestIDHeader, uuid.NewString())
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.onUnauthorized(req.Context(), req)
	}
	return resp, nil
}

func (t *transport) onUnauthorized(ctx context.Context, req *http.Request) {
	t.log.Warn(ctx, "request rejected as unauthenticated",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(common.RequestIDHeader),
	)

	if err := t.store.ClearToken(ctx); err != nil {
		t.log.Error(ctx, "failed to clear token after 401", "error", err)
	}

	if t.location == nil {
		return
	}
	current := t.location.CurrentPath()
	for _, p := range authExemptPaths {
		if strings.Contains(current, p) {
			return
		}
	}
	t.location.Redirect(LoginPath)
}
