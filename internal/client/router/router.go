// Package router maps paths to screens and keeps the current location and
// history of the terminal client. Routes flagged RequiresAuth are guarded:
// navigating to one without a stored token lands on the login screen.
package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/recetario/internal/logging"
	"github.com/gorilla/mux"
)

var (
	ErrRouteNotFound    = errors.New("route not found")
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrNoHistory        = errors.New("no previous location")
)

// LoginPath is where the guard sends unauthenticated users.
const LoginPath = "/login"

const maxRedirects = 5

// TokenReader is what the guard consults. The credential store implements it.
type TokenReader interface {
	Token() string
}

// Location is a resolved path.
type Location struct {
	Path   string
	Route  Route
	Params map[string]string
}

// ID returns the numeric {id} parameter of the location.
func (l Location) ID() (int64, error) {
	raw, ok := l.Params["id"]
	if !ok {
		return 0, fmt.Errorf("%s has no id", l.Path)
	}
	return strconv.ParseInt(raw, 10, 64)
}

type Router struct {
	mux    *mux.Router
	byName map[string]Route
	auth   TokenReader
	log    logging.Logger

	mu      sync.Mutex
	current Location
	history []Location
	seq     uint64
}

// New builds a router over routes and places it at "/". Navigation is not
// guarded until the first Push.
func New(auth TokenReader, log logging.Logger, routes []Route) *Router {
	r := &Router{
		mux:    mux.NewRouter(),
		byName: make(map[string]Route, len(routes)),
		auth:   auth,
		log:    log,
	}
	r.mux.StrictSlash(false)
	for _, rt := range routes {
		r.mux.Path(rt.Path).Name(rt.Name)
		r.byName[rt.Name] = rt
	}
	if home, err := r.Resolve("/"); err == nil {
		r.current = home
	}
	return r
}

// Resolve matches path against the route table without navigating.
func (r *Router) Resolve(path string) (Location, error) {
	u, err := url.Parse(path)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}
	req := &http.Request{Method: http.MethodGet, URL: u}

	var match mux.RouteMatch
	if !r.mux.Match(req, &match) || match.Route == nil || match.MatchErr != nil {
		return Location{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}

	route := r.byName[match.Route.GetName()]
	return Location{Path: u.Path, Route: route, Params: match.Vars}, nil
}

// URL builds the path of a named route, e.g. URL(RouteRecipeDetail, "id", "3").
func (r *Router) URL(name string, pairs ...string) (string, error) {
	route := r.mux.Get(name)
	if route == nil {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", err
	}
	return u.Path, nil
}

// guarded resolves path and follows guard redirects until it reaches a
// location the current credential may see.
func (r *Router) guarded(path string) (Location, error) {
	for i := 0; i <= maxRedirects; i++ {
		loc, err := r.Resolve(path)
		if err != nil {
			return Location{}, err
		}
		if !loc.Route.RequiresAuth || r.auth.Token() != "" {
			return loc, nil
		}
		path = LoginPath
	}
	return Location{}, ErrTooManyRedirects
}

// Push navigates to path and records it in history. On error the current
// location is left unchanged. Navigating to the current location is a no-op.
func (r *Router) Push(ctx context.Context, path string) error {
	loc, err := r.guarded(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	from := r.current.Path
	if loc.Path == from {
		r.mu.Unlock()
		return nil
	}
	r.history = append(r.history, r.current)
	r.current = loc
	r.seq++
	r.mu.Unlock()

	if loc.Path != path {
		r.log.Info(ctx, "navigation redirected", "from", from, "requested", path, "to", loc.Path)
	} else {
		r.log.Debug(ctx, "navigated", "from", from, "to", loc.Path)
	}
	return nil
}

// Redirect is Push for callers that cannot act on an error, such as the
// HTTP transport. Failures are logged.
func (r *Router) Redirect(path string) {
	ctx := context.Background()
	if err := r.Push(ctx, path); err != nil {
		r.log.Error(ctx, "redirect failed", "path", path, "error", err)
	}
}

// Back returns to the previous location. The guard runs again, so going
// back to a protected screen after logout lands on login.
func (r *Router) Back(ctx context.Context) error {
	r.mu.Lock()
	if len(r.history) == 0 {
		r.mu.Unlock()
		return ErrNoHistory
	}
	prev := r.history[len(r.history)-1]
	r.mu.Unlock()

	loc, err := r.guarded(prev.Path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.history = r.history[:len(r.history)-1]
	r.current = loc
	r.seq++
	r.mu.Unlock()

	r.log.Debug(ctx, "navigated back", "to", loc.Path)
	return nil
}

func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) CurrentPath() string {
	return r.Current().Path
}

// Seq increases with every committed navigation.
func (r *Router) Seq() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}
