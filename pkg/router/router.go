// Package router is a thin layer over chi that names every route, so the
// route table can be listed (route:list) and paths can be built back from
// their names.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Middleware is a standard net/http middleware.
type Middleware func(http.Handler) http.Handler

// RouteInfo is one row of the route table.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// table is the shared state behind a Router and all its Groups.
type table struct {
	mux chi.Router

	mu     sync.RWMutex
	byName map[string]string
	infos  []RouteInfo
}

func (t *table) add(method, path, name string, h http.Handler) {
	t.mux.Method(method, path, h)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.infos = append(t.infos, RouteInfo{Method: method, Path: path, Name: name})
	if name != "" {
		t.byName[name] = path
	}
}

// Router registers named routes. The zero value is not usable; call New.
type Router struct {
	t           *table
	prefix      string
	middlewares []Middleware
}

// Group is a sub-router sharing the parent's route table, with an added
// path prefix and middleware chain.
type Group = Router

func New() *Router {
	return &Router{
		t: &table{
			mux:    chi.NewRouter(),
			byName: make(map[string]string),
		},
	}
}

// Handler returns the http.Handler serving all registered routes.
func (r *Router) Handler() http.Handler { return r.t.mux }

// Use appends global middleware. Must be called before any route is mounted
// (a chi constraint).
func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.t.mux.Use(mw)
	}
}

// Group derives a sub-router under prefix with extra middleware.
func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		t:           r.t,
		prefix:      join(r.prefix, prefix),
		middlewares: append(append([]Middleware(nil), r.middlewares...), middlewares...),
	}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodGet, path, name, h, mw)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodPost, path, name, h, mw)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodPut, path, name, h, mw)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodPatch, path, name, h, mw)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.mount(http.MethodDelete, path, name, h, mw)
}

// HandleFunc mounts an anonymous GET route.
func (r *Router) HandleFunc(path string, h http.HandlerFunc) {
	r.mount(http.MethodGet, path, "", h, nil)
}

func (r *Router) mount(method, path, name string, h http.Handler, mw []Middleware) {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}
	r.t.add(method, join(r.prefix, path), name, h)
}

// Routes returns a copy of the route table in registration order.
func (r *Router) Routes() []RouteInfo {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	return append([]RouteInfo(nil), r.t.infos...)
}

// Path returns the pattern registered under name.
func (r *Router) Path(name string) (string, bool) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	path, ok := r.t.byName[name]
	return path, ok
}

// URL substitutes params into the named route's pattern.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}
	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}
	return path, nil
}

// join concatenates path segments into a clean absolute pattern.
func join(parts ...string) string {
	var segments []string
	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return "/" + strings.Join(segments, "/")
}
