package server

import (
	"net/http"
	"slices"
	"strings"
	"sync"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Paths are matched by an [http.ServeMux]; each path keeps its own method table so a path can answer
// several methods and unsupported ones get a 405 with an Allow header. "/" matches only the root.
//
// Middleware wraps the whole router, so it also sees 404 and 405 responses. Register middleware before
// the first request is served.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware

	mu     sync.RWMutex
	routes map[string]map[string]http.Handler

	once    sync.Once
	wrapped http.Handler
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:    http.NewServeMux(),
		routes: make(map[string]map[string]http.Handler),
	}
}

// Use adds [Middleware] to the router's stack. The first middleware added is the outermost.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers handler for method and path. An empty method matches any method.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	method = strings.ToUpper(method)

	r.mu.Lock()
	defer r.mu.Unlock()

	methods, ok := r.routes[path]
	if !ok {
		methods = make(map[string]http.Handler)
		r.routes[path] = methods
		r.mux.Handle(pattern(path), r.dispatch(path))
	}
	methods[method] = handler
	if method == http.MethodGet {
		if _, ok := methods[http.MethodHead]; !ok {
			methods[http.MethodHead] = handler
		}
	}
}

// HandleFunc registers a handler function for method and path.
func (r *BasicRouter) HandleFunc(method, path string, fn http.HandlerFunc) {
	r.Handle(method, path, fn)
}

// Handler registers a custom [Handler] for every route it reports, for any method.
func (r *BasicRouter) Handler(handler Handler) {
	for _, route := range handler.Routes() {
		r.Handle("", route, handler)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.once.Do(func() { r.wrapped = r.Apply(r.mux) })
	r.wrapped.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}
	return wrapped
}

// Routes returns the registered paths, sorted.
func (r *BasicRouter) Routes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

func (r *BasicRouter) dispatch(path string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.mu.RLock()
		methods := r.routes[path]
		h, ok := methods[req.Method]
		if !ok {
			h, ok = methods[""]
		}
		allow := allowed(methods)
		r.mu.RUnlock()

		if !ok {
			w.Header().Set("Allow", allow)
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.ServeHTTP(w, req)
	})
}

func allowed(methods map[string]http.Handler) string {
	names := make([]string, 0, len(methods))
	for m := range methods {
		if m != "" {
			names = append(names, m)
		}
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

// pattern turns a route path into a ServeMux pattern that matches it exactly.
func pattern(path string) string {
	if path == "/" {
		return "/{$}"
	}
	return path
}
