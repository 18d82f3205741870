package rest

import (
	"net/http"
	"sort"
	"strings"
)

// Router registers handlers per path and method. A path answers 405 for
// methods that were not registered on it.
type Router struct {
	routes map[string]map[string]http.Handler
}

func NewRouter() *Router {
	return &Router{routes: make(map[string]map[string]http.Handler)}
}

func (rt *Router) Get(path string, handler http.Handler) {
	rt.handle(http.MethodGet, path, handler)
}

func (rt *Router) Post(path string, handler http.Handler) {
	rt.handle(http.MethodPost, path, handler)
}

func (rt *Router) handle(method, path string, handler http.Handler) {
	byMethod, ok := rt.routes[path]
	if !ok {
		byMethod = make(map[string]http.Handler)
		rt.routes[path] = byMethod
	}
	byMethod[method] = handler
}

// Paths returns registered paths in lexical order.
func (rt *Router) Paths() []string {
	paths := make([]string, 0, len(rt.routes))
	for p := range rt.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Mux builds a ServeMux with one entry per registered path.
func (rt *Router) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	for path, byMethod := range rt.routes {
		mux.Handle(path, methodHandler(byMethod))
	}
	return mux
}

func methodHandler(byMethod map[string]http.Handler) http.Handler {
	allowed := make([]string, 0, len(byMethod))
	for m := range byMethod {
		allowed = append(allowed, m)
	}
	sort.Strings(allowed)
	allow := strings.Join(allowed, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := byMethod[r.Method]
		if !ok {
			w.Header().Set("Allow", allow)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.ServeHTTP(w, r)
	})
}
