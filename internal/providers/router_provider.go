package providers

import (
	"activitybot/internal/structures"
	"net/http"
)

type Middleware func(http.Handler) http.Handler

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	// With returns a view of the router that wraps every handler registered
	// through it with the given middleware, outermost first.
	With(middleware ...Middleware) RouterProviderInterface
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes     *[]structures.Route
	middleware []Middleware
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(http.MethodPost, url, handler)
}

func (rp *RouterProvider) With(middleware ...Middleware) RouterProviderInterface {
	chain := make([]Middleware, 0, len(rp.middleware)+len(middleware))
	chain = append(chain, rp.middleware...)
	chain = append(chain, middleware...)
	return &RouterProvider{routes: rp.routes, middleware: chain}
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return *rp.routes
}

func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	for i := len(rp.middleware) - 1; i >= 0; i-- {
		handler = rp.middleware[i](handler)
	}
	*rp.routes = append(*rp.routes, structures.Route{
		Url:     url,
		Method:  method,
		Handler: methodHandler(method, handler),
	})
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{routes: &[]structures.Route{}}
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
