package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/safespace"
	"github.com/xy-planning-network/safespace/http/middleware"
)

const namespaceSep = ":"

// A Route maps a path and HTTP method to an [http.Handler].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
//
// Name and View describe the Route to handlers and failure templates
// through the [safespace.RouteMatch] in the request context.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []middleware.Adapter

	// Name identifies the Route within its namespace.
	Name string

	// View overrides the view name, which otherwise is Name qualified by the namespace,
	// as in "accounts:detail".
	View string
}

// A Router routes requests to the Routes registered with it,
// recording which Route matched in the request context.
type Router struct {
	app           string
	env           safespace.Environment
	everyReqStack []middleware.Adapter
	namespace     string
	r             *mux.Router
	root          *mux.Router
}

// New constructs a [*Router] for the given environment.
func New(env safespace.Environment) *Router {
	r := mux.NewRouter()
	return &Router{env: env, r: r, root: r}
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.Handler] as the default handler
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.Handler) {
	r.root.NotFoundHandler = middleware.Chain(
		handler,
		append([]middleware.Adapter{middleware.ReportPanic(r.env)}, r.everyReqStack...)...,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
//
// Middlewares apply in this order:
// those set by OnEveryRequest, then middlewares, then those on the Route.
// Before all of them, the [safespace.RouteMatch] is added to the request context
// and panics are reported through [middleware.ReportPanic].
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		m := r.match(route)

		mws := []middleware.Adapter{middleware.ReportPanic(r.env), injectRouteMatch(m)}
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)

		mr := r.r.Handle(route.Path, middleware.Chain(route.Handler, mws...))
		if route.Method != "" {
			mr = mr.Methods(route.Method)
		}

		if m.ViewName != "" {
			mr.Name(m.ViewName)
		}
	}
}

// Namespace constructs a [*Router] handling requests to endpoints matching the prefix,
// whose Routes belong to the namespace and app.
// Namespaces nest: "accounts" within "admin" is "admin:accounts".
// An empty app keeps the app of r.
func (r *Router) Namespace(prefix, namespace, app string) *Router {
	sub := r.Subrouter(prefix)
	if r.namespace != "" && namespace != "" {
		namespace = r.namespace + namespaceSep + namespace
	}

	if namespace == "" {
		namespace = r.namespace
	}

	if app == "" {
		app = r.app
	}

	sub.namespace = namespace
	sub.app = app

	return sub
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.root.ServeHTTP(w, req)
}

// Subrouter constructs a [*Router] that handles requests to endpoints matching the prefix,
// in the same namespace as r.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		app:           r.app,
		env:           r.env,
		everyReqStack: append([]middleware.Adapter(nil), r.everyReqStack...),
		namespace:     r.namespace,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		root:          r.root,
	}
}

// URL builds the URL of the Route with the view name,
// filling in path variables from pairs of keys and values.
func (r *Router) URL(view string, pairs ...string) (*url.URL, error) {
	route := r.root.Get(view)
	if route == nil {
		return nil, fmt.Errorf("%w: no route named %q", safespace.ErrNotExist, view)
	}

	return route.URL(pairs...)
}

// match describes route as registered on r.
func (r *Router) match(route Route) safespace.RouteMatch {
	m := safespace.RouteMatch{
		AppName:   r.app,
		Namespace: r.namespace,
		URLName:   route.Name,
		ViewName:  route.View,
	}

	if m.ViewName == "" && route.Name != "" {
		m.ViewName = strings.TrimPrefix(r.namespace+namespaceSep+route.Name, namespaceSep)
	}

	return m
}

// injectRouteMatch adds m to the context of every request.
func injectRouteMatch(m safespace.RouteMatch) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			h.ServeHTTP(w, req.WithContext(safespace.NewRouteMatchContext(req.Context(), m)))
		})
	}
}
