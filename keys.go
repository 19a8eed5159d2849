package safespace

import "context"

type Key string

const (
	// routeMatchKey stashes the RouteMatch resolved for an HTTP request.
	routeMatchKey Key = "RouteMatchKey"

	// IpAddrKey stashes the public IP address an HTTP request originated from.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "safespace context key: " + string(k)
}

// A RouteMatch describes the route an HTTP request resolved to.
// Any field may be empty when the router had nothing to say about it.
type RouteMatch struct {
	// AppName is the application the route belongs to.
	AppName string

	// Namespace is the namespace the route was registered under.
	Namespace string

	// URLName is the name the route was registered with.
	URLName string

	// ViewName is the fully qualified name of the view handling the route,
	// conventionally "namespace:url_name".
	ViewName string
}

// NewRouteMatchContext adds m to ctx, returning the resulting context.
// A RouteMatch already in ctx is replaced.
func NewRouteMatchContext(ctx context.Context, m RouteMatch) context.Context {
	return context.WithValue(ctx, routeMatchKey, m)
}

// RouteMatchFromContext retrieves the RouteMatch in ctx.
// The boolean reports whether one was set.
func RouteMatchFromContext(ctx context.Context) (RouteMatch, bool) {
	m, ok := ctx.Value(routeMatchKey).(RouteMatch)
	return m, ok
}
