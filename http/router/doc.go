/*
Package router routes HTTP requests to handlers, thinly wrapping [mux.Router].

A [Router] leverages a standardized data model, a [Route], when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

Every Route may be named, and every Router may be scoped to a namespace and an app.
Which Route matched is recorded in the request context as a [safespace.RouteMatch],
so failure templates can be chosen by route:

	r := router.New(env)
	accounts := r.Namespace("/accounts", "accounts", "billing")
	accounts.Handle(router.Route{
		Path:    "/{id}",
		Method:  http.MethodGet,
		Handler: intercept(showAccount),
		Name:    "detail",
	})

A request to /accounts/1 carries the view name "accounts:detail",
the URL name "detail", the namespace "accounts" and the app name "billing".
*/
package router
