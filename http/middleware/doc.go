/*
Package middleware defines what a middleware is in safespace and a set of middlewares
for presenting failures to end users.

The available middlewares are:
  - InjectIPAddress
  - LogRequest
  - RecoverProblems
  - ReportPanic
  - RequestID

Intercept adapts handlers returning errors into http.Handlers,
handing every failure to a FailureHook, like *intercept.Interceptor.

A typical chain:

	adpts := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.ReportPanic(env),
		middleware.RecoverProblems(ic, responder, log),
	}
*/
package middleware
