/*
Package intercept turns failures raised while handling HTTP requests into responses end users can read.

Only failures of the kinds held by a [registry.Registry] are presented;
every other failure is left to the caller, unhandled, so infrastructure failures are never masked.

An [Interceptor] presents a failure by:

 1. returning the response the failure carries, if it carries one
 2. building a [Context] from the failure and the route the request matched
 3. negotiating a [Representation] from the request headers
 4. rendering that Representation at the configured status code, 406 by default
 5. setting the X-Error-Code header to the failure's code, if it has one

Structured responses are JSON objects:

	{"code": "oops", "error": "A woeful error", "title": "Oh no!"}

Document responses are rendered from the first existing template among [TemplateNames],
which may be chosen by the failure itself:

	ic, err := intercept.New(intercept.WithTemplateNames(
		"errors/{code}.html",
		"errors/{exc_type}.html",
		"safespace/problem.html",
	))

Wire an Interceptor into a router with middleware.Intercept or middleware.RecoverProblems.
*/
package intercept
