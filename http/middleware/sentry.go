package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/safespace"
)

// ReportPanic recovers panics and reports them to Sentry,
// outside of the Development environment.
// In Development, panics are left alone so they surface on the console.
//
// ReportPanic ought to wrap RecoverProblems,
// so only panics that are not presented to the end user are reported.
func ReportPanic(env safespace.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		return sh.Handle(h)
	}
}
