package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/safespace"
	"github.com/xy-planning-network/safespace/logger"
)

const maskedVal = "xxxxxxx"

// maskedParams are query parameters whose values are never logged.
var maskedParams = []string{"password", "token"}

// LogRequest logs the originating IP address, method, requested URL and response status of every request,
// using the enclosed implementation of logger.Logger.
//
// The values of the password and token query parameters are masked.
//
// If logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := r.URL.Path
			q := r.URL.Query()
			for _, key := range maskedParams {
				if q.Has(key) {
					q.Set(key, maskedVal)
				}
			}

			masked := r.Clone(r.Context())
			masked.URL.RawQuery = q.Encode()
			if masked.URL.RawQuery != "" {
				uri += "?" + masked.URL.RawQuery
			}

			strs := []string{r.Method, uri}
			if ip, ok := r.Context().Value(safespace.IpAddrKey).(string); ok && ip != "" {
				strs = append([]string{ip}, strs...)
			}

			sw := &statusWriter{ResponseWriter: w}
			h.ServeHTTP(sw, r)

			strs = append(strs, fmt.Sprint(sw.status()))
			ls.Info(strings.Join(strs, " "), &logger.LogContext{Request: masked})
		})
	}
}

// statusWriter records the status code written through it.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.code == 0 {
		sw.code = code
	}

	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.code == 0 {
		sw.code = http.StatusOK
	}

	return sw.ResponseWriter.Write(b)
}

func (sw *statusWriter) status() int {
	if sw.code == 0 {
		return http.StatusOK
	}

	return sw.code
}

// Unwrap exposes the underlying http.ResponseWriter to http.ResponseController.
func (sw *statusWriter) Unwrap() http.ResponseWriter { return sw.ResponseWriter }
