package intercept_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/safespace"
	"github.com/xy-planning-network/safespace/http/intercept"
)

func TestNegotiate(t *testing.T) {
	tcs := []struct {
		name     string
		headers  map[string]string
		expected intercept.Representation
	}{
		{"none", nil, intercept.Document},
		{"html", map[string]string{"Accept": "text/html"}, intercept.Document},
		{"wildcard", map[string]string{"Accept": "*/*"}, intercept.Document},
		{"json", map[string]string{"Accept": "application/json"}, intercept.Structured},
		{"json-among-others", map[string]string{"Accept": "text/html;q=0.9, application/json;q=0.1"}, intercept.Structured},
		{"json-zero-quality", map[string]string{"Accept": "application/json;q=0"}, intercept.Structured},
		{"xhr", map[string]string{"X-Requested-With": "XMLHttpRequest"}, intercept.Structured},
		{"xhr-html", map[string]string{"X-Requested-With": "XMLHttpRequest", "Accept": "text/html"}, intercept.Structured},
		{"xhr-wrong-case", map[string]string{"X-Requested-With": "xmlhttprequest"}, intercept.Document},
		{"other-requester", map[string]string{"X-Requested-With": "Fetch"}, intercept.Document},
		{"lower-header", map[string]string{"x-requested-with": "XMLHttpRequest"}, intercept.Structured},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}

			// Act
			actual := intercept.Negotiate(r)

			// Assert
			require.Equal(t, tc.expected, actual)
			require.Equal(t, actual, intercept.Negotiate(r))
		})
	}
}

func TestNegotiateNil(t *testing.T) {
	require.Equal(t, intercept.Document, intercept.Negotiate(nil))
}

func TestRepresentationValid(t *testing.T) {
	require.NoError(t, intercept.Document.Valid())
	require.NoError(t, intercept.Structured.Valid())
	require.ErrorIs(t, intercept.Representation("xml").Valid(), safespace.ErrNotValid)
	require.Equal(t, "structured", intercept.Structured.String())
}
