package resp_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/safespace/http/resp"
)

func TestResponseValid(t *testing.T) {
	var nilResp *resp.Response
	tcs := []struct {
		name     string
		r        *resp.Response
		expected error
	}{
		{"Nil", nilResp, resp.ErrInvalid},
		{"Zero-Value", &resp.Response{}, resp.ErrInvalid},
		{"Too-High", resp.New(600, nil), resp.ErrInvalid},
		{"OK", resp.New(http.StatusOK, nil), nil},
		{"Not-Acceptable", resp.New(http.StatusNotAcceptable, []byte("nope")), nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.r.Valid(), tc.expected)
		})
	}
}

func TestResponseWrite(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := resp.New(http.StatusOK, []byte("nice."))
	r.Header.Set("X-Error-Code", "oops")

	// Act
	err := r.Write(w)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "nice.", w.Body.String())
	require.Equal(t, "oops", w.Header().Get("X-Error-Code"))

	// Arrange
	w = httptest.NewRecorder()

	// Act
	err = new(resp.Response).Write(w)

	// Assert
	require.ErrorIs(t, err, resp.ErrInvalid)
	require.Empty(t, w.Body.String())
}
