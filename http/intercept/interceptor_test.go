package intercept_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/safespace"
	"github.com/xy-planning-network/safespace/config"
	"github.com/xy-planning-network/safespace/http/intercept"
	"github.com/xy-planning-network/safespace/http/intercept/intercepttest"
	"github.com/xy-planning-network/safespace/http/req"
	"github.com/xy-planning-network/safespace/http/resp"
	"github.com/xy-planning-network/safespace/http/template"
	tt "github.com/xy-planning-network/safespace/http/template/templatetest"
	"github.com/xy-planning-network/safespace/logger"
	"github.com/xy-planning-network/safespace/problem"
	"github.com/xy-planning-network/safespace/registry"
)

func newLogger(b *bytes.Buffer) logger.Logger {
	return logger.New(logger.WithLogger(log.New(b, "", 0)))
}

func newResponder(files ...tt.FileMocker) *resp.Responder {
	return resp.NewResponder(
		resp.WithLogger(newLogger(new(bytes.Buffer))),
		resp.WithParser(tt.NewParser(files...)),
		resp.WithEngine("text", tt.NewTextParser(files...)),
	)
}

func newInterceptor(t *testing.T, opts ...intercept.InterceptorOptFn) *intercept.Interceptor {
	t.Helper()

	defaults := []intercept.InterceptorOptFn{
		intercept.WithLogger(newLogger(new(bytes.Buffer))),
		intercept.WithResponder(newResponder()),
	}

	ic, err := intercept.New(append(defaults, opts...)...)
	require.NoError(t, err)

	return ic
}

func newRequest(headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/accounts/1", nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}

	return r
}

var (
	html = map[string]string{"Accept": "text/html"}
	xhr  = map[string]string{"X-Requested-With": "XMLHttpRequest"}
	json = map[string]string{"Accept": "application/json"}
)

func TestNew(t *testing.T) {
	tcs := []struct {
		name string
		opts []intercept.InterceptorOptFn
		err  error
	}{
		{"defaults", nil, nil},
		{"status", []intercept.InterceptorOptFn{intercept.WithStatus(http.StatusUnprocessableEntity)}, nil},
		{"engine", []intercept.InterceptorOptFn{intercept.WithEngine("text")}, nil},
		{"bad-status", []intercept.InterceptorOptFn{intercept.WithStatus(1000)}, safespace.ErrBadConfig},
		{"unknown-engine", []intercept.InterceptorOptFn{intercept.WithEngine("jinja")}, safespace.ErrBadConfig},
		{"bad-template-name", []intercept.InterceptorOptFn{intercept.WithTemplateNames("{status}.html")}, intercept.ErrBadTemplateName},
		{
			"unknown-kind",
			[]intercept.InterceptorOptFn{intercept.WithConfig(config.Config{ExceptionKinds: []string{"db.Error"}})},
			registry.ErrUnknownKind,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			opts := []intercept.InterceptorOptFn{
				intercept.WithLogger(newLogger(new(bytes.Buffer))),
				intercept.WithResponder(newResponder()),
			}

			// Act
			ic, err := intercept.New(append(opts, tc.opts...)...)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err != nil {
				require.Nil(t, ic)
				return
			}

			require.NotNil(t, ic)
		})
	}
}

func TestOnFailureNotHandled(t *testing.T) {
	tcs := []struct {
		name string
		err  error
	}{
		{"nil", nil},
		{"db", errors.New("pq: connection refused")},
		{"wrapped-db", fmt.Errorf("cannot find account: %w", errors.New("pq: connection refused"))},
		{"sentinel", safespace.ErrNotExist},
	}

	for _, tc := range tcs {
		for _, headers := range []map[string]string{html, xhr} {
			t.Run(tc.name, func(t *testing.T) {
				// Arrange
				ic := newInterceptor(t)

				// Act
				actual, ok, err := ic.OnFailure(newRequest(headers), tc.err)

				// Assert
				require.NoError(t, err)
				require.False(t, ok)
				require.Nil(t, actual)
				require.False(t, ic.IsPresentable(tc.err))
			})
		}
	}
}

func TestOnFailureDocument(t *testing.T) {
	// Arrange
	ic := newInterceptor(t)
	failure := problem.New("A woeful error", problem.WithTitle("Oh no!"))

	// Act
	actual, ok, err := ic.OnFailure(newRequest(html), failure)

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotAcceptable, actual.Status)
	require.Contains(t, string(actual.Body), "A woeful error")
	require.Contains(t, string(actual.Body), "Oh no!")
	require.Equal(t, "text/html; charset=utf-8", actual.Header.Get("Content-Type"))
	require.Empty(t, actual.Header.Values(intercept.ErrorCodeHeader))
}

func TestOnFailureStructured(t *testing.T) {
	for _, headers := range []map[string]string{xhr, json} {
		// Arrange
		ic := newInterceptor(t)
		failure := problem.New("A woeful error", problem.WithTitle("Oh no!"))

		// Act
		actual, ok, err := ic.OnFailure(newRequest(headers), failure)

		// Assert
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, http.StatusNotAcceptable, actual.Status)
		require.JSONEq(t, `{"code": null, "error": "A woeful error", "title": "Oh no!"}`, string(actual.Body))
		require.Contains(t, actual.Header.Get("Content-Type"), "application/json")
		require.Empty(t, actual.Header.Values(intercept.ErrorCodeHeader))
	}
}

func TestOnFailureCode(t *testing.T) {
	// Arrange
	ic := newInterceptor(t)
	failure := problem.New("A woeful error", problem.WithTitle("Oh no!"), problem.WithCode("oops"))

	// Act
	doc, ok, err := ic.OnFailure(newRequest(html), failure)

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "oops", doc.Header.Get(intercept.ErrorCodeHeader))
	require.Contains(t, string(doc.Body), "oops")

	// Act
	structured, ok, err := ic.OnFailure(newRequest(xhr), failure)

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "oops", structured.Header.Get(intercept.ErrorCodeHeader))
	require.JSONEq(t, `{"code": "oops", "error": "A woeful error", "title": "Oh no!"}`, string(structured.Body))
}

func TestOnFailureOverride(t *testing.T) {
	for _, headers := range []map[string]string{html, xhr} {
		// Arrange
		ic := newInterceptor(t)
		override := resp.New(http.StatusOK, []byte("nice."))
		failure := problem.New("A woeful error", problem.WithCode("oops"), problem.WithResponse(override))

		// Act
		actual, ok, err := ic.OnFailure(newRequest(headers), failure)

		// Assert
		require.NoError(t, err)
		require.True(t, ok)
		require.Same(t, override, actual)
		require.Equal(t, []byte("nice."), actual.Body)
		require.Equal(t, http.StatusOK, actual.Status)
		require.Empty(t, actual.Header.Values(intercept.ErrorCodeHeader))
	}
}

func TestOnFailureInvalidOverride(t *testing.T) {
	// Arrange
	ic := newInterceptor(t)
	failure := problem.New("A woeful error", problem.WithResponse(&resp.Response{}))

	// Act
	actual, ok, err := ic.OnFailure(newRequest(xhr), failure)

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotAcceptable, actual.Status)
	require.JSONEq(t, `{"code": null, "error": "A woeful error", "title": "Error"}`, string(actual.Body))
}

func TestOnFailureKinds(t *testing.T) {
	// Arrange
	tcs := []struct {
		name    string
		failure error
		title   string
	}{
		{"wrapped", fmt.Errorf("handling: %w", problem.New("A woeful error")), "Error"},
		{"subtype", problem.NewNotFound("A woeful error"), problem.NotFoundTitle},
		{"embedded", CustomError{problem.New("A woeful error", problem.WithTitle("Custom"))}, "Custom"},
		{"validation", req.ValidationErrors{{Field: "name", Rule: "required"}}, "Error"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			ic := newInterceptor(t)

			// Act
			actual, ok, err := ic.OnFailure(newRequest(xhr), tc.failure)

			// Assert
			require.NoError(t, err)
			require.True(t, ok)
			require.Contains(t, string(actual.Body), fmt.Sprintf(`"title":%q`, tc.title))
		})
	}
}

func TestOnFailureTemplateNames(t *testing.T) {
	// Arrange
	files := []tt.FileMocker{
		tt.NewMockFile("errors/oops.html", []byte(`oops: {{ .message }}`)),
		tt.NewMockFile("errors/custom_error.html", []byte(`custom: {{ .title }}`)),
		tt.NewMockFile("accounts/detail.html", []byte(`{{ .view_name }} {{ .app_name }}`)),
	}

	tcs := []struct {
		name     string
		failure  error
		match    *safespace.RouteMatch
		expected string
	}{
		{"by-code", problem.New("A woeful error", problem.WithCode("oops")), nil, "oops: A woeful error"},
		{"by-type", CustomError{problem.New("A woeful error", problem.WithTitle("Oh no!"))}, nil, "custom: Oh no!"},
		{
			"by-route",
			problem.New("A woeful error"),
			&safespace.RouteMatch{AppName: "accounts", Namespace: "accounts", URLName: "detail", ViewName: "accounts:detail"},
			"accounts:detail accounts",
		},
		{"fallback", problem.New("A woeful error"), nil, "A woeful error"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			ic := newInterceptor(t,
				intercept.WithResponder(newResponder(files...)),
				intercept.WithTemplateNames(
					"errors/{code}.html",
					"errors/{exc_type}.html",
					"{namespace}/{url_name}.html",
					"safespace/problem.html",
				),
			)

			r := newRequest(html)
			if tc.match != nil {
				r = r.WithContext(safespace.NewRouteMatchContext(r.Context(), *tc.match))
			}

			// Act
			actual, ok, err := ic.OnFailure(r, tc.failure)

			// Assert
			require.NoError(t, err)
			require.True(t, ok)
			require.Contains(t, string(actual.Body), tc.expected)
		})
	}
}

func TestOnFailureEngine(t *testing.T) {
	// Arrange
	files := []tt.FileMocker{tt.NewMockFile("errors/problem.txt", []byte(`{{ .title }}: {{ .message }}`))}
	ic := newInterceptor(t,
		intercept.WithResponder(newResponder(files...)),
		intercept.WithEngine("text"),
		intercept.WithTemplateNames("errors/problem.txt"),
	)

	// Act
	actual, ok, err := ic.OnFailure(newRequest(html), problem.New("<b>bold</b>"))

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Error: <b>bold</b>", string(actual.Body))
	require.Equal(t, "text/plain; charset=utf-8", actual.Header.Get("Content-Type"))
}

func TestOnFailureMissingTemplate(t *testing.T) {
	// Arrange
	ic := newInterceptor(t, intercept.WithTemplateNames("errors/{code}.html"))

	// Act
	actual, ok, err := ic.OnFailure(newRequest(html), problem.New("A woeful error"))

	// Assert
	require.ErrorIs(t, err, template.ErrNoTemplate)
	require.Contains(t, err.Error(), "errors/None.html")
	require.False(t, ok)
	require.Nil(t, actual)
}

func TestOnFailureMisconfiguredRenderer(t *testing.T) {
	tcs := []struct {
		name     string
		response *resp.Response
	}{
		{"nil", nil},
		{"zero-status", &resp.Response{Body: []byte("nope")}},
		{"bad-status", resp.New(1000, nil)},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			failure := problem.New("A woeful error")
			renderer := intercepttest.NewMockRenderer(ctrl)
			renderer.EXPECT().
				Render(gomock.Any(), failure, gomock.Any(), http.StatusNotAcceptable).
				Return(tc.response, nil)

			ic := newInterceptor(t, intercept.WithRenderer(intercept.Structured, renderer))

			// Act
			actual, ok, err := ic.OnFailure(newRequest(xhr), failure)

			// Assert
			require.ErrorIs(t, err, intercept.ErrMisconfiguredRenderer)
			require.False(t, ok)
			require.Nil(t, actual)
		})
	}
}

func TestOnFailureCustomRenderer(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failure := problem.New("A woeful error", problem.WithCode("oops"))
	renderer := intercepttest.NewMockRenderer(ctrl)
	renderer.EXPECT().
		Render(gomock.Any(), failure, gomock.Any(), http.StatusTeapot).
		DoAndReturn(func(_ *http.Request, _ error, c intercept.Context, status int) (*resp.Response, error) {
			require.Equal(t, "oops", c.Code)
			require.Equal(t, "problem", c.ExcType)
			return &resp.Response{Status: status, Body: []byte(c.Message)}, nil
		})

	ic := newInterceptor(t,
		intercept.WithRenderer(intercept.Document, renderer),
		intercept.WithStatusFn(func(*http.Request, error, int) int { return http.StatusTeapot }),
	)

	// Act
	actual, ok, err := ic.OnFailure(newRequest(html), failure)

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, http.StatusTeapot, actual.Status)
	require.Equal(t, []byte("A woeful error"), actual.Body)
	require.Equal(t, "oops", actual.Header.Get(intercept.ErrorCodeHeader))
}

func TestOnFailureRendererError(t *testing.T) {
	// Arrange
	boom := errors.New("boom")
	ic := newInterceptor(t, intercept.WithRenderer(intercept.Structured, intercept.RendererFunc(
		func(*http.Request, error, intercept.Context, int) (*resp.Response, error) {
			return nil, boom
		},
	)))

	// Act
	actual, ok, err := ic.OnFailure(newRequest(xhr), problem.New("A woeful error"))

	// Assert
	require.ErrorIs(t, err, boom)
	require.False(t, ok)
	require.Nil(t, actual)
}

func TestOnFailureStatusFn(t *testing.T) {
	// Arrange
	statusFn := func(_ *http.Request, failure error, status int) int {
		var nf *problem.NotFound
		if errors.As(failure, &nf) {
			return http.StatusNotFound
		}

		return status
	}

	ic := newInterceptor(t, intercept.WithStatus(http.StatusBadRequest), intercept.WithStatusFn(statusFn))

	// Act
	notFound, _, err := ic.OnFailure(newRequest(xhr), problem.NewNotFound("gone"))
	require.NoError(t, err)

	other, _, err := ic.OnFailure(newRequest(xhr), problem.New("bad"))
	require.NoError(t, err)

	// Assert
	require.Equal(t, http.StatusNotFound, notFound.Status)
	require.Equal(t, http.StatusBadRequest, other.Status)

	// Arrange
	ic = newInterceptor(t, intercept.WithStatusFn(func(*http.Request, error, int) int { return 0 }))

	// Act
	_, ok, err := ic.OnFailure(newRequest(xhr), problem.New("bad"))

	// Assert
	require.ErrorIs(t, err, safespace.ErrBadConfig)
	require.False(t, ok)
}

func TestOnFailureLocalizedTitle(t *testing.T) {
	// Arrange
	ic := newInterceptor(t)
	r := newRequest(xhr)
	r.Header.Set("Accept-Language", "de-DE,de;q=0.9")

	// Act
	actual, ok, err := ic.OnFailure(r, problem.New("A woeful error"))

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"code": null, "error": "A woeful error", "title": "Fehler"}`, string(actual.Body))
}

func TestOnFailureLogs(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	ic := newInterceptor(t, intercept.WithLogger(newLogger(b)))

	// Act
	_, ok, err := ic.OnFailure(newRequest(xhr), problem.New("A woeful error", problem.WithCode("oops")))

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, b.String(), "presenting failure")
	require.Contains(t, b.String(), "oops")
}

func TestReload(t *testing.T) {
	// Arrange
	ic := newInterceptor(t)
	p := problem.New("A woeful error")
	nf := problem.NewNotFound("gone")

	cfg := config.Default()
	cfg.ExceptionKinds = []string{registry.NotFoundKind}
	cfg.HTTPStatus = http.StatusNotFound
	cfg.TemplateNames = []string{"errors/{code}.html", "safespace/problem.html"}

	// Act
	err := ic.Reload(cfg)

	// Assert
	require.NoError(t, err)
	require.Equal(t, cfg, ic.Config())

	_, ok, err := ic.OnFailure(newRequest(xhr), p)
	require.NoError(t, err)
	require.False(t, ok)

	actual, ok, err := ic.OnFailure(newRequest(xhr), nf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, actual.Status)
}

func TestReloadFailureKeepsSettings(t *testing.T) {
	tcs := []struct {
		name string
		cfg  func(config.Config) config.Config
		err  error
	}{
		{"bad-kind", func(c config.Config) config.Config {
			c.ExceptionKinds = []string{"db.Error"}
			return c
		}, registry.ErrUnknownKind},
		{"bad-name", func(c config.Config) config.Config {
			c.TemplateNames = []string{"{status}.html"}
			return c
		}, intercept.ErrBadTemplateName},
		{"bad-status", func(c config.Config) config.Config {
			c.HTTPStatus = 42
			return c
		}, safespace.ErrBadConfig},
		{"bad-engine", func(c config.Config) config.Config {
			c.TemplateEngine = "jinja"
			return c
		}, safespace.ErrBadConfig},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ic := newInterceptor(t)
			before := ic.Config()

			cfg := config.Default()
			cfg.ExceptionKinds = []string{registry.NotFoundKind}
			cfg.HTTPStatus = http.StatusTeapot

			// Act
			err := ic.Reload(tc.cfg(cfg))

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, before, ic.Config())

			actual, ok, err := ic.OnFailure(newRequest(xhr), problem.New("A woeful error"))
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, http.StatusNotAcceptable, actual.Status)
		})
	}
}

func TestReloadConcurrent(t *testing.T) {
	// Arrange
	ic := newInterceptor(t)
	failure := problem.New("A woeful error", problem.WithCode("oops"))

	cfg := config.Default()
	cfg.ExceptionKinds = []string{registry.ProblemKind}
	cfg.HTTPStatus = http.StatusBadRequest

	// Act
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := ic.Reload(cfg); err != nil {
				t.Error(err)
			}
		}()

		go func() {
			defer wg.Done()
			actual, ok, err := ic.OnFailure(newRequest(xhr), failure)
			if err != nil || !ok {
				t.Error("failure not presented", err)
				return
			}

			if actual.Status != http.StatusBadRequest && actual.Status != http.StatusNotAcceptable {
				t.Error("unexpected status", actual.Status)
			}
		}()
	}

	// Assert
	wg.Wait()
}

func TestReloadSwapsKindsWithSettings(t *testing.T) {
	// Arrange
	ic := newInterceptor(t)
	nf := problem.NewNotFound("gone")

	notFound := config.Default()
	notFound.ExceptionKinds = []string{registry.NotFoundKind}
	notFound.HTTPStatus = http.StatusNotFound

	validation := config.Default()
	validation.ExceptionKinds = []string{registry.ValidationErrorsKind}
	validation.HTTPStatus = http.StatusBadRequest

	// Act
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			if err := ic.Reload(notFound); err != nil {
				t.Error(err)
			}
		}()

		go func() {
			defer wg.Done()
			if err := ic.Reload(validation); err != nil {
				t.Error(err)
			}
		}()

		go func() {
			defer wg.Done()
			actual, ok, err := ic.OnFailure(newRequest(xhr), nf)
			if err != nil {
				t.Error(err)
				return
			}

			// handled only under the default or the not found settings, never with the validation status
			if ok && actual.Status == http.StatusBadRequest {
				t.Error("kinds of one reload presented with the status of another")
			}
		}()
	}

	// Assert
	wg.Wait()
}

func TestOnFailureZeroValueWrapper(t *testing.T) {
	// Arrange
	ic := newInterceptor(t)

	// Act
	actual, ok, err := ic.OnFailure(newRequest(xhr), CustomError{})

	// Assert
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotAcceptable, actual.Status)
	require.Empty(t, actual.Header.Get(intercept.ErrorCodeHeader))
	require.Contains(t, string(actual.Body), `"title":"Error"`)
}
