package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/touch-of-elegance/internal/config"
	"github.com/deppfellow/touch-of-elegance/internal/errs"
	"github.com/deppfellow/touch-of-elegance/internal/lib/ratelimit"
	"github.com/deppfellow/touch-of-elegance/internal/server"
)

func newTestServer(t *testing.T, env string) *server.Server {
	t.Helper()
	cfg := config.Defaults()
	cfg.Primary.Env = env
	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)
	return s
}

func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.IPExtractor = echo.ExtractIPDirect()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGlobalErrorHandler(t *testing.T) {
	t.Run("unknown route", func(t *testing.T) {
		e := newTestEcho(newTestServer(t, config.EnvProduction))
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
	})

	t.Run("unsupported method", func(t *testing.T) {
		e := newTestEcho(newTestServer(t, config.EnvProduction))
		e.GET("/thing", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

		rec := serve(e, httptest.NewRequest(http.MethodDelete, "/thing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
	})

	t.Run("plain error is a generic 500", func(t *testing.T) {
		e := newTestEcho(newTestServer(t, config.EnvProduction))
		e.GET("/boom", func(c echo.Context) error { return errors.New("db password is hunter2") })

		rec := serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"Internal Server Error","status":500}}`, rec.Body.String())
	})

	t.Run("http error keeps status and message", func(t *testing.T) {
		e := newTestEcho(newTestServer(t, config.EnvTest))
		e.GET("/limited", func(c echo.Context) error { return errs.NewTooManyRequestsError("slow down") })

		rec := serve(e, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"slow down","status":429}}`, rec.Body.String())
	})

	t.Run("development adds a stack", func(t *testing.T) {
		e := newTestEcho(newTestServer(t, config.EnvDevelopment))
		e.GET("/boom", func(c echo.Context) error { return errors.New("kaput") })

		rec := serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
		body := decode(t, rec)
		errBody := body["error"].(map[string]interface{})
		assert.Equal(t, "Internal Server Error", errBody["message"])
		assert.Contains(t, errBody["stack"], "kaput")
	})

	t.Run("committed response is left alone", func(t *testing.T) {
		e := newTestEcho(newTestServer(t, config.EnvProduction))
		e.GET("/half", func(c echo.Context) error {
			_ = c.String(http.StatusOK, "partial")
			return errors.New("late failure")
		})

		rec := serve(e, httptest.NewRequest(http.MethodGet, "/half", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "partial", rec.Body.String())
	})

	t.Run("panic is recovered", func(t *testing.T) {
		s := newTestServer(t, config.EnvProduction)
		e := newTestEcho(s)
		e.Use(NewGlobalMiddlewares(s).Recover())
		e.GET("/panic", func(c echo.Context) error { panic("oh no") })

		rec := serve(e, httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"Internal Server Error","status":500}}`, rec.Body.String())
	})
}

func TestSecureHeaders(t *testing.T) {
	s := newTestServer(t, config.EnvProduction)
	e := newTestEcho(s)
	e.Use(NewGlobalMiddlewares(s).Secure())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get(echo.HeaderXFrameOptions))
	assert.Equal(t, ContentSecurityPolicy, rec.Header().Get(echo.HeaderContentSecurityPolicy))
	assert.Equal(t, "no-referrer", rec.Header().Get(echo.HeaderReferrerPolicy))
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = serve(e, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	for _, bad := range []string{"line\nbreak", "has space", strings.Repeat("a", 129)} {
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, bad)
		rec = serve(e, req)
		got := rec.Header().Get(RequestIDHeader)
		assert.NotEqual(t, bad, got)
		assert.Len(t, got, 36)
		assert.Equal(t, got, rec.Body.String())
	}
}

func TestContextEnhancer_StoresLogger(t *testing.T) {
	s := newTestServer(t, config.EnvTest)
	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	e.GET("/", func(c echo.Context) error {
		assert.NotNil(t, c.Get(LoggerKey))
		assert.Same(t, c.Get(LoggerKey), GetLogger(c))
		return c.NoContent(http.StatusNoContent)
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c), "falls back to a no-op logger")
}

func TestJSONBody(t *testing.T) {
	s := newTestServer(t, config.EnvProduction)
	e := newTestEcho(s)
	e.Use(NewGlobalMiddlewares(s).BodyLimit(), JSONBody())
	e.POST("/echo", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, payload)
	})

	post := func(body, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, contentType)
		return serve(e, req)
	}

	rec := post(`{"a":1}`, "application/json; charset=utf-8")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())

	rec = post(`{"a":`, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"`+MalformedJSONMessage+`","status":400}}`, rec.Body.String())

	rec = post(`{"a":`, echo.MIMETextPlain)
	assert.NotEqual(t, http.StatusBadRequest, rec.Code, "only JSON bodies are checked")

	rec = post(`{"big":"`+strings.Repeat("x", 200*1024)+`"}`, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRateLimit(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	s := newTestServer(t, config.EnvProduction)
	s.Config.RateLimit.Max = 3
	s.Config.RateLimit.ContactMax = 2

	rl := NewRateLimitMiddleware(s, ratelimit.WithClock(now))
	e := newTestEcho(s)

	calls := 0
	ok := func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	}
	e.GET("/api/things", ok, rl.API())
	e.POST("/api/contact", ok, rl.Contact(), rl.API())

	request := func(method, path, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = ip + ":12345"
		return serve(e, req)
	}

	t.Run("contact window is checked first", func(t *testing.T) {
		rec := request(http.MethodPost, "/api/contact", "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(HeaderRateLimitLimit))
		assert.Equal(t, "1", rec.Header().Get(HeaderRateLimitRemaining))
		assert.Equal(t, "3600", rec.Header().Get(HeaderRateLimitReset))

		assert.Equal(t, http.StatusOK, request(http.MethodPost, "/api/contact", "10.0.0.1").Code)

		before := calls
		rec = request(http.MethodPost, "/api/contact", "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, before, calls, "handler must not run")
		assert.Equal(t, "3600", rec.Header().Get(HeaderRetryAfter))
		assert.JSONEq(t, `{"error":{"message":"`+ContactRateLimitMessage+`","status":429}}`, rec.Body.String())
	})

	t.Run("api window counts per ip", func(t *testing.T) {
		// 10.0.0.1 already spent 2 of 3 API hits on the contact route.
		assert.Equal(t, http.StatusOK, request(http.MethodGet, "/api/things", "10.0.0.1").Code)
		rec := request(http.MethodGet, "/api/things", "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"`+APIRateLimitMessage+`","status":429}}`, rec.Body.String())
		assert.Equal(t, "0", rec.Header().Get(HeaderRateLimitRemaining))

		assert.Equal(t, http.StatusOK, request(http.MethodGet, "/api/things", "10.0.0.2").Code)
	})

	t.Run("rejecting window sets the headers", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.Equal(t, http.StatusOK, request(http.MethodGet, "/api/things", "10.0.0.3").Code)
		}

		rec := request(http.MethodPost, "/api/contact", "10.0.0.3")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "3", rec.Header().Get(HeaderRateLimitLimit))
		assert.Equal(t, "0", rec.Header().Get(HeaderRateLimitRemaining))
		assert.Equal(t, rec.Header().Get(HeaderRetryAfter), rec.Header().Get(HeaderRateLimitReset))
		assert.JSONEq(t, `{"error":{"message":"`+APIRateLimitMessage+`","status":429}}`, rec.Body.String())
	})

	t.Run("window reopens", func(t *testing.T) {
		clock = clock.Add(2 * time.Hour)
		assert.Equal(t, http.StatusOK, request(http.MethodGet, "/api/things", "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, request(http.MethodPost, "/api/contact", "10.0.0.1").Code)
	})
}

func TestRateLimit_NamesRejectingWindow(t *testing.T) {
	s := newTestServer(t, config.EnvTest)
	s.Config.RateLimit.Max = 1
	s.Config.RateLimit.ContactMax = 5

	rl := NewRateLimitMiddleware(s)
	e := newTestEcho(s)

	var limiter string
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			limiter = GetRateLimiter(c)
			return err
		}
	})
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.POST("/api/contact", ok, rl.Contact(), rl.API())

	assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodPost, "/api/contact", nil)).Code)
	assert.Empty(t, limiter)

	assert.Equal(t, http.StatusTooManyRequests, serve(e, httptest.NewRequest(http.MethodPost, "/api/contact", nil)).Code)
	assert.Equal(t, limiterAPI, limiter)
}

func TestMetricsStatusOf(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, http.StatusNotFound, statusOf(c, errs.NewNotFoundError("x")))
	assert.Equal(t, http.StatusMethodNotAllowed, statusOf(c, echo.ErrMethodNotAllowed))
	assert.Equal(t, http.StatusInternalServerError, statusOf(c, errors.New("x")))
	assert.Equal(t, http.StatusOK, statusOf(c, nil))

	require.NoError(t, c.NoContent(http.StatusAccepted))
	assert.Equal(t, http.StatusAccepted, statusOf(c, nil))
	assert.Equal(t, http.StatusAccepted, statusOf(c, errors.New("after commit")))
}
