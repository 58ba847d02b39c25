package middleware

import (
    "bytes"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/animal-shelter/internal/apperror"
    "github.com/iliyamo/animal-shelter/internal/config"
    "github.com/iliyamo/animal-shelter/internal/model"
    "github.com/iliyamo/animal-shelter/internal/utils"
)

const secret = "test-secret"

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func ok(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestJWTAuth_MissingBearer(t *testing.T) {
    c, _ := newContext(httptest.NewRequest(http.MethodGet, "/api/animals", nil))
    err := JWTAuth(secret)(ok)(c)
    assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
}

func TestJWTAuth_InvalidToken(t *testing.T) {
    req := httptest.NewRequest(http.MethodGet, "/api/animals", nil)
    req.Header.Set("Authorization", "Bearer not-a-jwt")
    c, _ := newContext(req)
    err := JWTAuth(secret)(ok)(c)
    assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
}

func TestJWTAuth_SetsCaller(t *testing.T) {
    tok, err := utils.NewAccessToken(secret, 42, string(model.RoleCareTaker), "care@shelter.org", time.Hour, time.Now())
    require.NoError(t, err)

    req := httptest.NewRequest(http.MethodGet, "/api/animals", nil)
    req.Header.Set("Authorization", "Bearer "+tok.Token)
    c, rec := newContext(req)

    require.NoError(t, JWTAuth(secret)(ok)(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, uint64(42), c.Get(CtxUserID))
    assert.Equal(t, "CARETAKER", c.Get(CtxRole))
    assert.Equal(t, "care@shelter.org", c.Get(CtxEmail))
    assert.Equal(t, "42", userID(c))
}

func TestRequireRole(t *testing.T) {
    mw := RequireRole(model.RoleAdministrator)

    c, _ := newContext(httptest.NewRequest(http.MethodGet, "/api/users", nil))
    assert.True(t, apperror.Is(mw(ok)(c), apperror.KindUnauthorized))

    c, _ = newContext(httptest.NewRequest(http.MethodGet, "/api/users", nil))
    c.Set(CtxRole, string(model.RoleVolunteer))
    assert.True(t, apperror.Is(mw(ok)(c), apperror.KindForbidden))

    c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/users", nil))
    c.Set(CtxRole, string(model.RoleAdministrator))
    require.NoError(t, mw(ok)(c))
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogger_SetsAndKeepsRequestID(t *testing.T) {
    var buf bytes.Buffer
    prev := log.Logger
    log.Logger = zerolog.New(&buf)
    defer func() { log.Logger = prev }()

    e := echo.New()
    e.Use(RequestLogger())
    e.GET("/healthz", ok)

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
    assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

    req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
    req.Header.Set(HeaderRequestID, "abc-123")
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
    assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
    assert.Contains(t, buf.String(), `"status":200`)
}

func TestRequestLogger_ErrorGoesThroughErrorHandler(t *testing.T) {
    e := echo.New()
    e.HTTPErrorHandler = func(err error, c echo.Context) {
        _ = c.JSON(http.StatusTeapot, echo.Map{"error": err.Error()})
    }
    e.Use(RequestLogger())
    e.GET("/boom", func(c echo.Context) error { return apperror.Forbidden("nope") })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
    assert.Equal(t, http.StatusTeapot, rec.Code)
    assert.Contains(t, rec.Body.String(), "nope")
}

func TestCacheAndLimiter_PassThroughWithoutRedis(t *testing.T) {
    cache := NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil, "animals")
    limit := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil)
    invalidate := InvalidateOnWrite(config.CacheConfig{Enabled: true}, nil, "animals")

    for _, mw := range []echo.MiddlewareFunc{cache, limit, invalidate} {
        c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/animals", nil))
        require.NoError(t, mw(ok)(c))
        assert.Equal(t, "ok", rec.Body.String())
        assert.Empty(t, rec.Header().Get("X-Cache"))
    }
}

func TestCacheKeyFrom(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "shelter:cache", KeyStrategy: "route_query"}

    c1, _ := newContext(httptest.NewRequest(http.MethodGet, "/api/animals/1", nil))
    c2, _ := newContext(httptest.NewRequest(http.MethodGet, "/api/animals/2", nil))
    c3, _ := newContext(httptest.NewRequest(http.MethodGet, "/api/animals/1", nil))
    c1.SetPath("/api/animals/:id")
    c2.SetPath("/api/animals/:id")

    k1 := cacheKeyFrom(cfg, "animals", c1)
    assert.Regexp(t, `^shelter:cache:animals:[0-9a-f]{40}$`, k1)
    assert.NotEqual(t, k1, cacheKeyFrom(cfg, "animals", c2))
    assert.Equal(t, k1, cacheKeyFrom(cfg, "animals", c3))

    // per-user entries differ by caller
    cfg.KeyStrategy = "route_query_user"
    c3.Set(CtxUserID, uint64(9))
    assert.NotEqual(t, cacheKeyFrom(cfg, "animals", c1), cacheKeyFrom(cfg, "animals", c3))
}

func TestPayloadEncoding(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"items":[]}`))
    require.NoError(t, err)

    status, got, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", got.Get("Content-Type"))
    assert.Equal(t, `{"items":[]}`, string(body))

    _, _, _, ok = decodePayload([]byte{0, 1})
    assert.False(t, ok)
    _, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0})
    assert.False(t, ok)
}

func TestBuildRateKey(t *testing.T) {
    req := httptest.NewRequest(http.MethodPost, "/api/authentication/login", nil)
    req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
    c, _ := newContext(req)
    c.SetPath("/api/authentication/login")

    cfg := config.RateLimitConfig{Prefix: "shelter:rl", KeyStrategy: "ip"}
    assert.Equal(t, "shelter:rl:ip:10.0.0.7", buildRateKey(cfg, c))

    cfg.KeyStrategy = "ip_route"
    assert.Equal(t, "shelter:rl:ip:10.0.0.7:route:POST /api/authentication/login", buildRateKey(cfg, c))

    cfg.KeyStrategy = "ip_user_route"
    assert.Equal(t, "shelter:rl:ip:10.0.0.7:user:anon:route:POST /api/authentication/login", buildRateKey(cfg, c))
}
