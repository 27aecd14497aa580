package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-exercise-tracker/pkg/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthn struct {
	token string
	sess  session.Session
}

func (f fakeAuthn) Authenticate(_ context.Context, token string) (session.Session, error) {
	if token != f.token {
		return session.Session{}, errors.New("bad token")
	}
	return f.sess, nil
}

func protected(authn Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(authn), func(c *gin.Context) {
		s, ok := CurrentSession(c)
		fromReq, reqOK := session.FromContext(c.Request.Context())
		if !ok || !reqOK || s.Username != fromReq.Username {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, s.Username)
	})
	return r
}

func TestAuth(t *testing.T) {
	r := protected(fakeAuthn{token: "good", sess: session.Session{UserID: "u1", Username: "alice"}})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer  ", http.StatusUnauthorized},
		{"invalid", "Bearer bad", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "alice", rec.Body.String())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := gin.New()
	r.GET("/x", RateLimit(db, 2, time.Minute, func(*gin.Context) string { return "rl:test" }, nil), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	hash := incrExpireScript.Hash()
	for i, want := range []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests} {
		mock.ExpectEvalSha(hash, []string{"rl:test"}, int64(60000)).SetVal(int64(i + 1))
		mock.ExpectPTTL("rl:test").SetVal(30 * time.Second)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, want, rec.Code, "request %d", i+1)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "30", rec.Header().Get("X-RateLimit-Reset"))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimit_FailsOpen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := gin.New()
	r.GET("/x", RateLimit(db, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	// httptest requests come from 192.0.2.1
	mock.ExpectEvalSha(incrExpireScript.Hash(), []string{"rl:ip:192.0.2.1"}, int64(60000)).SetErr(errors.New("redis down"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestKeyFuncs(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/exercises", nil)
	c.Set(realIPKey, "203.0.113.7")

	assert.Equal(t, "rl:ip:203.0.113.7", KeyByIP()(c))
	assert.Equal(t, "rl:path:/api/exercises:ip:203.0.113.7", KeyByIPAndPath()(c))
	assert.Equal(t, "rl:user:anon:ip:203.0.113.7", KeyByUser()(c))

	c.Set(session.GinKey, &session.Session{Username: "alice"})
	assert.Equal(t, "rl:user:alice", KeyByUser()(c))
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{"127.0.0.1": true, "10.1.2.3": true, "192.168.0.9": true, "8.8.8.8": false, "junk": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(realIPKey, ip)
		assert.Equal(t, want, allow(c), ip)
	}
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(realIPKey)) })

	cases := []struct {
		headers map[string]string
		want    string
	}{
		{map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Forwarded-For": "203.0.113.5"}, "198.51.100.1"},
		{map[string]string{"CF-Connecting-IP": "nonsense", "X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "203.0.113.5"},
		{map[string]string{}, "192.0.2.1"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for k, v := range tc.headers {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Body.String()
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Header().Get("X-Request-ID"))

	const incoming = "0b8f3a6e-2f47-4c8e-9d5a-7f1f0a3e9b21"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", incoming)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Body.String())

	req.Header.Set("X-Request-ID", "not-a-uuid")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	m := NewHTTPMetrics("test")
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+string(rune('a'+i)), nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/items/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_http_requests_total"))
}

func TestAccessLog(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLog(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bad", nil))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, 200, entries[0].Data["status"])
	assert.NotEmpty(t, entries[0].Data["request_id"])
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, "/bad", entries[1].Data["path"])
}
