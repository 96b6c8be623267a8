package http_test

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fahttp "github.com/arraykit-io/flasharray-client/internal/http"
	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	name  string
	value string
	err   error

	calls  atomic.Int64
	forced atomic.Int64
}

func (m *MockTokenManager) Header(ctx context.Context, force bool) (string, string, error) {
	m.calls.Add(1)

	if force {
		m.forced.Add(1)
	}

	return m.name, m.value, m.err
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			assert.Equal(t, "/api/2.4/volumes", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			writer.Header().Set("x-request-id", "req-1")

			response := map[string]string{"name": "vol01"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		tokens := &MockTokenManager{name: "Authorization", value: "Bearer test-token"}
		client := fahttp.NewClient(server.URL, tokens)

		req := &fahttp.Request{
			Method: "GET",
			Path:   "/api/2.4/volumes",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "req-1", resp.RequestID)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "vol01", result["name"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			assert.Equal(t, "names=vol01", request.URL.RawQuery)
			writer.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := fahttp.NewClient(server.URL, nil)

		req := &fahttp.Request{
			Method: "GET",
			Path:   "/api/2.4/volumes",
			Query:  url.Values{"names": []string{"vol01"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]int64

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, int64(1073741824), body["provisioned"])

			writer.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := fahttp.NewClient(server.URL, nil)

		req := &fahttp.Request{
			Method: "POST",
			Path:   "/api/2.4/volumes",
			Body:   map[string]int64{"provisioned": 1073741824},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("bad request is terminal after one attempt", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			attempts.Add(1)
			writer.WriteHeader(nethttp.StatusBadRequest)
			_, _ = writer.Write([]byte(`{"errors":[{"context":"vol01","message":"invalid name"}]}`))
		}))
		defer server.Close()

		client := fahttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &fahttp.Request{Method: "POST", Path: "/api/2.4/volumes"})
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, int64(1), attempts.Load())

		var errResp *flasharray.ErrorResponse

		require.ErrorAs(t, err, &errResp)
		assert.Equal(t, nethttp.StatusBadRequest, errResp.StatusCode)
		require.Len(t, errResp.Errors, 1)
		assert.Equal(t, "vol01", errResp.Errors[0].Context)
		assert.Equal(t, "invalid name", errResp.Errors[0].Message)
	})

	t.Run("not found is terminal after one attempt", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			attempts.Add(1)
			writer.WriteHeader(nethttp.StatusNotFound)
			_, _ = writer.Write([]byte(`{"errors":[{"message":"no such volume"}]}`))
		}))
		defer server.Close()

		client := fahttp.NewClient(server.URL, nil)

		_, err := client.Do(context.Background(), &fahttp.Request{Method: "GET", Path: "/api/2.4/volumes"})
		require.Error(t, err)
		assert.Equal(t, int64(1), attempts.Load())
		assert.True(t, flasharray.IsNotFound(err))
	})

	t.Run("unauthorized forces token refresh and retries", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			if attempts.Add(1) == 1 {
				writer.WriteHeader(nethttp.StatusUnauthorized)
				_, _ = writer.Write([]byte(`{"errors":[{"message":"token expired"}]}`))

				return
			}

			writer.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		tokens := &MockTokenManager{name: "x-auth-token", value: "session-token"}
		client := fahttp.NewClient(server.URL, tokens)

		resp, err := client.Do(context.Background(), &fahttp.Request{Method: "GET", Path: "/api/2.4/arrays"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int64(2), attempts.Load())
		assert.Equal(t, int64(1), tokens.forced.Load())
	})

	t.Run("rate limited with exhausted minute bucket sleeps twice", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			if attempts.Add(1) == 1 {
				writer.Header().Set("x-ratelimit-min", "1200")
				writer.Header().Set("x-ratelimit-remaining-min", "1200")
				writer.WriteHeader(nethttp.StatusTooManyRequests)
				_, _ = writer.Write([]byte(`{"message":"rate limit exceeded"}`))

				return
			}

			writer.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		var slept []time.Duration

		client := fahttp.NewClient(server.URL, nil,
			fahttp.WithSleep(func(d time.Duration) { slept = append(slept, d) }))

		resp, err := client.Do(context.Background(), &fahttp.Request{Method: "GET", Path: "/api/2.4/volumes"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		require.Equal(t, []time.Duration{time.Minute, time.Second}, slept)
	})

	t.Run("rate limited with partial quota sleeps once", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			if attempts.Add(1) == 1 {
				writer.Header().Set("x-ratelimit-min", "1200")
				writer.Header().Set("x-ratelimit-remaining-min", "17")
				writer.WriteHeader(nethttp.StatusTooManyRequests)
				_, _ = writer.Write([]byte(`{"message":"rate limit exceeded"}`))

				return
			}

			writer.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		var slept []time.Duration

		client := fahttp.NewClient(server.URL, nil,
			fahttp.WithSleep(func(d time.Duration) { slept = append(slept, d) }))

		_, err := client.Do(context.Background(), &fahttp.Request{Method: "GET", Path: "/api/2.4/volumes"})
		require.NoError(t, err)
		require.Equal(t, []time.Duration{time.Second}, slept)
	})

	t.Run("internal server error is terminal after one attempt", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			attempts.Add(1)
			writer.WriteHeader(nethttp.StatusInternalServerError)
			_, _ = writer.Write([]byte(`{"errors":[{"message":"internal error"}]}`))
		}))
		defer server.Close()

		client := fahttp.NewClient(server.URL, nil)

		_, err := client.Do(context.Background(), &fahttp.Request{Method: "GET", Path: "/api/2.4/volumes"})
		require.Error(t, err)
		assert.Equal(t, int64(1), attempts.Load())

		var errResp *flasharray.ErrorResponse

		require.ErrorAs(t, err, &errResp)
		assert.Equal(t, nethttp.StatusInternalServerError, errResp.StatusCode)
	})

	t.Run("gateway errors retry until the attempt budget is spent", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			attempts.Add(1)
			writer.WriteHeader(nethttp.StatusServiceUnavailable)
			_, _ = writer.Write([]byte(`{"errors":[{"message":"service unavailable"}]}`))
		}))
		defer server.Close()

		client := fahttp.NewClient(server.URL, nil, fahttp.WithRetryLimit(3))

		resp, err := client.Do(context.Background(), &fahttp.Request{Method: "GET", Path: "/api/2.4/volumes"})
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, int64(3), attempts.Load())

		var errResp *flasharray.ErrorResponse

		require.ErrorAs(t, err, &errResp)
		assert.Equal(t, nethttp.StatusServiceUnavailable, errResp.StatusCode)
	})

	t.Run("gateway error recovers on a later attempt", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(nethttp.StatusBadGateway)

				return
			}

			writer.WriteHeader(nethttp.StatusOK)
		}))
		defer server.Close()

		client := fahttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &fahttp.Request{Method: "GET", Path: "/api/2.4/volumes"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int64(3), attempts.Load())
	})

	t.Run("unexpected status is raised as a plain error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			writer.WriteHeader(nethttp.StatusTeapot)
		}))
		defer server.Close()

		client := fahttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &fahttp.Request{Method: "GET", Path: "/api/2.4/volumes"})
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "unexpected status 418")

		var errResp *flasharray.ErrorResponse

		assert.False(t, errors.As(err, &errResp))
	})

	t.Run("token manager failure aborts the call", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			t.Error("request should not reach the server")
		}))
		defer server.Close()

		authErr := &flasharray.AuthenticationError{Op: "login", Err: errors.New("bad token")}
		tokens := &MockTokenManager{err: authErr}
		client := fahttp.NewClient(server.URL, tokens)

		resp, err := client.Do(context.Background(), &fahttp.Request{Method: "GET", Path: "/api/2.4/volumes"})
		require.Error(t, err)
		assert.Nil(t, resp)

		var gotErr *flasharray.AuthenticationError

		require.ErrorAs(t, err, &gotErr)
		assert.Equal(t, "login", gotErr.Op)
	})
}

func TestClient_Caching(t *testing.T) {
	t.Parallel()
	t.Run("GET responses are served from cache", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int64

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			hits.Add(1)
			_, _ = writer.Write([]byte(`{"items":[{"name":"vol01"}]}`))
		}))
		defer server.Close()

		cache := flasharray.NewMemoryCache(10)
		client := fahttp.NewClient(server.URL, nil, fahttp.WithCache(cache, time.Minute))

		req := &fahttp.Request{Method: "GET", Path: "/api/2.4/volumes"}

		first, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		second, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, int64(1), hits.Load())
		assert.Equal(t, first.Body, second.Body)
	})

	t.Run("writes invalidate the cache", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int64

		server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			if request.Method == nethttp.MethodGet {
				hits.Add(1)
			}

			_, _ = writer.Write([]byte(`{"items":[]}`))
		}))
		defer server.Close()

		cache := flasharray.NewMemoryCache(10)
		client := fahttp.NewClient(server.URL, nil, fahttp.WithCache(cache, time.Minute))

		getReq := &fahttp.Request{Method: "GET", Path: "/api/2.4/volumes"}

		_, err := client.Do(context.Background(), getReq)
		require.NoError(t, err)

		_, err = client.Do(context.Background(), &fahttp.Request{Method: "POST", Path: "/api/2.4/volumes"})
		require.NoError(t, err)

		_, err = client.Do(context.Background(), getReq)
		require.NoError(t, err)

		assert.Equal(t, int64(2), hits.Load())
	})
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		writer.WriteHeader(nethttp.StatusOK)
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := fahttp.NewClient(server.URL, nil, fahttp.WithLogger(logger), fahttp.WithDebug(true))

	_, err := client.Do(context.Background(), &fahttp.Request{Method: "GET", Path: "/api/2.4/arrays"})
	require.NoError(t, err)

	require.Len(t, logger.logs, 2)
	assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
	assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
}

func TestClient_Helpers(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		writer.Header().Set("x-method", request.Method)
		writer.WriteHeader(nethttp.StatusOK)
	}))
	defer server.Close()

	client := fahttp.NewClient(server.URL, nil)
	ctx := context.Background()

	resp, err := client.Get(ctx, "/api/2.4/volumes", nil)
	require.NoError(t, err)
	assert.Equal(t, "GET", resp.Headers.Get("x-method"))

	resp, err = client.Post(ctx, "/api/2.4/volumes", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "POST", resp.Headers.Get("x-method"))

	resp, err = client.Patch(ctx, "/api/2.4/volumes", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "PATCH", resp.Headers.Get("x-method"))

	resp, err = client.Delete(ctx, "/api/2.4/volumes", nil)
	require.NoError(t, err)
	assert.Equal(t, "DELETE", resp.Headers.Get("x-method"))
}
