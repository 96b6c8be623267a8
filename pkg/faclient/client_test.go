package faclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arraykit-io/flasharray-client/pkg/faclient"
	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("nil config fails", func(t *testing.T) {
		t.Parallel()

		_, err := faclient.New(context.Background(), nil)
		require.ErrorIs(t, err, flasharray.ErrConfigRequired)
	})

	t.Run("missing endpoint fails", func(t *testing.T) {
		t.Parallel()

		_, err := faclient.New(context.Background(), &flasharray.Config{APIToken: "token"})
		require.ErrorIs(t, err, flasharray.ErrEndpointRequired)
	})

	t.Run("both credential variants fail", func(t *testing.T) {
		t.Parallel()

		_, err := faclient.New(context.Background(), &flasharray.Config{
			Endpoint:      "array01.example.com",
			APIToken:      "token",
			PrivateKeyPEM: []byte("pem"),
		})
		require.Error(t, err)

		var configErr *flasharray.ConfigurationError

		require.ErrorAs(t, err, &configErr)
	})

	t.Run("no credentials fail", func(t *testing.T) {
		t.Parallel()

		_, err := faclient.New(context.Background(), &flasharray.Config{
			Endpoint: "array01.example.com",
		})
		require.ErrorIs(t, err, flasharray.ErrNoCredentials)
	})

	t.Run("discovers the newest REST version", func(t *testing.T) {
		t.Parallel()

		var discoveries atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			discoveries.Add(1)
			assert.Equal(t, "/api/api_version", request.URL.Path)
			_, _ = writer.Write([]byte(`{"version":["2.0","2.2","2.4"]}`))
		}))
		defer server.Close()

		client, err := faclient.New(context.Background(), &flasharray.Config{
			Endpoint: server.URL,
			APIToken: "token",
		})
		require.NoError(t, err)
		assert.Equal(t, "2.4", client.APIVersion())
		assert.Equal(t, int64(1), discoveries.Load())
	})

	t.Run("pinned version skips discovery", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			t.Error("no request expected during construction")
		}))
		defer server.Close()

		client, err := faclient.New(context.Background(), &flasharray.Config{
			Endpoint:   server.URL,
			APIToken:   "token",
			APIVersion: "2.1",
		})
		require.NoError(t, err)
		assert.Equal(t, "2.1", client.APIVersion())
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/api_version", request.URL.Path)
			_, _ = writer.Write([]byte(`{"version":["2.4"]}`))
		}))
		defer server.Close()

		client, err := faclient.New(context.Background(), &flasharray.Config{
			Endpoint: server.URL + "/",
			APIToken: "token",
		})
		require.NoError(t, err)
		assert.Equal(t, "2.4", client.APIVersion())
	})

	t.Run("empty version list fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`{"version":[]}`))
		}))
		defer server.Close()

		_, err := faclient.New(context.Background(), &flasharray.Config{
			Endpoint: server.URL,
			APIToken: "token",
		})
		require.ErrorIs(t, err, flasharray.ErrNoRESTVersion)
	})

	t.Run("discovery error status fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := faclient.New(context.Background(), &flasharray.Config{
			Endpoint: server.URL,
			APIToken: "token",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "discovering REST version")
	})
}

func TestNewWithAPIToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"version":["2.4"]}`))
	}))
	defer server.Close()

	client, err := faclient.NewWithAPIToken(context.Background(), server.URL, "token")
	require.NoError(t, err)
	assert.Equal(t, "2.4", client.APIVersion())
}
