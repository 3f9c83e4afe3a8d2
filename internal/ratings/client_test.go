package ratings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient("test-key", 5*time.Second, zap.NewNop())
	client.baseURL = srv.URL + "/v3/businesses/search"
	return client
}

func TestFetchRatings(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the top directory match", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "Acme Builders", r.URL.Query().Get("term"))
			assert.Equal(t, "Plano, TX", r.URL.Query().Get("location"))
			assert.Equal(t, "contractors", r.URL.Query().Get("categories"))
			w.Write([]byte(`{"businesses": [{"name": "Acme Builders LLC", "rating": 4.5, "review_count": 120}]}`))
		})

		rating, err := client.FetchRatings(ctx, "Acme Builders", "Plano, TX")
		require.NoError(t, err)
		require.NotNil(t, rating)
		assert.Equal(t, "Acme Builders LLC", rating.Name)
		require.NotNil(t, rating.Rating)
		assert.Equal(t, 4.5, *rating.Rating)
		assert.Equal(t, 120, rating.ReviewCount)
	})

	t.Run("no match is nil without error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"businesses": []}`))
		})

		rating, err := client.FetchRatings(ctx, "Nonexistent Co", "Plano, TX")
		require.NoError(t, err)
		assert.Nil(t, rating)
	})

	t.Run("unrated business keeps a nil rating", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"businesses": [{"name": "New Builder", "review_count": 0}]}`))
		})

		rating, err := client.FetchRatings(ctx, "New Builder", "Plano, TX")
		require.NoError(t, err)
		require.NotNil(t, rating)
		assert.Nil(t, rating.Rating)
	})

	t.Run("non-200 response is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.FetchRatings(ctx, "Acme Builders", "Plano, TX")
		assert.ErrorContains(t, err, "status 429")
	})
}
