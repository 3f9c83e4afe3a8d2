package census

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

const acsFixture = `[
	["NAME","B01003_001E","B08012_001E","B15003_022E","B19013_001E","B23025_002E","B23025_004E","B25003_001E","B25003_002E","B25002_003E","B25077_001E","zip code tabulation area"],
	["ZCTA5 75024","80000","26.4","30000","37585","40000","23700","32000","20992","2208","420400","75024"]
]`

func newTestAPIClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient("test-key", 5*time.Second, zap.NewNop())
	client.baseURL = srv.URL
	return client
}

func TestFetchFacts(t *testing.T) {
	ctx := context.Background()

	t.Run("derives rates from the estimate row", func(t *testing.T) {
		client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "zip code tabulation area:75024", r.URL.Query().Get("for"))
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			w.Write([]byte(acsFixture))
		})

		record, err := client.FetchFacts(ctx, "75024")
		require.NoError(t, err)
		require.NotNil(t, record)

		assert.Equal(t, 80000.0, record.TotalPopulation)
		assert.Equal(t, 37585.0, record.MedianIncome)
		assert.InDelta(t, 0.5925, record.EmploymentRate, 1e-9)
		assert.InDelta(t, 0.375, record.EducationRate, 1e-9)
		assert.InDelta(t, 0.656, record.HomeOwnershipRate, 1e-9)
		assert.InDelta(t, 0.069, record.VacancyRate, 1e-9)
		assert.Equal(t, 420400.0, record.MedianHomeValue)
		assert.Equal(t, 26.4, record.MeanCommuteMinutes)
		assert.True(t, record.Valid())
	})

	t.Run("unknown zip reads as absent data", func(t *testing.T) {
		client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		record, err := client.FetchFacts(ctx, "00000")
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("suppressed tract reads as absent data", func(t *testing.T) {
		client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				["NAME","B01003_001E","B19013_001E","zip code tabulation area"],
				["ZCTA5 89049","120",null,"89049"]
			]`))
		})

		record, err := client.FetchFacts(ctx, "89049")
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("server errors propagate", func(t *testing.T) {
		client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.FetchFacts(ctx, "75024")
		assert.ErrorContains(t, err, "status 500")
	})
}
