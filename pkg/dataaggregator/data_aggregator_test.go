package dataaggregator_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/query"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source/demo"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source/irctc"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source/opendata"
	"github.com/ecocitty/ecocitty/pkg/demomode"
	"github.com/ecocitty/ecocitty/pkg/stations"
	"github.com/ecocitty/ecocitty/pkg/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAggregator(t *testing.T, railwayURL string, timeout time.Duration) *dataaggregator.Aggregator {
	t.Helper()

	fixtures, err := demo.LoadFixtures()
	require.NoError(t, err)
	registry, err := stations.Load()
	require.NoError(t, err)

	aggregator := &dataaggregator.Aggregator{}

	railwaySource := irctc.Source{}
	if railwayURL != "" {
		railwaySource.Client = upstream.NewRapidAPIClient(railwayURL, "key", "irctc1.p.rapidapi.com", timeout)
	}
	aggregator.RegisterSource(railwaySource)
	aggregator.RegisterSource(opendata.Source{})
	aggregator.RegisterDemoSource(demo.NewSource(fixtures, registry))

	return aggregator
}

var ndlsToBCT = query.TrainsBetweenStations{FromStation: "NDLS", ToStation: "BCT"}

func TestDemoModeNeverCallsLiveSource(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	aggregator := newAggregator(t, server.URL, time.Second)
	ctx := demomode.WithMode(context.Background(), true)

	trains, provenance, err := dataaggregator.Lookup[[]ctdf.TrainSearchResult](ctx, aggregator, ndlsToBCT)
	require.NoError(t, err)

	assert.False(t, called)
	assert.Equal(t, ctdf.DataProvenanceDemo, provenance)
	assert.NotEmpty(t, trains)
}

func TestDemoModeUnknownPair(t *testing.T) {
	aggregator := newAggregator(t, "", time.Second)
	ctx := demomode.WithMode(context.Background(), true)

	trains, provenance, err := dataaggregator.Lookup[[]ctdf.TrainSearchResult](ctx, aggregator, query.TrainsBetweenStations{FromStation: "AGC", ToStation: "SBC"})

	assert.ErrorIs(t, err, dataaggregator.ErrNoData)
	assert.Equal(t, ctdf.DataProvenanceDemo, provenance)
	assert.Empty(t, trains)
}

func TestLiveSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"data":[{"train_number":"22222","train_name":"Live Express"}]}`))
	}))
	defer server.Close()

	aggregator := newAggregator(t, server.URL, time.Second)

	trains, provenance, err := dataaggregator.Lookup[[]ctdf.TrainSearchResult](context.Background(), aggregator, ndlsToBCT)
	require.NoError(t, err)

	assert.Equal(t, ctdf.DataProvenanceLive, provenance)
	require.Len(t, trains, 1)
	assert.Equal(t, "22222", trains[0].TrainNumber)
}

func TestLiveTimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()
	defer close(release)

	aggregator := newAggregator(t, server.URL, 50*time.Millisecond)

	trains, provenance, err := dataaggregator.Lookup[[]ctdf.TrainSearchResult](context.Background(), aggregator, ndlsToBCT)
	require.NoError(t, err)

	assert.Equal(t, ctdf.DataProvenanceFallback, provenance)

	demoTrains, _, _ := dataaggregator.Lookup[[]ctdf.TrainSearchResult](demomode.WithMode(context.Background(), true), aggregator, ndlsToBCT)
	assert.Equal(t, demoTrains, trains)
}

func TestLiveRejectionFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":false,"message":"You are not subscribed to this API."}`))
	}))
	defer server.Close()

	aggregator := newAggregator(t, server.URL, time.Second)

	trains, provenance, err := dataaggregator.Lookup[[]ctdf.TrainSearchResult](context.Background(), aggregator, ndlsToBCT)
	require.NoError(t, err)
	assert.Equal(t, ctdf.DataProvenanceFallback, provenance)
	assert.NotEmpty(t, trains)
}

func TestFallbackWithoutDemoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	aggregator := newAggregator(t, server.URL, time.Second)

	_, provenance, err := dataaggregator.Lookup[ctdf.PNRStatus](context.Background(), aggregator, query.PNRStatus{PNR: "1234567890"})
	assert.ErrorIs(t, err, dataaggregator.ErrNoData)
	assert.Equal(t, ctdf.DataProvenanceFallback, provenance)
}

func TestMissingConfigurationIsReturned(t *testing.T) {
	aggregator := newAggregator(t, "", time.Second)

	_, _, err := dataaggregator.Lookup[[]ctdf.TrainSearchResult](context.Background(), aggregator, ndlsToBCT)

	var configurationError *source.ConfigurationError
	assert.ErrorAs(t, err, &configurationError)

	_, _, err = dataaggregator.Lookup[[]ctdf.Truck](context.Background(), aggregator, query.GarbageCollection{})
	assert.ErrorAs(t, err, &configurationError)
}

func TestQueryWithoutLiveSourceUsesDemo(t *testing.T) {
	aggregator := newAggregator(t, "", time.Second)

	lines, provenance, err := dataaggregator.Lookup[[]ctdf.MetroLineStatus](context.Background(), aggregator, query.MetroStatus{})
	require.NoError(t, err)
	assert.Equal(t, ctdf.DataProvenanceDemo, provenance)
	assert.NotEmpty(t, lines)

	trucks, provenance, err := dataaggregator.Lookup[[]ctdf.Truck](context.Background(), aggregator, query.SyntheticTrucks{})
	require.NoError(t, err)
	assert.Equal(t, ctdf.DataProvenanceDemo, provenance)
	assert.NotEmpty(t, trucks)
}
