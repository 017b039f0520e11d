package opendata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/query"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source"
	"github.com/ecocitty/ecocitty/pkg/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, contentType string, body string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("api-key"))
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}))
}

func newClient(url string) *upstream.Client {
	return upstream.NewClient(upstream.Config{
		BaseURL:   url,
		Timeout:   time.Second,
		QueryAuth: map[string]string{"api-key": "secret"},
	})
}

func TestMissingConfiguration(t *testing.T) {
	_, err := Source{}.Lookup(context.Background(), query.GarbageCollection{})

	var configurationError *source.ConfigurationError
	require.ErrorAs(t, err, &configurationError)
	assert.Contains(t, configurationError.Settings, "ECOCITTY_GARBAGE_API_URL")
}

func TestJSONTelemetry(t *testing.T) {
	server := newServer(t, "application/json", `{"records":[{"vehicle_no":"DL1LAB1","lat":"28.6","lng":"77.2"}]}`)
	defer server.Close()

	value, err := Source{Client: newClient(server.URL), Format: FormatJSON}.Lookup(context.Background(), query.GarbageCollection{})
	require.NoError(t, err)

	trucks := value.([]ctdf.Truck)
	require.Len(t, trucks, 1)
	assert.Equal(t, 28.6, trucks[0].Lat)
}

func TestXMLTelemetry(t *testing.T) {
	server := newServer(t, "text/xml; charset=utf-8", `<result><records><row vehicle_no="DL1LAB1" lat="28.6" lng="77.2"/></records></result>`)
	defer server.Close()

	value, err := Source{Client: newClient(server.URL), Format: FormatXML}.Lookup(context.Background(), query.GarbageCollection{})
	require.NoError(t, err)

	trucks := value.([]ctdf.Truck)
	require.Len(t, trucks, 1)
	assert.Equal(t, "DL1LAB1", trucks[0].VehicleNumber)
}

func TestUndecodableTelemetry(t *testing.T) {
	server := newServer(t, "application/json", `{"records":`)
	defer server.Close()

	_, err := Source{Client: newClient(server.URL)}.Lookup(context.Background(), query.GarbageCollection{})
	assert.Equal(t, upstream.FailureDecode, upstream.KindOf(err))
}

func TestSyntheticTrucksAreNotServed(t *testing.T) {
	_, err := Source{}.Lookup(context.Background(), query.SyntheticTrucks{})
	assert.ErrorIs(t, err, source.UnsupportedSourceError)
}
