package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ecocitty/ecocitty/pkg/api/routes"
	"github.com/ecocitty/ecocitty/pkg/auth"
	"github.com/ecocitty/ecocitty/pkg/carbon"
	"github.com/ecocitty/ecocitty/pkg/config"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/global"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source/demo"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source/irctc"
	"github.com/ecocitty/ecocitty/pkg/database"
	"github.com/ecocitty/ecocitty/pkg/demomode"
	"github.com/ecocitty/ecocitty/pkg/stations"
	"github.com/ecocitty/ecocitty/pkg/upstream"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestServices(t *testing.T, demoMode bool) *routes.Services {
	t.Helper()

	cfg := &config.Config{SessionSecret: "test-secret", DemoMode: demoMode}
	registry, err := stations.Load()
	require.NoError(t, err)

	aggregator, err := global.Setup(cfg, registry)
	require.NoError(t, err)

	calculator, err := carbon.NewCalculator(carbon.DefaultFactors)
	require.NoError(t, err)

	return &routes.Services{
		Config:     cfg,
		Aggregator: aggregator,
		Stations:   registry,
		Store:      database.NewMemoryStore(),
		DemoSwitch: demomode.NewMemorySwitch(demoMode),
		Carbon:     calculator,
		Now: func() time.Time {
			return time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
		},
	}
}

func doRequest(t *testing.T, app *fiber.App, method string, target string, body string, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for header, value := range headers {
		req.Header.Set(header, value)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	return resp.StatusCode, payload
}

func TestSearchTrainsDemoMode(t *testing.T) {
	app := NewApp(newTestServices(t, true))

	status, payload := doRequest(t, app, http.MethodGet, "/api/search-trains?from_station=ndls&to_station=BCT", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["status"])
	assert.Equal(t, "demo", payload["source"])

	data := payload["data"].(map[string]any)
	assert.NotEmpty(t, data["trains"])
	assert.Equal(t, "NDLS", data["from_station_code"])
	assert.Equal(t, "New Delhi", data["from_station_coords"].(map[string]any)["name"])
	assert.Equal(t, "Mumbai Central", data["to_station_coords"].(map[string]any)["name"])
}

func TestSearchTrainsDemoModeWithoutData(t *testing.T) {
	app := NewApp(newTestServices(t, true))

	status, payload := doRequest(t, app, http.MethodGet, "/api/search-trains?from_station=AGC&to_station=SBC", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, payload["status"])
	assert.Equal(t, "demo", payload["source"])
	assert.NotEmpty(t, payload["error"])
	assert.Empty(t, payload["data"])
}

func TestSearchTrainsMissingParameters(t *testing.T) {
	app := NewApp(newTestServices(t, true))

	status, payload := doRequest(t, app, http.MethodGet, "/api/search-trains?from_station=NDLS", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, payload["status"])
	assert.Contains(t, payload["error"], "to_station")
	assert.NotContains(t, payload["error"], "from_station")
}

func TestSearchTrainsLiveWithoutCredentials(t *testing.T) {
	app := NewApp(newTestServices(t, false))

	status, payload := doRequest(t, app, http.MethodGet, "/api/search-trains?from_station=NDLS&to_station=BCT", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, payload["status"])
	assert.Contains(t, payload["error"], "ECOCITTY_RAILWAY_API_KEY")
}

func TestSearchTrainsFallsBackOnUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	services := newTestServices(t, false)
	aggregator := &dataaggregator.Aggregator{}
	aggregator.RegisterSource(irctc.Source{Client: upstream.NewRapidAPIClient(server.URL, "key", "host", time.Second)})
	fixtures, err := demo.LoadFixtures()
	require.NoError(t, err)
	aggregator.RegisterDemoSource(demo.NewSource(fixtures, services.Stations))
	services.Aggregator = aggregator

	app := NewApp(services)

	status, payload := doRequest(t, app, http.MethodGet, "/api/search-trains?from_station=NDLS&to_station=BCT", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["status"])
	assert.Equal(t, "fallback", payload["source"])

	status, payload = doRequest(t, app, http.MethodGet, "/api/pnr-status/1234567890", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, payload["status"])
	assert.Equal(t, "fallback", payload["source"])
}

func TestDemoModeHeaderOverride(t *testing.T) {
	app := NewApp(newTestServices(t, false))

	status, payload := doRequest(t, app, http.MethodGet, "/api/search-trains?from_station=NDLS&to_station=BCT", "", map[string]string{
		demomode.Header: "yes",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "demo", payload["source"])

	_, payload = doRequest(t, app, http.MethodGet, "/api/demo-mode", "", map[string]string{demomode.Header: "1"})
	assert.Equal(t, "live", payload["source"])
	assert.Equal(t, false, payload["data"].(map[string]any)["demo_mode"])
	assert.Equal(t, true, payload["data"].(map[string]any)["request_demo_mode"])
}

func TestToggleDemoTwice(t *testing.T) {
	services := newTestServices(t, false)
	app := NewApp(services)

	demoMode := func(payload map[string]any) any {
		return payload["data"].(map[string]any)["demo_mode"]
	}

	_, payload := doRequest(t, app, http.MethodGet, "/api/demo-mode", "", nil)
	assert.Equal(t, false, demoMode(payload))

	status, payload := doRequest(t, app, http.MethodPost, "/api/toggle-demo", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["status"])
	assert.Equal(t, "live", payload["source"])
	assert.Equal(t, true, demoMode(payload))

	_, payload = doRequest(t, app, http.MethodGet, "/api/search-trains?from_station=NDLS&to_station=BCT", "", nil)
	assert.Equal(t, "demo", payload["source"])

	_, payload = doRequest(t, app, http.MethodPost, "/api/toggle-demo", "", nil)
	assert.Equal(t, false, demoMode(payload))

	_, payload = doRequest(t, app, http.MethodGet, "/api/demo-mode", "", nil)
	assert.Equal(t, false, demoMode(payload))
}

func TestToggleDemoRequiresAdmin(t *testing.T) {
	services := newTestServices(t, false)
	services.Config.AdminEmails = []string{"admin@example.com"}
	app := NewApp(services)

	status, payload := doRequest(t, app, http.MethodPost, "/api/toggle-demo", "", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, false, payload["status"])
	assert.Equal(t, "live", payload["source"])
	assert.Contains(t, payload["error"], "administrators")

	enabled, err := services.DemoSwitch.Enabled(context.Background())
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestFeedback(t *testing.T) {
	services := newTestServices(t, false)
	app := NewApp(services)

	status, payload := doRequest(t, app, http.MethodPost, "/api/feedback", `{"name":"Asha","category":"transport"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, payload["status"])
	assert.Contains(t, payload["error"], "description")

	_, payload = doRequest(t, app, http.MethodGet, "/api/feedback", "", nil)
	assert.Empty(t, payload["data"])

	status, payload = doRequest(t, app, http.MethodPost, "/api/feedback", `{"name":"Asha","email":"asha@example.com","description":"Buses are late","rating":4}`, nil)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, payload["status"])
	id := payload["id"].(string)
	assert.NotEmpty(t, id)

	status, payload = doRequest(t, app, http.MethodGet, "/api/feedback", "", nil)
	assert.Equal(t, http.StatusOK, status)

	records := payload["data"].([]any)
	require.Len(t, records, 1)

	record := records[0].(map[string]any)
	assert.Equal(t, id, record["id"])
	assert.Equal(t, "Buses are late", record["description"])
	assert.Equal(t, "general", record["category"])
	assert.NotContains(t, record, "email")
	assert.NotContains(t, record, "submitted_by")
}

func TestWasteReportsNewestFirst(t *testing.T) {
	app := NewApp(newTestServices(t, false))

	status, payload := doRequest(t, app, http.MethodPost, "/api/waste-reports", `{"description":"no location"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, payload["error"], "location, waste_type")

	for _, location := range []string{"Sector 1", "Sector 2"} {
		status, _ = doRequest(t, app, http.MethodPost, "/api/waste-reports", `{"location":"`+location+`","waste_type":"plastic"}`, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	_, payload = doRequest(t, app, http.MethodGet, "/api/waste-reports", "", nil)
	records := payload["data"].([]any)
	require.Len(t, records, 2)
	assert.Equal(t, "Sector 2", records[0].(map[string]any)["location"])
	assert.Equal(t, "Sector 1", records[1].(map[string]any)["location"])
}

func TestSafetyHotspotSeverity(t *testing.T) {
	app := NewApp(newTestServices(t, false))

	status, _ := doRequest(t, app, http.MethodPost, "/api/safety-hotspots", `{"location":"Park","issue_type":"lighting","severity":"extreme"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, http.MethodPost, "/api/safety-hotspots", `{"location":"Park","issue_type":"lighting"}`, nil)
	assert.Equal(t, http.StatusCreated, status)

	_, payload := doRequest(t, app, http.MethodGet, "/api/safety-hotspots", "", nil)
	records := payload["data"].([]any)
	require.Len(t, records, 1)
	assert.Equal(t, "medium", records[0].(map[string]any)["severity"])
}

func TestCarbonFootprint(t *testing.T) {
	app := NewApp(newTestServices(t, false))

	status, payload := doRequest(t, app, http.MethodPost, "/api/calculate-carbon-footprint", `{"electricity":100,"gas":10,"transport":50}`, nil)
	assert.Equal(t, http.StatusOK, status)

	data := payload["data"].(map[string]any)
	assert.Equal(t, 115.6, data["total"])
	assert.Equal(t, 82.0, data["breakdown"].(map[string]any)["electricity"])

	status, _ = doRequest(t, app, http.MethodPost, "/api/calculate-carbon-footprint", `{"electricity":-1}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSeatAvailabilityValidation(t *testing.T) {
	app := NewApp(newTestServices(t, true))

	status, payload := doRequest(t, app, http.MethodGet, "/api/seat-availability?train_no=12951", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required parameters: from_station, to_station, date", payload["error"])

	status, _ = doRequest(t, app, http.MethodGet, "/api/seat-availability?train_no=12951&from_station=BCT&to_station=NDLS&date=2026-02-01", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, payload = doRequest(t, app, http.MethodGet, "/api/seat-availability?train_no=12951&from_station=BCT&to_station=NDLS&date=01-02-2026", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "demo", payload["source"])
	assert.Equal(t, "SL", payload["data"].(map[string]any)["class"])
}

func TestTrainRouteKeepsJourneyOrder(t *testing.T) {
	app := NewApp(newTestServices(t, true))

	status, payload := doRequest(t, app, http.MethodGet, "/api/train-route/12951", "", nil)
	assert.Equal(t, http.StatusOK, status)

	data := payload["data"].(map[string]any)
	stops := data["route_stations"].([]any)
	require.Len(t, stops, 7)
	assert.Equal(t, float64(7), data["total_stations"])

	first := stops[0].(map[string]any)
	assert.Equal(t, "BCT", first["station_code"])
	assert.Equal(t, 18.9696, first["lat"])

	unknown := stops[1].(map[string]any)
	assert.Equal(t, "BVI", unknown["station_code"])
	assert.NotContains(t, unknown, "lat")

	assert.Equal(t, "NDLS", stops[6].(map[string]any)["station_code"])
}

func TestLiveStationWindow(t *testing.T) {
	app := NewApp(newTestServices(t, true))

	status, payload := doRequest(t, app, http.MethodGet, "/api/live-station/ndls?hours=3", "", nil)
	assert.Equal(t, http.StatusOK, status)

	data := payload["data"].(map[string]any)
	assert.Equal(t, "NDLS", data["station_code"])
	assert.Equal(t, "2026-02-01T13:00:00Z", data["window_end"])

	status, _ = doRequest(t, app, http.MethodGet, "/api/live-station/NDLS?hours=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGarbageTrucksAlwaysDemo(t *testing.T) {
	app := NewApp(newTestServices(t, false))

	status, payload := doRequest(t, app, http.MethodGet, "/api/garbage-trucks", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "demo", payload["source"])
	assert.NotEmpty(t, payload["data"])

	status, payload = doRequest(t, app, http.MethodGet, "/api/garbage-collection", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, payload["error"], "ECOCITTY_GARBAGE_API_URL")
}

func TestStaticEndpoints(t *testing.T) {
	app := NewApp(newTestServices(t, false))

	status, payload := doRequest(t, app, http.MethodGet, "/api/stations-list", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["status"])
	assert.Len(t, payload["data"], 13)

	_, payload = doRequest(t, app, http.MethodGet, "/api/map-data", "", nil)
	assert.Equal(t, float64(13), payload["data"].(map[string]any)["total_stations"])

	_, payload = doRequest(t, app, http.MethodGet, "/api/metro-status", "", nil)
	assert.Equal(t, "demo", payload["source"])

	status, payload = doRequest(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "live", payload["source"])

	_, payload = doRequest(t, app, http.MethodGet, "/version", "", nil)
	assert.Equal(t, true, payload["status"])
	assert.Equal(t, "live", payload["source"])
	assert.Equal(t, routes.Version, payload["data"].(map[string]any)["version"])

	status, payload = doRequest(t, app, http.MethodGet, "/api/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, payload["status"])
}

func TestAuthWithoutProviders(t *testing.T) {
	app := NewApp(newTestServices(t, false))

	status, payload := doRequest(t, app, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, payload["status"])
	assert.Equal(t, "live", payload["source"])
	assert.Equal(t, "Not logged in", payload["error"])

	status, _ = doRequest(t, app, http.MethodGet, "/login", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)

	status, payload = doRequest(t, app, http.MethodPost, "/api/auth/session", `{"credential":"token"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "live", payload["source"])

	status, payload = doRequest(t, app, http.MethodPost, "/logout", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["status"])
	assert.Equal(t, "live", payload["source"])
}

type fixedVerifier struct {
	claims *auth.Claims
}

func (v fixedVerifier) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	if token != "header.payload.signature" {
		return nil, auth.ErrInvalidToken
	}

	return v.claims, nil
}

func responseCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == name && cookie.Value != "" {
			return &http.Cookie{Name: cookie.Name, Value: cookie.Value}
		}
	}

	require.Failf(t, "missing cookie", "response did not set %s", name)
	return nil
}

func TestLoginCallbackLandsOnFrontend(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access","token_type":"Bearer","expires_in":3600,"id_token":"header.payload.signature"}`))
	}))
	defer provider.Close()

	services := newTestServices(t, false)
	services.OAuth = &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/auth/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  provider.URL + "/auth",
			TokenURL: provider.URL + "/token",
		},
	}
	services.Verifier = fixedVerifier{claims: &auth.Claims{
		Subject:  "110248495921238986420",
		Email:    "asha@example.org",
		Name:     "Asha Verma",
		Provider: auth.ProviderGoogle,
	}}
	app := NewApp(services)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)
	stateCookie := responseCookie(t, resp, auth.StateCookie)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=auth-code&state="+url.QueryEscape(state), nil)
	req.AddCookie(stateCookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	sessionCookie := responseCookie(t, resp, auth.SessionCookie)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, resp.Header.Get("Location"), nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "/static/script.js")

	status, payload := doRequest(t, app, http.MethodGet, "/api/me", "", map[string]string{
		"Cookie": sessionCookie.String(),
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "live", payload["source"])
	data := payload["data"].(map[string]any)
	assert.Equal(t, "asha@example.org", data["user"].(map[string]any)["email"])
	assert.Equal(t, false, data["is_admin"])

	identities, err := services.Store.Identities.List(context.Background(), database.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, identities, 1)
}

func TestLoginRedirectIsConfigurable(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access","token_type":"Bearer","id_token":"header.payload.signature"}`))
	}))
	defer provider.Close()

	services := newTestServices(t, false)
	services.Config.PostLoginURL = "/#dashboard"
	services.OAuth = &oauth2.Config{
		ClientID: "client",
		Endpoint: oauth2.Endpoint{AuthURL: provider.URL + "/auth", TokenURL: provider.URL + "/token"},
	}
	services.Verifier = fixedVerifier{claims: &auth.Claims{Subject: "1", Email: "ops@example.com", Provider: auth.ProviderGoogle}}
	app := NewApp(services)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil), -1)
	require.NoError(t, err)
	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=c&state="+url.QueryEscape(location.Query().Get("state")), nil)
	req.AddCookie(responseCookie(t, resp, auth.StateCookie))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/#dashboard", resp.Header.Get("Location"))
}

func TestFrontendAssets(t *testing.T) {
	app := NewApp(newTestServices(t, false))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/static/script.js", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, payload := doRequest(t, app, http.MethodGet, "/static/missing.js", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, payload["status"])
}

func TestSearchStationSingleCharacter(t *testing.T) {
	app := NewApp(newTestServices(t, true))

	status, payload := doRequest(t, app, http.MethodGet, "/api/search-station/j", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["status"])
	assert.Equal(t, "demo", payload["source"])

	codes := []string{}
	for _, station := range payload["data"].([]any) {
		codes = append(codes, station.(map[string]any)["code"].(string))
	}
	assert.Contains(t, codes, "JP")
}
