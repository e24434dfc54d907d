package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-path-defense/internal/app"
	"go-path-defense/internal/repositories/reports"
	reportsmock "go-path-defense/internal/repositories/reports/mock"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleTelemetry() app.Telemetry {
	return app.Telemetry{
		Mode:          "stress",
		Phase:         "running",
		Elapsed:       65 * time.Second,
		Budget:        5 * time.Minute,
		Ticks:         3900,
		TotalSpawned:  6500,
		ActiveEnemies: 42,
		Towers:        308,
		Lives:         3,
		Currency:      300,
		LastTick:      2 * time.Millisecond,
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	r := NewRouter(RouterConfig{Store: &Store{}})
	rec := get(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTelemetry(t *testing.T) {
	store := &Store{}
	r := NewRouter(RouterConfig{Store: store})

	rec := get(t, r, "/telemetry")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	store.Observe(sampleTelemetry())
	rec = get(t, r, "/telemetry")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got app.Telemetry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, sampleTelemetry(), got)
}

func TestReports(t *testing.T) {
	repo := reports.NewInMemory(0)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(ctx, &reports.Report{ID: id, Started: base.Add(time.Duration(i) * time.Hour)}))
	}
	r := NewRouter(RouterConfig{Store: &Store{}, Reports: repo})

	rec := get(t, r, "/reports?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []reports.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)

	rec = get(t, r, "/reports")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 3)

	rec = get(t, r, "/reports?limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = get(t, r, "/reports?limit=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReports_Disabled(t *testing.T) {
	r := NewRouter(RouterConfig{Store: &Store{}})
	assert.Equal(t, http.StatusNotFound, get(t, r, "/reports").Code)
}

func TestReports_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reportsmock.NewMockRepository(ctrl)
	repo.EXPECT().
		List(gomock.Any(), reports.ListInput{Limit: defaultReportLimit}).
		Return(nil, errors.New("connection refused"))

	r := NewRouter(RouterConfig{Store: &Store{}, Reports: repo})
	rec := get(t, r, "/reports")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := NewRouter(RouterConfig{Store: &Store{}, Metrics: m})

	m.Observe(sampleTelemetry())
	m.Observe(sampleTelemetry()) // тот же тик не попадает в гистограмму дважды

	rec := get(t, r, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "pathdefense_active_enemies 42")
	assert.Contains(t, body, "pathdefense_towers 308")
	assert.Contains(t, body, "pathdefense_total_spawned 6500")
	assert.Contains(t, body, "pathdefense_tick_duration_seconds_count 1")
}

func TestMetrics_NotMounted(t *testing.T) {
	r := NewRouter(RouterConfig{Store: &Store{}})
	assert.Equal(t, http.StatusNotFound, get(t, r, "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, get(t, r, "/ws").Code)
}

func TestCORS(t *testing.T) {
	r := NewRouter(RouterConfig{Store: &Store{}, CORSOrigins: []string{"http://dash.local"}})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://dash.local")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "http://dash.local", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.local")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebSocketBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(NewMetrics(), nil, nil)
	go hub.Run(ctx)
	ts := httptest.NewServer(NewRouter(RouterConfig{Store: &Store{}, Hub: hub}))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast("telemetry", sampleTelemetry())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope struct {
		Event string        `json:"event"`
		Data  app.Telemetry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &envelope))
	assert.Equal(t, "telemetry", envelope.Event)
	assert.Equal(t, 42, envelope.Data.ActiveEnemies)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestOriginChecker(t *testing.T) {
	assert.Nil(t, originChecker(nil))
	assert.Nil(t, originChecker([]string{"*"}))

	check := originChecker([]string{"http://dash.local"})
	require.NotNil(t, check)
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req))
	req.Header.Set("Origin", "http://dash.local")
	assert.True(t, check(req))
	req.Header.Set("Origin", "http://evil.local")
	assert.False(t, check(req))
}

func TestServer_ObserveFillsStore(t *testing.T) {
	s := NewServer("127.0.0.1:0", nil, nil, nil)
	s.Observe(sampleTelemetry())
	got, ok := s.Store.Latest()
	require.True(t, ok)
	assert.Equal(t, 308, got.Towers)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := NewServer("127.0.0.1:0", nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
