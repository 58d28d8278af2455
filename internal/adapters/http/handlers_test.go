package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/astromicai/astromic-app-sub000/internal/adapters/ephemeris"
	handler "github.com/astromicai/astromic-app-sub000/internal/adapters/http"
	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
	"github.com/astromicai/astromic-app-sub000/internal/core/usecases"
)

// ---- Mocks ----

type mockChartRepo struct {
	insertFn  func(ctx context.Context, rec *domain.ChartRecord) error
	getByIDFn func(ctx context.Context, id string) (*domain.ChartRecord, error)
	listFn    func(ctx context.Context, offset, limit int) ([]domain.ChartRecord, int, error)
	inserted  []*domain.ChartRecord
}

func (m *mockChartRepo) Insert(ctx context.Context, rec *domain.ChartRecord) error {
	m.inserted = append(m.inserted, rec)
	if m.insertFn != nil {
		return m.insertFn(ctx, rec)
	}
	return nil
}
func (m *mockChartRepo) GetByID(ctx context.Context, id string) (*domain.ChartRecord, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrChartNotFound
}
func (m *mockChartRepo) List(ctx context.Context, offset, limit int) ([]domain.ChartRecord, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

// ---- Helpers ----

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newCharts(repo *mockChartRepo) *usecases.ChartService {
	engine := usecases.NewEngine(ephemeris.New(), usecases.WithClock(func() time.Time { return fixedNow }))
	if repo == nil {
		return usecases.NewChartService(engine, nil, nil)
	}
	return usecases.NewChartService(engine, repo, nil)
}

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	d := &handler.Dependencies{Charts: newCharts(nil)}
	for _, o := range opts {
		o(d)
	}
	return d
}

func readBody(t *testing.T, body io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

func computeURL(date, clock, zone, lat, lon string) string {
	q := url.Values{}
	q.Set("date", date)
	q.Set("time", clock)
	q.Set("zone", zone)
	if lat != "" {
		q.Set("lat", lat)
	}
	if lon != "" {
		q.Set("lon", lon)
	}
	return "/v1/charts/compute?" + q.Encode()
}

type chartBody struct {
	Ascendant struct {
		Degree    float64 `json:"degree"`
		Sign      string  `json:"sign"`
		Nakshatra string  `json:"nakshatra"`
	} `json:"ascendant"`
	Planets []struct {
		Name   string  `json:"name"`
		Degree float64 `json:"degree"`
		Sign   string  `json:"sign"`
		Error  string  `json:"error"`
	} `json:"planets"`
	Instant  time.Time                    `json:"instant"`
	Ayanamsa float64                      `json:"ayanamsa"`
	Fallback *domain.InvalidInputFallback `json:"fallback"`
}

type errorBody struct {
	Status int    `json:"status"`
	Code   string `json:"code"`
	Field  string `json:"field"`
}

func decodeError(t *testing.T, body io.Reader) errorBody {
	t.Helper()
	var e errorBody
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func postJSON(path string, v interface{}) *http.Request {
	data, _ := json.Marshal(v)
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ---- Compute ----

func TestComputeChart_Success(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", computeURL("1975-08-23", "08:30 PM", "+05:30", "10.7366", "77.5250"), nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}
	if resp.Header.Get(handler.HeaderChartDegraded) != "" {
		t.Error("unexpected degraded header")
	}
	if resp.Header.Get("ETag") == "" {
		t.Error("expected ETag header")
	}
	if cc := resp.Header.Get("Cache-Control"); !strings.HasPrefix(cc, "public") {
		t.Errorf("expected public Cache-Control, got %q", cc)
	}

	var chart chartBody
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		t.Fatal(err)
	}
	if len(chart.Planets) != len(domain.Bodies) {
		t.Fatalf("expected %d planets, got %d", len(domain.Bodies), len(chart.Planets))
	}
	for i, b := range domain.Bodies {
		if chart.Planets[i].Name != b.String() {
			t.Errorf("planet %d = %s, want %s", i, chart.Planets[i].Name, b)
		}
	}
	if chart.Planets[0].Sign != "Leo" {
		t.Errorf("Sun sign = %s, want Leo", chart.Planets[0].Sign)
	}
	if !chart.Instant.Equal(time.Date(1975, 8, 23, 15, 0, 0, 0, time.UTC)) {
		t.Errorf("instant = %s", chart.Instant)
	}
	if chart.Fallback != nil {
		t.Errorf("unexpected fallback %+v", chart.Fallback)
	}
	if chart.Ascendant.Degree < 0 || chart.Ascendant.Degree >= 360 {
		t.Errorf("ascendant degree %v out of range", chart.Ascendant.Degree)
	}
}

func TestComputeChart_MissingParams(t *testing.T) {
	app := setupApp(makeDeps())

	for _, u := range []string{
		computeURL("1975-08-23", "20:30", "UTC", "", "77.5"),
		computeURL("1975-08-23", "20:30", "UTC", "10.7", ""),
		"/v1/charts/compute?date=1975-08-23",
	} {
		resp, _ := app.Test(httptest.NewRequest("GET", u, nil), -1)
		if resp.StatusCode != 400 {
			t.Errorf("%s: expected 400, got %d", u, resp.StatusCode)
			continue
		}
		if e := decodeError(t, resp.Body); e.Code != "bad_request" {
			t.Errorf("%s: code = %q", u, e.Code)
		}
	}
}

func TestComputeChart_BadNumber(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", computeURL("1975-08-23", "20:30", "UTC", "north", "77.5"), nil), -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestComputeChart_BoundaryErrors(t *testing.T) {
	app := setupApp(makeDeps())

	tests := []struct {
		name, url, field string
	}{
		{"north pole", computeURL("1975-08-23", "20:30", "UTC", "90", "0"), "latitude"},
		{"south pole", computeURL("1975-08-23", "20:30", "UTC", "-90", "0"), "latitude"},
		{"longitude", computeURL("1975-08-23", "20:30", "UTC", "10", "181"), "longitude"},
		{"unknown zone", computeURL("1975-08-23", "20:30", "Mars/Olympus_Mons", "10", "77"), "zone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := app.Test(httptest.NewRequest("GET", tt.url, nil), -1)
			if resp.StatusCode != 422 {
				t.Fatalf("expected 422, got %d", resp.StatusCode)
			}
			e := decodeError(t, resp.Body)
			if e.Code != "boundary_error" {
				t.Errorf("code = %q, want boundary_error", e.Code)
			}
			if e.Field != tt.field {
				t.Errorf("field = %q, want %q", e.Field, tt.field)
			}
		})
	}
}

func TestComputeChart_Degraded(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", computeURL("23/08/1975", "half past eight", "UTC", "10.7", "77.5"), nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get(handler.HeaderChartDegraded) != "true" {
		t.Error("expected degraded header")
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", cc)
	}
	if resp.Header.Get("ETag") != "" {
		t.Error("degraded charts must not carry an ETag")
	}

	var chart chartBody
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		t.Fatal(err)
	}
	if chart.Fallback == nil {
		t.Fatal("expected fallback in body")
	}
	if chart.Fallback.Date != "23/08/1975" {
		t.Errorf("fallback date = %q", chart.Fallback.Date)
	}
	if !chart.Instant.Equal(fixedNow) {
		t.Errorf("instant = %s, want %s", chart.Instant, fixedNow)
	}
}

func TestComputeChart_MissingDateDegrades(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/charts/compute?zone=UTC&lat=10.7&lon=77.5", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}
	if resp.Header.Get(handler.HeaderChartDegraded) != "true" {
		t.Error("expected degraded header")
	}

	var chart chartBody
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		t.Fatal(err)
	}
	if chart.Fallback == nil || chart.Fallback.Date != "" {
		t.Fatalf("fallback = %+v, want one describing the empty date", chart.Fallback)
	}
	if !chart.Instant.Equal(fixedNow) {
		t.Errorf("instant = %s, want %s", chart.Instant, fixedNow)
	}
}

func TestComputeChart_NotModified(t *testing.T) {
	app := setupApp(makeDeps())
	u := computeURL("2000-01-01", "12:00", "UTC", "51.48", "0")

	first, _ := app.Test(httptest.NewRequest("GET", u, nil), -1)
	etag := first.Header.Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag")
	}

	req := httptest.NewRequest("GET", u, nil)
	req.Header.Set("If-None-Match", etag)
	second, _ := app.Test(req, -1)
	if second.StatusCode != 304 {
		t.Fatalf("expected 304, got %d", second.StatusCode)
	}
}

// ---- Create / Get / List ----

func TestCreateChart_Success(t *testing.T) {
	repo := &mockChartRepo{}
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.Charts = newCharts(repo) }))

	resp, err := app.Test(postJSON("/v1/charts", map[string]interface{}{
		"date": "1975-08-23", "time": "08:30 PM", "zone": "Asia/Kolkata",
		"latitude": 10.7366, "longitude": 77.525,
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}

	var rec domain.ChartRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Fatal("expected chart id")
	}
	if loc := resp.Header.Get("Location"); loc != "/v1/charts/"+rec.ID {
		t.Errorf("Location = %q", loc)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].ID != rec.ID {
		t.Fatalf("expected chart %s stored, got %d inserts", rec.ID, len(repo.inserted))
	}
	if rec.Request.Zone != "Asia/Kolkata" || rec.Request.Latitude != 10.7366 {
		t.Errorf("request not echoed: %+v", rec.Request)
	}
	if len(rec.Chart.Planets) != len(domain.Bodies) {
		t.Errorf("expected %d planets, got %d", len(domain.Bodies), len(rec.Chart.Planets))
	}
}

func TestCreateChart_BadJSON(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/charts", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateChart_Boundary(t *testing.T) {
	repo := &mockChartRepo{}
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.Charts = newCharts(repo) }))

	resp, _ := app.Test(postJSON("/v1/charts", map[string]interface{}{
		"date": "1975-08-23", "time": "20:30", "zone": "UTC",
		"latitude": 95.0, "longitude": 0.0,
	}), -1)
	if resp.StatusCode != 422 {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if len(repo.inserted) != 0 {
		t.Error("rejected chart must not be stored")
	}
}

func TestCreateChart_StoreFailure(t *testing.T) {
	repo := &mockChartRepo{insertFn: func(ctx context.Context, rec *domain.ChartRecord) error {
		return errors.New("connection refused")
	}}
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.Charts = newCharts(repo) }))

	resp, _ := app.Test(postJSON("/v1/charts", map[string]interface{}{
		"date": "1975-08-23", "time": "20:30", "zone": "UTC", "latitude": 10.0, "longitude": 77.0,
	}), -1)
	if resp.StatusCode != 500 {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body := string(readBody(t, resp.Body))
	if strings.Contains(body, "connection refused") {
		t.Errorf("internal error leaked to client: %s", body)
	}
}

func TestGetChart_Success(t *testing.T) {
	stored := domain.ChartRecord{
		ID:      "7f9c2b1e-4a44-4b4e-9d8a-0d6f3e1c2b3a",
		Request: domain.ChartRequest{Date: "2000-01-01", Time: "12:00", Zone: "UTC"},
		Chart: domain.ChartResult{
			Ascendant: domain.PlacementOf(10),
			Planets:   []domain.PlanetPosition{{Body: domain.Sun, Placement: domain.PlacementOf(256.5)}},
			Instant:   time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			Ayanamsa:  23.8616,
		},
		CreatedAt: fixedNow,
	}
	repo := &mockChartRepo{getByIDFn: func(ctx context.Context, id string) (*domain.ChartRecord, error) {
		if id != stored.ID {
			return nil, domain.ErrChartNotFound
		}
		return &stored, nil
	}}
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.Charts = newCharts(repo) }))

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/charts/"+stored.ID, nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); !strings.Contains(cc, "immutable") {
		t.Errorf("Cache-Control = %q", cc)
	}
	var rec domain.ChartRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID != stored.ID || rec.Chart.Planets[0].Placement.Sign != domain.Sagittarius {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestGetChart_NotFound(t *testing.T) {
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.Charts = newCharts(&mockChartRepo{}) }))

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/charts/does-not-exist", nil), -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if e := decodeError(t, resp.Body); e.Code != "not_found" {
		t.Errorf("code = %q", e.Code)
	}
}

func TestGetChart_NoStorage(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/charts/7f9c2b1e-4a44-4b4e-9d8a-0d6f3e1c2b3a", nil), -1)
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestListCharts_Pagination(t *testing.T) {
	var gotOffset, gotLimit int
	repo := &mockChartRepo{listFn: func(ctx context.Context, offset, limit int) ([]domain.ChartRecord, int, error) {
		gotOffset, gotLimit = offset, limit
		recs := make([]domain.ChartRecord, limit)
		for i := range recs {
			recs[i] = domain.ChartRecord{ID: fmt.Sprintf("c%d", offset+i)}
		}
		return recs, 10, nil
	}}
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.Charts = newCharts(repo) }))

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/charts?offset=3&limit=3", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotOffset != 3 || gotLimit != 3 {
		t.Errorf("repo called with offset=%d limit=%d", gotOffset, gotLimit)
	}

	var result struct {
		Data       []domain.ChartRecord `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Limit  int `json:"limit"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 10 || len(result.Data) != 3 || result.Pagination.Offset != 3 {
		t.Errorf("unexpected page %+v with %d rows", result.Pagination, len(result.Data))
	}

	link := resp.Header.Get("Link")
	for _, rel := range []string{`rel="first"`, `rel="prev"`, `rel="next"`, `rel="last"`} {
		if !strings.Contains(link, rel) {
			t.Errorf("Link header missing %s: %s", rel, link)
		}
	}
}

func TestListCharts_ClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &mockChartRepo{listFn: func(ctx context.Context, offset, limit int) ([]domain.ChartRecord, int, error) {
		gotLimit = limit
		return nil, 0, nil
	}}
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.Charts = newCharts(repo) }))

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/charts?limit=5000", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotLimit != 20 {
		t.Errorf("limit = %d, want 20", gotLimit)
	}
	body := readBody(t, resp.Body)
	if !bytes.Contains(body, []byte(`"data":[]`)) {
		t.Errorf("empty page should encode data as []: %s", body)
	}
}

// ---- System ----

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/health", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "healthy" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestReady_NoBackends(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/ready", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Checks["database"] != "not configured" {
		t.Errorf("database check = %q", body.Checks["database"])
	}
}

func TestRequestIDInErrors(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/charts/compute", nil), -1)
	var body struct {
		RequestID string `json:"request_id"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.RequestID == "" {
		t.Error("expected request_id in error body")
	}
	if resp.Header.Get("X-Request-ID") != body.RequestID {
		t.Errorf("header %q != body %q", resp.Header.Get("X-Request-ID"), body.RequestID)
	}
}

func TestSecurityHeaders(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/health", nil), -1)
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if resp.Header.Get("X-API-Version") == "" {
		t.Error("missing X-API-Version")
	}
}

func TestWebSocket_RequiresUpgrade(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/ws", nil), -1)
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", resp.StatusCode)
	}
}

func TestDocs(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/docs", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(readBody(t, resp.Body)), "swagger-ui") {
		t.Error("expected Swagger UI page")
	}
}

func TestDocs_ServesDocument(t *testing.T) {
	prev := handler.OpenAPIPath
	handler.OpenAPIPath = findOpenAPISpec(t)
	defer func() { handler.OpenAPIPath = prev }()
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/docs", nil), -1)
	page := string(readBody(t, resp.Body))
	if !strings.Contains(page, "<title>Astromic Natal Chart API</title>") {
		t.Errorf("docs page title missing:\n%s", page)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/docs/openapi.json", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var doc struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.Paths["/v1/charts/compute"]; !ok {
		t.Errorf("paths = %v, want /v1/charts/compute", doc.Paths)
	}

	handler.OpenAPIPath = filepath.Join(t.TempDir(), "missing.yaml")
	resp, _ = app.Test(httptest.NewRequest("GET", "/docs/openapi.json", nil), -1)
	if resp.StatusCode != 404 {
		t.Errorf("missing document: expected 404, got %d", resp.StatusCode)
	}
}

// ---- GraphQL ----

func graphQL(t *testing.T, app *fiber.App, query string) map[string]interface{} {
	t.Helper()
	resp, err := app.Test(postJSON("/graphql", map[string]string{"query": query}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestGraphQL_Chart(t *testing.T) {
	app := setupApp(makeDeps())

	out := graphQL(t, app, `{
		chart(date: "1975-08-23", time: "08:30 PM", zone: "+05:30", lat: 10.7366, lon: 77.525) {
			ascendant { sign nakshatra }
			planets { name sign }
			degraded
		}
	}`)
	if errs, ok := out["errors"]; ok {
		t.Fatalf("unexpected errors: %v", errs)
	}
	chart := out["data"].(map[string]interface{})["chart"].(map[string]interface{})
	planets := chart["planets"].([]interface{})
	if len(planets) != len(domain.Bodies) {
		t.Fatalf("expected %d planets, got %d", len(domain.Bodies), len(planets))
	}
	sun := planets[0].(map[string]interface{})
	if sun["name"] != "Sun" || sun["sign"] != "Leo" {
		t.Errorf("sun = %v", sun)
	}
	if chart["degraded"] != false {
		t.Errorf("degraded = %v", chart["degraded"])
	}
}

func TestGraphQL_ChartWithoutDateDegrades(t *testing.T) {
	app := setupApp(makeDeps())

	out := graphQL(t, app, `{ chart(zone: "UTC", lat: 10.7, lon: 77.5) { degraded fallback { reason } } }`)
	if errs, ok := out["errors"]; ok {
		t.Fatalf("unexpected errors: %v", errs)
	}
	chart := out["data"].(map[string]interface{})["chart"].(map[string]interface{})
	if chart["degraded"] != true {
		t.Errorf("degraded = %v, want true", chart["degraded"])
	}
}

func TestGraphQL_BoundaryError(t *testing.T) {
	app := setupApp(makeDeps())

	out := graphQL(t, app, `{ chart(date: "1975-08-23", zone: "UTC", lat: 90, lon: 0) { ayanamsa } }`)
	errs, ok := out["errors"].([]interface{})
	if !ok || len(errs) == 0 {
		t.Fatalf("expected errors, got %v", out)
	}
}

func TestGraphQL_StoredChartNotFound(t *testing.T) {
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.Charts = newCharts(&mockChartRepo{}) }))

	out := graphQL(t, app, `{ storedChart(id: "missing") { id } }`)
	errs, ok := out["errors"].([]interface{})
	if !ok || len(errs) == 0 {
		t.Fatalf("expected errors, got %v", out)
	}
	msg := errs[0].(map[string]interface{})["message"].(string)
	if !strings.Contains(msg, domain.ErrChartNotFound.Error()) {
		t.Errorf("message = %q", msg)
	}
}
