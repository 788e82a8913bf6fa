package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradedesk/internal/domain/dto"
	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/ingestion"
	"github.com/guttosm/tradedesk/internal/logger"
	"github.com/guttosm/tradedesk/internal/schema"
	"github.com/guttosm/tradedesk/internal/service"
	"github.com/guttosm/tradedesk/internal/storage"
)

// newTestHandler wires the real services over a memory store seeded with
// the built-in fixtures.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat := models.MustCatalog()
	v := schema.NewValidator(cat.Enums)
	store := storage.NewMemoryStore(storage.CatalogSchemas(cat))

	fx, err := ingestion.LoadFixtures("")
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	if _, err := ingestion.Seed(context.Background(), store, cat, v, fx, ingestion.Options{Strict: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return NewHandler(service.NewUserService(store), service.NewTradeService(store, cat, v), cat, v)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return NewRouter(newTestHandler(t), RouterConfig{})
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetUser(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{
			name:   "homer with degree",
			path:   "/api/v1/users/4",
			status: http.StatusOK,
			body:   `[{"id":4,"role":"investor","name":"Homer","degree":[{"id":1,"created_at":"2020-01-01T00:00:00Z","type_degree":"expert"}]}]`,
		},
		{
			name:   "degree defaults to empty list",
			path:   "/api/v1/users/1",
			status: http.StatusOK,
			body:   `[{"id":1,"role":"admin","name":"Bob","degree":[]}]`,
		},
		{name: "no match", path: "/api/v1/users/99", status: http.StatusOK, body: `[]`},
		{name: "not an integer", path: "/api/v1/users/abc", status: http.StatusUnprocessableEntity},
		{name: "fractional id", path: "/api/v1/users/1.5", status: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, tc.path, "")
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.body != "" && w.Body.String() != tc.body {
				t.Fatalf("body mismatch\nwant %s\ngot  %s", tc.body, w.Body.String())
			}
		})
	}
}

func TestGetUser_InvalidIDReportsPath(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/users/abc", "")

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Path != "/user_id" || resp.Errors[0].Kind != schema.InvalidType {
		t.Fatalf("unexpected errors %+v", resp.Errors)
	}
}

func TestListTrades(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name    string
		query   string
		status  int
		wantIDs []int
	}{
		{name: "defaults", query: "", status: 200, wantIDs: []int{1}},
		{name: "both", query: "?offset=0&limit=2", status: 200, wantIDs: []int{1, 2}},
		{name: "offset past end", query: "?offset=10&limit=5", status: 200, wantIDs: []int{}},
		{name: "negative offset", query: "?offset=-1&limit=5", status: 200, wantIDs: []int{2}},
		{name: "bad limit", query: "?limit=many", status: 422},
		{name: "both bad", query: "?limit=x&offset=y", status: 422},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, "/api/v1/trades"+tc.query, "")
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.status != 200 {
				return
			}
			var out []map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if len(out) != len(tc.wantIDs) {
				t.Fatalf("want %d trades, got %d", len(tc.wantIDs), len(out))
			}
			for i, id := range tc.wantIDs {
				if out[i]["id"] != float64(id) {
					t.Fatalf("trade %d: want id %d, got %v", i, id, out[i]["id"])
				}
			}
		})
	}

	w := do(t, r, http.MethodGet, "/api/v1/trades?limit=x&offset=y", "")
	var resp dto.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Errors) != 2 {
		t.Fatalf("both parameters must be reported: %+v", resp.Errors)
	}
}

func TestAddTrades(t *testing.T) {
	r := newTestRouter(t)

	body := `[{"id":3,"user_id":4,"currency":"ETH","side":"buy","price":10,"amount":1,"note":"dropped"}]`
	w := do(t, r, http.MethodPost, "/api/v1/trades", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	want := `{"status":200,"data":[` +
		`{"id":1,"user_id":1,"currency":"BTC","side":"buy","price":123,"amount":2.12},` +
		`{"id":2,"user_id":1,"currency":"BTC","side":"sell","price":125,"amount":2.12},` +
		`{"id":3,"user_id":4,"currency":"ETH","side":"buy","price":10,"amount":1}]}`
	if w.Body.String() != want {
		t.Fatalf("body mismatch\nwant %s\ngot  %s", want, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/v1/trades?offset=2&limit=100", "")
	if !strings.Contains(w.Body.String(), `"currency":"ETH"`) {
		t.Fatalf("appended trade not listed: %s", w.Body.String())
	}
}

func TestAddTrades_Rejections(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		status    int
		wantPaths []string
		wantItems int
	}{
		{name: "malformed json", body: `[{"id":`, status: http.StatusBadRequest},
		{name: "trailing garbage", body: `[] []`, status: http.StatusBadRequest},
		{name: "not a list", body: `{"id":1}`, status: http.StatusUnprocessableEntity, wantPaths: []string{"/"}},
		{
			name:      "one bad item voids the batch",
			body:      `[{"id":3,"user_id":1,"currency":"BTC","side":"buy","price":1,"amount":1},{"id":4,"user_id":1,"currency":"BTC","side":"buy","price":-1,"amount":1}]`,
			status:    http.StatusUnprocessableEntity,
			wantPaths: []string{"/1/price"},
			wantItems: 2,
		},
		{
			name:      "max length",
			body:      `[{"id":3,"user_id":1,"currency":"BITCOIN","sell":"buy","price":1,"amount":1}]`,
			status:    http.StatusUnprocessableEntity,
			wantPaths: []string{"/0/currency", "/0/side"},
			wantItems: 1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(t)
			w := do(t, r, http.MethodPost, "/api/v1/trades", tc.body)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			var paths []string
			for _, e := range resp.Errors {
				paths = append(paths, e.Path)
			}
			if strings.Join(paths, ",") != strings.Join(tc.wantPaths, ",") {
				t.Fatalf("want paths %v, got %v", tc.wantPaths, paths)
			}
			if len(resp.Items) != tc.wantItems {
				t.Fatalf("want %d item reports, got %d", tc.wantItems, len(resp.Items))
			}

			// nothing was appended
			w = do(t, r, http.MethodGet, "/api/v1/trades?limit=100", "")
			var out []any
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if len(out) != 2 {
				t.Fatalf("rejected batch must not be appended, have %d trades", len(out))
			}
		})
	}
}

func TestSchemas(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/schemas", "")
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var all map[string]map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, name := range []string{"Degree", "User", "Trade", "Page"} {
		if all[name]["title"] != name {
			t.Fatalf("schema %s missing: %v", name, all[name])
		}
	}

	w = do(t, r, http.MethodGet, "/api/v1/schemas/Trade", "")
	if w.Code != 200 || !strings.Contains(w.Body.String(), `"maxLength":5`) {
		t.Fatalf("unexpected trade schema %d %s", w.Code, w.Body.String())
	}
	if w = do(t, r, http.MethodGet, "/api/v1/schemas/Order", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

// brokenUsers returns records that do not satisfy the User schema.
type brokenUsers struct{}

func (brokenUsers) GetUser(context.Context, int64) ([]schema.Record, error) {
	return []schema.Record{{"id": int64(1), "role": "admin", "password": "hunter2"}}, nil
}

type failingTrades struct{ service.TradeService }

func (failingTrades) ListTrades(context.Context, int64, int64) ([]schema.Record, error) {
	return nil, assertErr{}
}

func TestShapeViolation_Is500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger.Setup(logger.Options{Level: "info", Out: &buf})
	t.Cleanup(logger.Init)

	cat := models.MustCatalog()
	v := schema.NewValidator(cat.Enums)
	r := NewRouter(NewHandler(brokenUsers{}, failingTrades{}, cat, v), RouterConfig{})

	w := do(t, r, http.MethodGet, "/api/v1/users/1", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "hunter2") || !strings.Contains(w.Body.String(), "internal server error") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	logs := buf.String()
	if !strings.Contains(logs, "response_shape_violation") || !strings.Contains(logs, `"path":"/0/name"`) {
		t.Fatalf("shape violation not logged: %s", logs)
	}

	w = do(t, r, http.MethodGet, "/api/v1/trades", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on service failure, got %d", w.Code)
	}
}
