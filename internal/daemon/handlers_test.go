package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ledger/internal/api"
	"ledger/internal/config"
	"ledger/internal/delivery"
	"ledger/internal/labels"
	"ledger/internal/testsupport"
)

type testServer struct {
	router *gin.Engine
	cfg    *config.Config
}

func newTestServer(t *testing.T, health healthFunc) *testServer {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	assembler, err := labels.NewAssembler(cfg, nil)
	if err != nil {
		t.Fatalf("NewAssembler: %v", err)
	}
	svc := api.NewShipmentService(st, assembler, delivery.NewLocal(cfg.Paths.OutputDir, nil), nil)
	return &testServer{router: newRouter(svc, health, nil), cfg: cfg}
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, func(context.Context) (api.HealthResponse, error) {
		return api.HealthResponse{Status: "ok", Database: "ok", Storage: "local"}, nil
	})
	w := srv.do(t, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decode[api.HealthResponse](t, w); got.Storage != "local" {
		t.Fatalf("unexpected health %+v", got)
	}

	down := newTestServer(t, func(context.Context) (api.HealthResponse, error) {
		return api.HealthResponse{Status: "degraded"}, errors.New("db closed")
	})
	if w := down.do(t, http.MethodGet, "/api/health", nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestShipmentCRUD(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/shipments", api.ShipmentFields{HouseBillNumber: "HB100", ConsigneeName: "Jane"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decode[api.Shipment](t, w)
	if created.ID == "" || created.Status != "pending" {
		t.Fatalf("unexpected created shipment %+v", created)
	}

	w = srv.do(t, http.MethodGet, "/api/shipments/"+created.ID, nil)
	if w.Code != http.StatusOK || decode[api.Shipment](t, w).HouseBillNumber != "HB100" {
		t.Fatalf("show: %d %s", w.Code, w.Body.String())
	}

	w = srv.do(t, http.MethodPut, "/api/shipments/"+created.ID, api.ShipmentFields{HouseBillNumber: "HB100", ConsigneeName: "John", Status: "delivered"})
	if w.Code != http.StatusOK {
		t.Fatalf("replace: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decode[api.Shipment](t, w); got.ConsigneeName != "John" || got.StatusLabel != "Delivered" {
		t.Fatalf("unexpected replaced shipment %+v", got)
	}

	w = srv.do(t, http.MethodGet, "/api/shipments?status=delivered&q=hb1", nil)
	if list := decode[api.ShipmentListResponse](t, w); len(list.Items) != 1 {
		t.Fatalf("expected 1 listed shipment, got %d", len(list.Items))
	}

	if w := srv.do(t, http.MethodDelete, "/api/shipments/"+created.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	w = srv.do(t, http.MethodGet, "/api/shipments/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
	if body := decode[api.ErrorResponse](t, w); body.Kind != "not_found" {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestShipmentErrorsMapToStatus(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name   string
		method string
		target string
		body   any
		want   int
	}{
		{"missing house bill", http.MethodPost, "/api/shipments", api.ShipmentFields{ConsigneeName: "x"}, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/api/shipments", nil, http.StatusBadRequest},
		{"bad status filter", http.MethodGet, "/api/shipments?status=lost", nil, http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/api/shipments?limit=abc", nil, http.StatusBadRequest},
		{"unknown id", http.MethodPut, "/api/shipments/ghost", api.ShipmentFields{HouseBillNumber: "X"}, http.StatusNotFound},
		{"empty bulk delete", http.MethodDelete, "/api/shipments", api.IDsRequest{}, http.StatusBadRequest},
		{"batch prefix too long", http.MethodPost, "/api/shipments/batch", api.BatchRequest{Prefix: "TOOLONG", Start: 1, Count: 1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, tt.method, tt.target, tt.body)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestBatchPatchStatusAndStats(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/shipments/batch", api.BatchRequest{Prefix: "ERDF", Start: 1, Count: 3})
	if w.Code != http.StatusCreated {
		t.Fatalf("batch: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	ids := decode[api.CreatedResponse](t, w).IDs

	city := "Perth"
	w = srv.do(t, http.MethodPatch, "/api/shipments", api.BulkPatchRequest{IDs: ids[:2], Patch: api.ShipmentPatch{ConsigneeCity: &city}})
	if got := decode[api.CountResponse](t, w); got.Count != 2 {
		t.Fatalf("patch: expected 2, got %+v", got)
	}

	w = srv.do(t, http.MethodPost, "/api/shipments/status", api.StatusByPrefixRequest{Prefix: "ERDF", Status: "In Transit"})
	if got := decode[api.CountResponse](t, w); got.Count != 3 {
		t.Fatalf("status: expected 3, got %+v", got)
	}

	w = srv.do(t, http.MethodGet, "/api/stats", nil)
	stats := decode[api.StatsResponse](t, w)
	if stats.Counts["in_transit"] != 3 || stats.Counts["pending"] != 0 || stats.Total != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	w = srv.do(t, http.MethodDelete, "/api/shipments", api.IDsRequest{IDs: ids})
	if got := decode[api.CountResponse](t, w); got.Count != 3 {
		t.Fatalf("bulk delete: expected 3, got %+v", got)
	}
}

func TestImportMultipart(t *testing.T) {
	srv := newTestServer(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "manifest.csv")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	_, _ = part.Write([]byte("House Bill Number,Consignee Name,Pieces\nHB1,Jane,2\n,Nobody,1\nHB2,John,x\n"))
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/shipments/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[api.ImportResponse](t, w)
	if resp.Imported != 2 || resp.Skipped != 1 || len(resp.Issues) != 2 {
		t.Fatalf("unexpected import response %+v", resp)
	}

	if w := srv.do(t, http.MethodPost, "/api/shipments/import", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a file, got %d", w.Code)
	}
}

func TestLabelsStreamAndDeliver(t *testing.T) {
	srv := newTestServer(t, nil)

	if w := srv.do(t, http.MethodPost, "/api/labels", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty selection, got %d: %s", w.Code, w.Body.String())
	}

	w := srv.do(t, http.MethodPost, "/api/shipments/batch", api.BatchRequest{Prefix: "LB", Start: 1, Count: 2})
	ids := decode[api.CreatedResponse](t, w).IDs

	for _, body := range []any{nil, api.LabelRequest{}} {
		if w := srv.do(t, http.MethodPost, "/api/labels", body); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for a request selecting nothing, got %d", w.Code)
		}
	}
	if w := srv.do(t, http.MethodPost, "/api/labels", api.LabelRequest{All: true}); w.Code != http.StatusOK {
		t.Fatalf("all: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = srv.do(t, http.MethodPost, "/api/labels", api.LabelRequest{IDs: ids})
	if w.Code != http.StatusOK {
		t.Fatalf("stream: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != labels.ContentTypePDF {
		t.Fatalf("unexpected content type %q", ct)
	}
	if w.Header().Get(headerDegraded) != "0" {
		t.Fatalf("unexpected degraded header %q", w.Header().Get(headerDegraded))
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".pdf") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected a PDF body")
	}

	w = srv.do(t, http.MethodPost, "/api/labels?deliver=1", api.LabelRequest{Statuses: []string{"pending"}})
	if w.Code != http.StatusOK {
		t.Fatalf("deliver: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[api.LabelResponse](t, w)
	if resp.Pages != 2 || resp.Degraded != 0 || len(resp.Outcomes) != 2 {
		t.Fatalf("unexpected label response %+v", resp)
	}
	if filepath.Dir(resp.Location) != srv.cfg.Paths.OutputDir {
		t.Fatalf("unexpected location %q", resp.Location)
	}
	if _, err := os.Stat(resp.Location); err != nil {
		t.Fatalf("delivered file missing: %v", err)
	}

	if w := srv.do(t, http.MethodPost, "/api/labels", api.LabelRequest{IDs: []string{"ghost"}}); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", w.Code)
	}
}
