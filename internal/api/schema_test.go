package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hoopsight/hoopsight/internal/config"
)

func TestSchemaIncludesSampleRows(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	store := newFakeStore()
	h := NewHandler(cfg, Dependencies{Store: store})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/schema", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	if store.sampleLimit != 5 {
		t.Fatalf("sample limit = %d", store.sampleLimit)
	}
	if store.sampleTable != "players" {
		t.Fatalf("sample table = %q", store.sampleTable)
	}

	var body struct {
		Tables []struct {
			Name       string  `json:"table_name"`
			SampleRows [][]any `json:"sample_rows"`
		} `json:"tables"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if len(body.Tables) != 1 || body.Tables[0].Name != "players" {
		t.Fatalf("tables = %#v", body.Tables)
	}
	if len(body.Tables[0].SampleRows) != 1 {
		t.Fatalf("sample rows = %d", len(body.Tables[0].SampleRows))
	}
}

func TestSchemaSampleRowsParam(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	store := newFakeStore()
	h := NewHandler(cfg, Dependencies{Store: store})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/schema?sample_rows=2", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if store.sampleLimit != 2 {
		t.Fatalf("sample limit = %d", store.sampleLimit)
	}
}

func TestSchemaSampleRowsZeroSkipsSampling(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	store := newFakeStore()
	h := NewHandler(cfg, Dependencies{Store: store})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/schema?sample_rows=0", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if store.sampleLimit != 0 {
		t.Fatalf("sample limit = %d", store.sampleLimit)
	}
}

func TestSchemaSampleRowsParamClamped(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	store := newFakeStore()
	h := NewHandler(cfg, Dependencies{Store: store})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/schema?sample_rows=500", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if store.sampleLimit != maxSchemaSampleRows {
		t.Fatalf("sample limit = %d", store.sampleLimit)
	}
}

func TestSchemaRejectsBadSampleRowsParam(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	h := NewHandler(cfg, Dependencies{Store: newFakeStore()})
	for _, raw := range []string{"abc", "-1", "1.5"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/schema?sample_rows="+raw, nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("sample_rows=%s: status = %d", raw, rr.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("json decode failed: %v", err)
		}
		if body["error_code"] != "INVALID_SAMPLE_ROWS" {
			t.Fatalf("sample_rows=%s: error_code = %v", raw, body["error_code"])
		}
	}
}

func TestSchemaToleratesSampleFailure(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	store := newFakeStore()
	store.sampleErr = errors.New("table busy")

	h := NewHandler(cfg, Dependencies{Store: store})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/schema", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	var body struct {
		Tables []struct {
			Name       string  `json:"table_name"`
			SampleRows [][]any `json:"sample_rows"`
		} `json:"tables"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if len(body.Tables) != 1 {
		t.Fatalf("tables = %d", len(body.Tables))
	}
	if body.Tables[0].SampleRows != nil {
		t.Fatalf("sample rows = %#v", body.Tables[0].SampleRows)
	}
}

func TestSchemaStoreError(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	store := newFakeStore()
	store.schemaErr = errors.New("database is locked")

	h := NewHandler(cfg, Dependencies{Store: store})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/schema", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
}
