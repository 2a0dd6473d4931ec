package api

import (
	"net/http"
	"strconv"

	"github.com/hoopsight/hoopsight/internal/boxscore"
	"github.com/hoopsight/hoopsight/internal/config"
)

const maxSchemaSampleRows = 25

type tableContext struct {
	Name       string                `json:"table_name"`
	Columns    []boxscore.ColumnInfo `json:"columns"`
	SampleRows [][]any               `json:"sample_rows,omitempty"`
}

func handleSchema(cfg config.Config, deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Store == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "STORE_NOT_CONFIGURED", "store dependency is not configured", false, nil)
		return
	}
	if err := requireRole(r, "viewer"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	samples := cfg.UI.SchemaSampleRows
	if samples <= 0 {
		samples = 5
	}
	if raw := r.URL.Query().Get("sample_rows"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(r.Context(), w, http.StatusBadRequest, "INVALID_SAMPLE_ROWS", "sample_rows must be a non-negative integer", false, nil)
			return
		}
		samples = parsed
	}
	if samples > maxSchemaSampleRows {
		samples = maxSchemaSampleRows
	}

	tables, err := deps.Store.Schema(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "STORE_ERROR", "failed to load schema", true, map[string]any{"details": err.Error()})
		return
	}

	contexts := make([]tableContext, 0, len(tables))
	for _, table := range tables {
		entry := tableContext{Name: table.Name, Columns: table.Columns}
		if samples > 0 {
			// A failed sample leaves the table listed without rows.
			if result, sampleErr := deps.Store.SampleRows(r.Context(), table.Name, samples); sampleErr == nil {
				entry.SampleRows = result.Rows
			}
		}
		contexts = append(contexts, entry)
	}

	writeJSON(w, http.StatusOK, map[string]any{"tables": contexts})
}
