package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcruz/phasegen/internal/codegen"
	"github.com/dcruz/phasegen/internal/store"
)

func newTestServer(t *testing.T) (*Server, int64) {
	t.Helper()

	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.AddStep(ctx, 1, 2, "Fill Tank"))
	require.NoError(t, st.AddStep(ctx, 1, 5, "Agitate"))
	phaseID, err := st.CreatePhaseInstance(ctx, 1, "CIP Phase")
	require.NoError(t, err)
	require.NoError(t, st.AddActivation(ctx, phaseID, 2, 0, 0, "V2001"))
	require.NoError(t, st.AddActivation(ctx, phaseID, 5, 14, 2, "FQ2001"))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := New(log, st, filepath.Join(dir, "plc_config.json"))
	require.NoError(t, err)
	return srv, phaseID
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeEnvelope(t, rec).Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestGetConfig(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/config", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	doc, ok := decodeEnvelope(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, doc, "type_mapping")
	assert.Contains(t, doc, "suffix_mapping")
	assert.Contains(t, doc, "pid_type_mapping")
}

func TestUpdateConfig(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string]any{
		"type_mapping":     map[string]any{"0": "Valve"},
		"suffix_mapping":   map[string]any{"0": ".open"},
		"pid_type_mapping": map[string]any{"0": "N"},
	}
	rec := doRequest(t, srv, http.MethodPut, "/api/config", body)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Valve", srv.Tables().DeviceTypeNames[0])

	// The update persists to the config path.
	_, err := os.Stat(srv.configPath)
	assert.NoError(t, err)
}

func TestUpdateConfig_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/api/config", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, errCodeBadRequest, env.Error.Code)
}

func TestListPhases(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/phases", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := decodeEnvelope(t, rec).Data.(map[string]any)
	require.True(t, ok)
	phases, ok := data["phases"].([]any)
	require.True(t, ok)
	assert.Len(t, phases, 1)
}

func TestGenerate(t *testing.T) {
	srv, phaseID := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate", map[string]any{
		"phase_id": phaseID,
		"target":   "rockwell",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := decodeEnvelope(t, rec).Data.(map[string]any)
	require.True(t, ok)
	result, ok := data["result"].(map[string]any)
	require.True(t, ok)
	artifacts, ok := result["artifacts"].([]any)
	require.True(t, ok)
	assert.Len(t, artifacts, 2)
}

func TestGenerate_WritesArtifacts(t *testing.T) {
	srv, phaseID := newTestServer(t)
	outDir := filepath.Join(t.TempDir(), "out")

	rec := doRequest(t, srv, http.MethodPost, "/api/generate", map[string]any{
		"phase_id":   phaseID,
		"output_dir": outDir,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := os.Stat(filepath.Join(outDir, codegen.ArtifactLadderText))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, codegen.ArtifactSCL))
	assert.NoError(t, err)
}

func TestGenerate_Validation(t *testing.T) {
	srv, phaseID := newTestServer(t)

	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
		wantErr  string
	}{
		{
			name:     "missing phase id",
			body:     map[string]any{"target": "all"},
			wantCode: http.StatusBadRequest,
			wantErr:  errCodeBadRequest,
		},
		{
			name:     "unknown target",
			body:     map[string]any{"phase_id": phaseID, "target": "beckhoff"},
			wantCode: http.StatusBadRequest,
			wantErr:  errCodeBadRequest,
		},
		{
			name:     "unknown phase",
			body:     map[string]any{"phase_id": 9999},
			wantCode: http.StatusNotFound,
			wantErr:  errCodeNotFound,
		},
		{
			name: "bad condition step key",
			body: map[string]any{
				"phase_id":   phaseID,
				"conditions": map[string]any{"two": map[string]any{}},
			},
			wantCode: http.StatusBadRequest,
			wantErr:  errCodeBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/generate", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantErr, env.Error.Code)
		})
	}
}

func TestPreview(t *testing.T) {
	srv, phaseID := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate/preview", map[string]any{
		"phase_id": phaseID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	summary, ok := decodeEnvelope(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), summary["total_steps"])
	assert.Equal(t, float64(2), summary["total_activations"])
}

func TestPreview_UnknownPhase(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate/preview", map[string]any{
		"phase_id": 424242,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
