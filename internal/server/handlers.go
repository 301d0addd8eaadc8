package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dcruz/phasegen/internal/codegen"
	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/ir"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, map[string]string{"status": "up"})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, s.Tables().Document())
}

// handleUpdateConfig replaces the mapping tables with the posted document
// and persists it, so the CLI and the API see the same configuration.
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.respondError(w, http.StatusBadRequest, errCodeBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	tables, err := config.FromDocument(doc)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
		return
	}
	if err := tables.Save(s.configPath); err != nil {
		s.respondError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
		return
	}

	s.mu.Lock()
	s.tables = tables
	s.mu.Unlock()

	s.log.Info("mapping tables updated", "path", s.configPath)
	s.respondData(w, http.StatusOK, tables.Document())
}

func (s *Server) handleListPhases(w http.ResponseWriter, r *http.Request) {
	phases, err := s.store.ListPhaseInstances(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
		return
	}
	s.respondData(w, http.StatusOK, map[string]any{"phases": phases})
}

// generateRequest is the body of POST /api/generate and
// POST /api/generate/preview. Condition step keys arrive as strings because
// JSON object keys always do.
type generateRequest struct {
	PhaseID    int64                                  `json:"phase_id"`
	Target     codegen.Target                         `json:"target,omitempty"`
	OutputDir  string                                 `json:"output_dir,omitempty"`
	Conditions map[string]map[string]ir.ConditionSpec `json:"conditions,omitempty"`
}

func (req *generateRequest) conditionMap() (ir.ConditionMap, error) {
	conds := make(ir.ConditionMap, len(req.Conditions))
	for key, byTag := range req.Conditions {
		step, err := strconv.Atoi(key)
		if err != nil {
			return nil, err
		}
		conds[step] = byTag
	}
	return conds, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, errCodeBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.PhaseID == 0 {
		s.respondError(w, http.StatusBadRequest, errCodeBadRequest, "phase_id is required")
		return
	}
	if req.Target != "" && !codegen.ValidTarget(req.Target) {
		s.respondError(w, http.StatusBadRequest, errCodeBadRequest, "unknown target "+string(req.Target))
		return
	}

	conds, err := req.conditionMap()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, errCodeBadRequest, "invalid condition step key: "+err.Error())
		return
	}

	activations, err := s.store.FetchActivations(r.Context(), req.PhaseID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
		return
	}
	if len(activations) == 0 {
		s.respondError(w, http.StatusNotFound, errCodeNotFound, "no activations found for this phase")
		return
	}

	result, err := codegen.Run(codegen.Request{
		Activations: activations,
		Conditions:  conds,
		Tables:      s.Tables(),
		Target:      req.Target,
	})
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
		return
	}
	for _, warn := range result.Warnings {
		s.log.Warn("condition compile", "run_id", result.RunID, "warning", warn.String())
	}

	data := map[string]any{"result": result}
	if req.OutputDir != "" {
		paths, err := result.WriteArtifacts(req.OutputDir)
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
			return
		}
		data["files"] = paths
	}

	s.respondData(w, http.StatusOK, data)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, errCodeBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.PhaseID == 0 {
		s.respondError(w, http.StatusBadRequest, errCodeBadRequest, "phase_id is required")
		return
	}

	activations, err := s.store.FetchActivations(r.Context(), req.PhaseID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
		return
	}
	if len(activations) == 0 {
		s.respondError(w, http.StatusNotFound, errCodeNotFound, "no activations found for this phase")
		return
	}

	s.respondData(w, http.StatusOK, codegen.Preview(activations, s.Tables()))
}
