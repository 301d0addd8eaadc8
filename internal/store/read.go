package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dcruz/phasegen/internal/ir"
)

// PhaseInstance is one runnable phase, as listed for selection.
type PhaseInstance struct {
	ID      int64  `json:"id"`
	ClassID int64  `json:"class_id"`
	Name    string `json:"name"`
}

// ListPhaseInstances returns all phase instances ordered by name.
func (s *Store) ListPhaseInstances(ctx context.Context) ([]PhaseInstance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, class_id, name
		FROM phase_instances
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query phase instances: %w", err)
	}
	defer rows.Close()

	var phases []PhaseInstance
	for rows.Next() {
		var p PhaseInstance
		if err := rows.Scan(&p.ID, &p.ClassID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan phase instance: %w", err)
		}
		phases = append(phases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phase instances: %w", err)
	}

	if phases == nil {
		phases = []PhaseInstance{}
	}
	return phases, nil
}

// FetchActivations returns the full ordered activation sequence for one
// phase instance.
//
// Every step of the phase's class is present: steps with no bound device
// yield a single row with an empty tag, so the caller still sees the step.
// Rows are ordered by step index, then by insertion order within a step.
func (s *Store) FetchActivations(ctx context.Context, phaseID int64) ([]ir.Activation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.index_no,
		       s.name,
		       COALESCE(a.device_class, 0),
		       COALESCE(a.qualifier, 0),
		       a.tag
		FROM phase_instances p
		JOIN phase_steps s
		  ON s.class_id = p.class_id
		LEFT JOIN phase_activations a
		  ON a.phase_id = p.id
		 AND a.step_no = s.index_no
		WHERE p.id = ?
		ORDER BY s.index_no ASC, a.id ASC
	`, phaseID)
	if err != nil {
		return nil, fmt.Errorf("query activations: %w", err)
	}
	defer rows.Close()

	var activations []ir.Activation
	for rows.Next() {
		var act ir.Activation
		var tag sql.NullString
		if err := rows.Scan(&act.StepIndex, &act.StepName, &act.DeviceClass, &act.Qualifier, &tag); err != nil {
			return nil, fmt.Errorf("scan activation: %w", err)
		}
		act.Tag = tag.String
		activations = append(activations, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activations: %w", err)
	}

	if activations == nil {
		activations = []ir.Activation{}
	}
	return activations, nil
}
