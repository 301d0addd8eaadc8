package store

import (
	"context"
	"fmt"
)

// CreatePhaseInstance inserts a phase instance and returns its id.
func (s *Store) CreatePhaseInstance(ctx context.Context, classID int64, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO phase_instances (class_id, name)
		VALUES (?, ?)
	`, classID, name)
	if err != nil {
		return 0, fmt.Errorf("create phase instance: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create phase instance: %w", err)
	}
	return id, nil
}

// AddStep inserts one step of a phase class. Inserting the same
// (class, index) twice is an error.
func (s *Store) AddStep(ctx context.Context, classID int64, indexNo int, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO phase_steps (class_id, index_no, name)
		VALUES (?, ?, ?)
	`, classID, indexNo, name)
	if err != nil {
		return fmt.Errorf("add step %d: %w", indexNo, err)
	}
	return nil
}

// AddActivation binds a device activation to one step of a phase instance.
func (s *Store) AddActivation(ctx context.Context, phaseID int64, stepNo, deviceClass, qualifier int, tag string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO phase_activations (phase_id, step_no, device_class, qualifier, tag)
		VALUES (?, ?, ?, ?, ?)
	`, phaseID, stepNo, deviceClass, qualifier, tag)
	if err != nil {
		return fmt.Errorf("add activation %s: %w", tag, err)
	}
	return nil
}
