package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dcruz/phasegen/internal/ir"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedPhase creates a phase instance of class 1 with three steps and two
// activations on step 2, returning the instance id.
func seedPhase(t *testing.T, s *Store) int64 {
	t.Helper()
	ctx := context.Background()

	steps := []struct {
		index int
		name  string
	}{
		{2, "Fill Tank"},
		{3, "Drain"},
		{5, "Agitate"},
	}
	for _, step := range steps {
		if err := s.AddStep(ctx, 1, step.index, step.name); err != nil {
			t.Fatalf("AddStep(%d) error = %v", step.index, err)
		}
	}

	id, err := s.CreatePhaseInstance(ctx, 1, "CIP Phase")
	if err != nil {
		t.Fatalf("CreatePhaseInstance() error = %v", err)
	}

	if err := s.AddActivation(ctx, id, 2, 0, 0, "V2001"); err != nil {
		t.Fatalf("AddActivation(V2001) error = %v", err)
	}
	if err := s.AddActivation(ctx, id, 2, 8, 4, "PIC2001"); err != nil {
		t.Fatalf("AddActivation(PIC2001) error = %v", err)
	}
	return id
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	s2.Close()
}

func TestFetchActivations(t *testing.T) {
	s := openTestStore(t)
	id := seedPhase(t, s)

	acts, err := s.FetchActivations(context.Background(), id)
	if err != nil {
		t.Fatalf("FetchActivations() error = %v", err)
	}

	want := []ir.Activation{
		{StepIndex: 2, StepName: "Fill Tank", DeviceClass: 0, Qualifier: 0, Tag: "V2001"},
		{StepIndex: 2, StepName: "Fill Tank", DeviceClass: 8, Qualifier: 4, Tag: "PIC2001"},
		{StepIndex: 3, StepName: "Drain"},
		{StepIndex: 5, StepName: "Agitate"},
	}
	if len(acts) != len(want) {
		t.Fatalf("FetchActivations() returned %d rows, want %d: %+v", len(acts), len(want), acts)
	}
	for i, w := range want {
		if acts[i] != w {
			t.Errorf("activation[%d] = %+v, want %+v", i, acts[i], w)
		}
	}
}

func TestFetchActivationsUnknownPhase(t *testing.T) {
	s := openTestStore(t)
	seedPhase(t, s)

	acts, err := s.FetchActivations(context.Background(), 9999)
	if err != nil {
		t.Fatalf("FetchActivations() error = %v", err)
	}
	if acts == nil {
		t.Fatal("FetchActivations() returned nil, want empty slice")
	}
	if len(acts) != 0 {
		t.Errorf("FetchActivations() returned %d rows, want 0", len(acts))
	}
}

func TestListPhaseInstances(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.CreatePhaseInstance(ctx, 1, "Zulu"); err != nil {
		t.Fatalf("CreatePhaseInstance() error = %v", err)
	}
	if _, err := s.CreatePhaseInstance(ctx, 1, "Alpha"); err != nil {
		t.Fatalf("CreatePhaseInstance() error = %v", err)
	}

	phases, err := s.ListPhaseInstances(ctx)
	if err != nil {
		t.Fatalf("ListPhaseInstances() error = %v", err)
	}
	if len(phases) != 2 {
		t.Fatalf("ListPhaseInstances() returned %d rows, want 2", len(phases))
	}
	if phases[0].Name != "Alpha" || phases[1].Name != "Zulu" {
		t.Errorf("phases not ordered by name: %+v", phases)
	}
}

func TestListPhaseInstancesEmpty(t *testing.T) {
	s := openTestStore(t)

	phases, err := s.ListPhaseInstances(context.Background())
	if err != nil {
		t.Fatalf("ListPhaseInstances() error = %v", err)
	}
	if phases == nil {
		t.Fatal("ListPhaseInstances() returned nil, want empty slice")
	}
}

func TestAddStepDuplicateIndex(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.AddStep(ctx, 1, 2, "Fill"); err != nil {
		t.Fatalf("AddStep() error = %v", err)
	}
	if err := s.AddStep(ctx, 1, 2, "Fill Again"); err == nil {
		t.Error("AddStep() with duplicate (class, index) succeeded, want error")
	}
}

func TestAddActivationUnknownPhase(t *testing.T) {
	s := openTestStore(t)

	err := s.AddActivation(context.Background(), 42, 2, 0, 0, "V1")
	if err == nil {
		t.Error("AddActivation() with unknown phase succeeded, want foreign key error")
	}
}
