package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dcruz/phasegen/internal/compiler"
	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/ir"
	"github.com/dcruz/phasegen/internal/rockwell"
	"github.com/dcruz/phasegen/internal/rules"
	"github.com/dcruz/phasegen/internal/siemens"
)

// Clock supplies the timestamp embedded in generated artifacts. Injecting it
// keeps generation deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// Target selects which platform artifacts a run produces.
type Target string

const (
	TargetRockwell Target = "rockwell"
	TargetSiemens  Target = "siemens"
	TargetAll      Target = "all"
)

// ValidTarget reports whether t names a known target.
func ValidTarget(t Target) bool {
	switch t {
	case TargetRockwell, TargetSiemens, TargetAll:
		return true
	}
	return false
}

// Artifact file names, fixed so downstream import tooling can find them.
const (
	ArtifactLadderText = "rockwell_ladder.txt"
	ArtifactLadderL5X  = "rockwell_ladder.L5X"
	ArtifactSCL        = "siemens_scl.txt"
)

// Request describes one generation run.
type Request struct {
	Activations []ir.Activation
	Conditions  ir.ConditionMap
	Tables      config.Tables
	Target      Target // defaults to TargetAll
	Clock       Clock  // defaults to SystemClock
	L5X         rockwell.L5XOptions
}

// Artifact is one rendered output file.
type Artifact struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Result is the outcome of a run.
type Result struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Artifacts   []Artifact         `json:"artifacts"`
	Warnings    []compiler.Warning `json:"warnings,omitempty"`
}

// Run executes one generation and returns the rendered artifacts.
func Run(req Request) (*Result, error) {
	target := req.Target
	if target == "" {
		target = TargetAll
	}
	if !ValidTarget(target) {
		return nil, fmt.Errorf("unknown target %q", target)
	}

	clock := req.Clock
	if clock == nil {
		clock = SystemClock()
	}
	now := clock.Now()

	groups := ir.GroupSteps(req.Activations)

	result := &Result{
		RunID:       uuid.NewString(),
		GeneratedAt: now,
		Warnings:    collectWarnings(groups, req.Conditions, req.Tables),
	}

	if target == TargetRockwell || target == TargetAll {
		result.Artifacts = append(result.Artifacts,
			Artifact{
				Name:    ArtifactLadderText,
				Content: rockwell.GenerateText(groups, req.Conditions, req.Tables, now),
			},
			Artifact{
				Name:    ArtifactLadderL5X,
				Content: rockwell.GenerateL5X(groups, req.Conditions, req.Tables, now, req.L5X),
			},
		)
	}
	if target == TargetSiemens || target == TargetAll {
		result.Artifacts = append(result.Artifacts, Artifact{
			Name:    ArtifactSCL,
			Content: siemens.GenerateSCL(groups, req.Conditions, req.Tables, now),
		})
	}

	return result, nil
}

// collectWarnings compiles every surviving activation's condition dry,
// gathering the unresolved-label warnings the renderers would otherwise
// swallow.
func collectWarnings(groups []ir.StepGroup, conds ir.ConditionMap, tables config.Tables) []compiler.Warning {
	var warnings []compiler.Warning
	for _, group := range groups {
		for _, act := range group.Activations {
			rule := rules.Resolve(tables, act.DeviceClass, act.Qualifier)
			if rule.Skip {
				continue
			}
			tag := act.Tag + rule.Suffix
			_, warns := compiler.Compile(conds.Lookup(group.Index, tag), ir.StepFlagTag(group.Index))
			warnings = append(warnings, warns...)
		}
	}
	return warnings
}

// WriteArtifacts writes every artifact of the result into dir, creating the
// directory if needed. Returns the written paths.
func (r *Result) WriteArtifacts(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, 0, len(r.Artifacts))
	for _, artifact := range r.Artifacts {
		path := filepath.Join(dir, artifact.Name)
		if err := writeFile(path, artifact.Content); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeFile writes content with the file handle scoped to this call, so it
// is released on every exit path.
func writeFile(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
