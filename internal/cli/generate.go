package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dcruz/phasegen/internal/codegen"
	"github.com/dcruz/phasegen/internal/conditions"
	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/ir"
	"github.com/dcruz/phasegen/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Database   string
	PhaseID    int64
	ConfigPath string
	Conditions string
	Target     string
	OutputDir  string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate PLC code for one phase instance",
		Long: `Generate control logic for a phase instance.

Reads the phase's steps and activations from the database, resolves each
activation against the mapping tables, and writes the target artifacts
(Rockwell ladder text, Rockwell L5X, Siemens SCL) into the output directory.

Example:
  phasegen generate --db ./plant.db --phase 3 --out ./output
  phasegen generate --db ./plant.db --phase 3 --target siemens --conditions gates.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().Int64Var(&opts.PhaseID, "phase", 0, "phase instance id (required)")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "plc_config.json", "mapping tables file")
	cmd.Flags().StringVar(&opts.Conditions, "conditions", "", "YAML condition map file")
	cmd.Flags().StringVar(&opts.Target, "target", string(codegen.TargetAll), "target platform (rockwell|siemens|all)")
	cmd.Flags().StringVar(&opts.OutputDir, "out", "output", "output directory")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("phase")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	log := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	if !codegen.ValidTarget(codegen.Target(opts.Target)) {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown target %q", opts.Target))
	}

	tables, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load mapping tables", err)
	}
	formatter.VerboseLog("mapping tables loaded from %s", opts.ConfigPath)

	conds := ir.ConditionMap{}
	if opts.Conditions != "" {
		conds, err = conditions.Load(opts.Conditions)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load conditions", err)
		}
		formatter.VerboseLog("conditions loaded from %s", opts.Conditions)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	activations, err := st.FetchActivations(cmd.Context(), opts.PhaseID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to fetch activations", err)
	}
	if len(activations) == 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("no activations found for phase %d", opts.PhaseID))
	}

	result, err := codegen.Run(codegen.Request{
		Activations: activations,
		Conditions:  conds,
		Tables:      tables,
		Target:      codegen.Target(opts.Target),
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "generation failed", err)
	}
	for _, warn := range result.Warnings {
		log.Warn("condition compile", "warning", warn.String())
	}

	paths, err := result.WriteArtifacts(opts.OutputDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write artifacts", err)
	}

	summary := struct {
		RunID string   `json:"run_id"`
		Files []string `json:"files"`
	}{RunID: result.RunID, Files: paths}

	return formatter.Print(summary, func(w io.Writer) {
		fmt.Fprintf(w, "run %s\n", result.RunID)
		for _, path := range paths {
			fmt.Fprintf(w, "wrote %s\n", path)
		}
	})
}

// newLogger builds the slog logger commands share: text on stderr, debug
// level under --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
