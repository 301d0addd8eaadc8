package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dcruz/phasegen/internal/store"
)

// PhasesOptions holds flags for the phases command.
type PhasesOptions struct {
	*RootOptions
	Database string
}

// NewPhasesCommand creates the phases command.
func NewPhasesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PhasesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "phases",
		Short:         "List phase instances in the database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhases(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runPhases(opts *PhasesOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	phases, err := st.ListPhaseInstances(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list phases", err)
	}

	return formatter.Print(phases, func(w io.Writer) {
		if len(phases) == 0 {
			fmt.Fprintln(w, "no phase instances")
			return
		}
		for _, p := range phases {
			fmt.Fprintf(w, "%d\t%s\n", p.ID, p.Name)
		}
	})
}
