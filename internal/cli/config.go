package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dcruz/phasegen/internal/config"
)

// ConfigOptions holds flags for the config subcommands.
type ConfigOptions struct {
	*RootOptions
	Path string
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize the mapping tables",
	}
	cmd.PersistentFlags().StringVar(&opts.Path, "path", "plc_config.json", "mapping tables file")

	showCmd := &cobra.Command{
		Use:           "show",
		Short:         "Print the effective mapping tables",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(opts, cmd)
		},
	}

	initCmd := &cobra.Command{
		Use:           "init",
		Short:         "Write the default mapping tables to disk",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(opts, cmd)
		},
	}

	cmd.AddCommand(showCmd, initCmd)
	return cmd
}

func runConfigShow(opts *ConfigOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	tables, err := config.Load(opts.Path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load mapping tables", err)
	}

	return formatter.Print(tables.Document(), func(w io.Writer) {
		printTables(w, tables)
	})
}

func runConfigInit(opts *ConfigOptions, cmd *cobra.Command) error {
	if err := config.Default().Save(opts.Path); err != nil {
		return WrapExitError(ExitCommandError, "failed to write mapping tables", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.Path)
	return nil
}

func printTables(w io.Writer, tables config.Tables) {
	fmt.Fprintln(w, "device classes:")
	for _, code := range tables.DeviceClasses() {
		suffix := describeSuffix(tables.SuffixRules[code])
		fmt.Fprintf(w, "  %2d  %-5s %s\n", code, tables.DeviceTypeNames[code], suffix)
	}

	fmt.Fprintln(w, "qualifiers:")
	codes := make([]int, 0, len(tables.QualifierNames))
	for code := range tables.QualifierNames {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "  %2d  %s\n", code, tables.QualifierNames[code])
	}
}

func describeSuffix(entry config.SuffixEntry) string {
	if entry.ByQualifier == nil {
		if entry.Plain == "" {
			return "(no suffix)"
		}
		return entry.Plain
	}
	v := entry.ByQualifier
	return fmt.Sprintf("qualifier %d: %s, otherwise: %s", v.Qualifier, v.Special, v.Other)
}
