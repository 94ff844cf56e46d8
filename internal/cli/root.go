package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the tsclientgen CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI
// easily. Running the bare binary performs a generation run; `init`
// scaffolds a config file.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tsclientgen",
		Short:         "Generate typed TypeScript API clients from remote API definitions",
		Long:          "tsclientgen fetches API definitions (YApi-style exports or Swagger/OpenAPI documents) and generates typed request/response declarations and request functions, grouped into per-category modules.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage
	// errors that also show the command's help text.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	})

	cmd.PersistentFlags().StringP("config", "c", "tsclientgen.yaml", "Config file path (YAML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")
	cmd.Flags().Bool("dry-run", false, "Preview planned outputs without writing files")
	cmd.Flags().String("out-base", "", "Base directory all output paths are resolved against")

	i := newInitCmd()
	i.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	})
	cmd.AddCommand(i)

	return cmd
}
