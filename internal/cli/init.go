package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// InitConfig captures the options for the init command.
type InitConfig struct {
	OutputPath string
	Force      bool
}

var initRunner = runInit

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a sample tsclientgen configuration file",
		Long:  "Scaffold a commented tsclientgen configuration file that documents available options.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			return initRunner(cmd.Context(), &InitConfig{OutputPath: out, Force: force})
		},
	}

	cmd.Flags().String("out", "tsclientgen.yaml", "Where to write the sample config file")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}

func runInit(ctx context.Context, cfg *InitConfig) error {
	_ = ctx

	out := strings.TrimSpace(cfg.OutputPath)
	if out == "" {
		out = "tsclientgen.yaml"
	}
	absPath, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("init: resolve output path: %w", err)
	}

	if st, err := os.Stat(absPath); err == nil && !cfg.Force {
		if st.Mode().IsRegular() {
			return newUsageError(fmt.Sprintf("init: %q already exists (use --force to overwrite)", absPath))
		}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot create parent directory: %v", err))
	}

	content := strings.TrimSpace(sampleConfigYAML) + "\n"

	// Atomic write via temp + rename
	tmp := absPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot write temp file: %v\nHint: choose a different --out or check directory permissions.", err))
	}
	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return newUsageError(fmt.Sprintf("init: cannot place file at %s: %v", absPath, err))
	}
	fmt.Fprintf(os.Stdout, "Wrote sample config to %s\n", absPath)
	return nil
}

// sampleConfigYAML is a commented example config documenting available options.
const sampleConfigYAML = `# tsclientgen configuration (YAML)
# Settings may be set at the top level, per server, per project, or per
# category. Later layers override earlier ones.

# Directory generated modules are written under.
outputDir: src/api

# Response envelope property path to unwrap (string or list).
# dataKey: data

# Map legacy type names onto schema primitives (matched case-insensitively).
# customTypeMapping:
#   bigint: integer

# Emit type declarations only, without request functions.
# typesOnly: false

# Output flavor (typescript|javascript).
# target: typescript

# Emit react hook wrappers per request function.
# reactHooks:
#   enabled: false

servers:
  - type: yapi                      # yapi | swagger
    serverUrl: https://yapi.example.com
    projects:
      - token: your-project-token   # or tokens: [a, b]
        categories:
          - id: 0                   # 0 = all categories; -3 excludes id 3
            # outputDir: src/api/user
            # pathPrefix: /api
  # A swagger server points at the document itself; a translating adapter
  # serves it for the duration of the run.
  # - type: swagger
  #   serverUrl: ./openapi.yaml
  #   projects:
  #     - token: swagger
  #       categories:
  #         - id: 0
`
