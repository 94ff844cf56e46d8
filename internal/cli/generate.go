package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yourorg/tsclientgen/internal/adapter/swagger"
	"github.com/yourorg/tsclientgen/internal/config"
	"github.com/yourorg/tsclientgen/internal/fetch"
	"github.com/yourorg/tsclientgen/internal/generator"
	"github.com/yourorg/tsclientgen/internal/logger"
)

// GenerateConfig captures all inputs that influence a generation run after
// merging defaults and CLI overrides.
type GenerateConfig struct {
	ConfigPath string
	OutBase    string
	DryRun     bool
	Verbose    bool
}

var generateRunner = runGenerate

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := &GenerateConfig{ConfigPath: "tsclientgen.yaml"}
	if err := applyGenerateFlagOverrides(cmd.Flags(), cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.ConfigPath) == "" {
		return nil, newUsageError("--config is required")
	}
	return cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	if flags.Changed("config") || cfg.ConfigPath == "" {
		value, err := flags.GetString("config")
		if err != nil {
			return err
		}
		cfg.ConfigPath = strings.TrimSpace(value)
	}
	if flags.Changed("out-base") {
		value, err := flags.GetString("out-base")
		if err != nil {
			return err
		}
		cfg.OutBase = strings.TrimSpace(value)
	}
	if flags.Changed("dry-run") {
		value, err := flags.GetBool("dry-run")
		if err != nil {
			return err
		}
		cfg.DryRun = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}
	return nil
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	log := logger.New(cfg.Verbose)

	fileCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		if _, serr := os.Stat(cfg.ConfigPath); errors.Is(serr, os.ErrNotExist) {
			return newUsageError(fmt.Sprintf("config file %q not found (run `tsclientgen init` to scaffold one)", cfg.ConfigPath))
		}
		return newUsageError(err.Error())
	}

	// Swagger-type servers point at a document, not a canonical server.
	// Stand up a translating adapter per document and rewrite the server URL
	// to its local endpoint. Adapters are torn down before any error is
	// surfaced to the caller.
	var adapters []*swagger.Adapter
	defer func() {
		for _, a := range adapters {
			_ = a.Close()
		}
	}()
	for i := range fileCfg.Servers {
		if fileCfg.Servers[i].Type != config.ServerSwagger {
			continue
		}
		a, err := swagger.Start(ctx, fileCfg.Servers[i].ServerURL)
		if err != nil {
			return err
		}
		adapters = append(adapters, a)
		log.Debug().Str("document", fileCfg.Servers[i].ServerURL).Str("endpoint", a.ServerURL()).Msg("started swagger adapter")
		fileCfg.Servers[i].ServerURL = a.ServerURL()
	}

	session := fetch.NewSession(log)
	gen := generator.New(fileCfg, session, log)
	buckets, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	res, err := generator.Write(buckets, generator.WriteOptions{
		BaseDir: cfg.OutBase,
		DryRun:  cfg.DryRun,
	})
	if err != nil {
		return err
	}
	if cfg.DryRun {
		printPlan(res.Planned)
	} else {
		log.Info().Int("files", len(res.Planned)).Msg("generation complete")
	}
	return nil
}

func printPlan(planned []generator.PlannedFile) {
	fmt.Fprintf(os.Stdout, "Planned writes (%d files):\n", len(planned))
	for _, p := range planned {
		fmt.Fprintf(os.Stdout, "- %s\n", p.RelPath)
	}
}
