package cli

import (
	"context"
	"errors"
	"testing"
)

func stubGenerateRunner(t *testing.T) *GenerateConfig {
	t.Helper()
	captured := &GenerateConfig{}
	prev := generateRunner
	generateRunner = func(ctx context.Context, cfg *GenerateConfig) error {
		*captured = *cfg
		return nil
	}
	t.Cleanup(func() { generateRunner = prev })
	return captured
}

func TestRootCmd_Defaults(t *testing.T) {
	captured := stubGenerateRunner(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if captured.ConfigPath != "tsclientgen.yaml" {
		t.Errorf("config path: %q", captured.ConfigPath)
	}
	if captured.DryRun || captured.Verbose {
		t.Errorf("unexpected flags set: %+v", captured)
	}
}

func TestRootCmd_FlagOverrides(t *testing.T) {
	captured := stubGenerateRunner(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"-c", "custom.yaml", "--dry-run", "--out-base", "/tmp/out", "-v"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if captured.ConfigPath != "custom.yaml" {
		t.Errorf("config path: %q", captured.ConfigPath)
	}
	if captured.OutBase != "/tmp/out" {
		t.Errorf("out base: %q", captured.OutBase)
	}
	if !captured.DryRun || !captured.Verbose {
		t.Errorf("flags not applied: %+v", captured)
	}
}

func TestRootCmd_EmptyConfigPath(t *testing.T) {
	stubGenerateRunner(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--config", "  "})
	err := cmd.Execute()
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("err = %v", err)
	}
}

func TestRootCmd_UnknownFlag(t *testing.T) {
	stubGenerateRunner(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--definitely-not-a-flag"})
	err := cmd.Execute()
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("unknown flag should be a usage error, got %v", err)
	}
}

func TestRootCmd_MissingConfigFile(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--config", "does-not-exist.yaml"})
	err := cmd.Execute()
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("err = %v", err)
	}
}
