// Package config loads the generation config file and merges its layered
// server/project/category settings into the effective per-category
// configuration used by synthesis.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerType selects how a configured server speaks the canonical wire
// shape: natively, or through the bundled Swagger adapter.
type ServerType string

const (
	ServerYApi    ServerType = "yapi"
	ServerSwagger ServerType = "swagger"
)

// Shared holds the settings that may be set at any layer. Later layers
// shallow-override earlier ones field by field.
type Shared struct {
	OutputDir                string            `yaml:"outputDir"`
	PathPrefix               string            `yaml:"pathPrefix"`
	DataKey                  StringList        `yaml:"dataKey"`
	CustomTypeMapping        map[string]string `yaml:"customTypeMapping"`
	TypesOnly                *bool             `yaml:"typesOnly"`
	Target                   string            `yaml:"target"`
	ReactHooks               *ReactHooks       `yaml:"reactHooks"`
	RequestFunctionFilePath  string            `yaml:"requestFunctionFilePath"`
	RequestHookMakerFilePath string            `yaml:"requestHookMakerFilePath"`
}

// ReactHooks controls emission of request-hook wrappers.
type ReactHooks struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the root of the config file.
type Config struct {
	Shared  `yaml:",inline"`
	Servers []ServerConfig `yaml:"servers"`
}

// ServerConfig describes one API-definition server.
type ServerConfig struct {
	Shared    `yaml:",inline"`
	Type      ServerType      `yaml:"type"`
	ServerURL string          `yaml:"serverUrl"`
	Projects  []ProjectConfig `yaml:"projects"`
}

// ProjectConfig describes one project on a server. A multi-token project is
// expanded into one logical project per token.
type ProjectConfig struct {
	Shared     `yaml:",inline"`
	Token      string           `yaml:"token"`
	Tokens     []string         `yaml:"tokens"`
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryConfig describes one category selection within a project. ID 0
// expands to every category the project knows; negative ids exclude their
// absolute value from the expanded set.
type CategoryConfig struct {
	Shared `yaml:",inline"`
	ID     IDList `yaml:"id"`
}

// Synthetical is the fully merged, per-category effective configuration.
// Never mutated after merge; recomputed for every category.
type Synthetical struct {
	ServerType ServerType
	ServerURL  string
	Token      string

	OutputDir                string
	PathPrefix               string
	DataKey                  []string
	CustomTypeMapping        map[string]string
	TypesOnly                bool
	Target                   string
	ReactHooks               ReactHooks
	RequestFunctionFilePath  string
	RequestHookMakerFilePath string

	Names      NameStrategy
	Preprocess PreprocessStrategy
	OutputPath OutputPathStrategy
}

// Merge produces the effective configuration for one category from the
// server, project, and category layers, in that precedence order.
func Merge(server ServerConfig, token string, project ProjectConfig, category CategoryConfig) Synthetical {
	s := Synthetical{
		ServerType: server.Type,
		ServerURL:  strings.TrimRight(server.ServerURL, "/"),
		Token:      token,
		OutputDir:  "src/api",
		Target:     "typescript",
		Names:      DefaultNames{},
		Preprocess: DefaultPreprocess{},
		OutputPath: DefaultOutputPath{},
	}
	for _, layer := range []Shared{server.Shared, project.Shared, category.Shared} {
		applyLayer(&s, layer)
	}
	return s
}

func applyLayer(s *Synthetical, layer Shared) {
	if layer.OutputDir != "" {
		s.OutputDir = layer.OutputDir
	}
	if layer.PathPrefix != "" {
		s.PathPrefix = layer.PathPrefix
	}
	if len(layer.DataKey) > 0 {
		s.DataKey = layer.DataKey
	}
	if len(layer.CustomTypeMapping) > 0 {
		s.CustomTypeMapping = layer.CustomTypeMapping
	}
	if layer.TypesOnly != nil {
		s.TypesOnly = *layer.TypesOnly
	}
	if layer.Target != "" {
		s.Target = layer.Target
	}
	if layer.ReactHooks != nil {
		s.ReactHooks = *layer.ReactHooks
	}
	if layer.RequestFunctionFilePath != "" {
		s.RequestFunctionFilePath = layer.RequestFunctionFilePath
	}
	if layer.RequestHookMakerFilePath != "" {
		s.RequestHookMakerFilePath = layer.RequestHookMakerFilePath
	}
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the identifying parameters every run needs before any
// fetch is issued.
func (c *Config) Validate() error {
	if len(c.Servers) == 0 {
		return fmt.Errorf("config: no servers configured")
	}
	for si, server := range c.Servers {
		if strings.TrimSpace(server.ServerURL) == "" {
			return fmt.Errorf("config: servers[%d]: serverUrl is required", si)
		}
		switch server.Type {
		case "", ServerYApi, ServerSwagger:
		default:
			return fmt.Errorf("config: servers[%d]: unsupported type %q", si, server.Type)
		}
		if len(server.Projects) == 0 {
			return fmt.Errorf("config: servers[%d]: no projects configured", si)
		}
		for pi, project := range server.Projects {
			if len(project.ExpandTokens()) == 0 {
				return fmt.Errorf("config: servers[%d].projects[%d]: token is required", si, pi)
			}
			if len(project.Categories) == 0 {
				return fmt.Errorf("config: servers[%d].projects[%d]: no categories configured", si, pi)
			}
		}
	}
	for _, server := range c.Servers {
		for _, project := range server.Projects {
			for _, cat := range project.Categories {
				target := firstNonEmpty(cat.Target, project.Target, server.Target, c.Target)
				if target != "" && target != "typescript" && target != "javascript" {
					return fmt.Errorf("config: unsupported target %q", target)
				}
			}
		}
	}
	return nil
}

// ExpandTokens returns the logical-project token list: Tokens when set,
// otherwise the single Token.
func (p ProjectConfig) ExpandTokens() []string {
	if len(p.Tokens) > 0 {
		out := make([]string, 0, len(p.Tokens))
		for _, t := range p.Tokens {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
		return out
	}
	if t := strings.TrimSpace(p.Token); t != "" {
		return []string{t}
	}
	return nil
}

// WithDefaults folds the root-level shared settings under every server so
// that Merge only has to look at three layers.
func (c *Config) WithDefaults() []ServerConfig {
	servers := make([]ServerConfig, len(c.Servers))
	for i, server := range c.Servers {
		merged := server
		base := c.Shared
		overlayShared(&base, server.Shared)
		merged.Shared = base
		servers[i] = merged
	}
	return servers
}

func overlayShared(dst *Shared, src Shared) {
	if src.OutputDir != "" {
		dst.OutputDir = src.OutputDir
	}
	if src.PathPrefix != "" {
		dst.PathPrefix = src.PathPrefix
	}
	if len(src.DataKey) > 0 {
		dst.DataKey = src.DataKey
	}
	if len(src.CustomTypeMapping) > 0 {
		dst.CustomTypeMapping = src.CustomTypeMapping
	}
	if src.TypesOnly != nil {
		dst.TypesOnly = src.TypesOnly
	}
	if src.Target != "" {
		dst.Target = src.Target
	}
	if src.ReactHooks != nil {
		dst.ReactHooks = src.ReactHooks
	}
	if src.RequestFunctionFilePath != "" {
		dst.RequestFunctionFilePath = src.RequestFunctionFilePath
	}
	if src.RequestHookMakerFilePath != "" {
		dst.RequestHookMakerFilePath = src.RequestHookMakerFilePath
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
