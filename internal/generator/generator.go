// Package generator fans out over servers, projects, categories, and
// interfaces, synthesizes one code fragment per interface, and plans the
// output files with deterministic, position-based ordering.
package generator

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yourorg/tsclientgen/internal/config"
	"github.com/yourorg/tsclientgen/internal/fetch"
	"github.com/yourorg/tsclientgen/internal/wire"
)

// Generator aggregates fragments for one run. All fetch and synthesis work
// fans out concurrently; completion order is irrelevant because fragments
// are re-ordered by WeightVector afterwards. Failure of any branch fails
// the whole run.
type Generator struct {
	servers []config.ServerConfig
	session *fetch.Session
	log     zerolog.Logger

	mu      sync.Mutex
	buckets map[string]*OutputBucket
}

// New builds a Generator over the configured servers. Root-level defaults
// are folded into each server before the per-category merge.
func New(cfg *config.Config, session *fetch.Session, log zerolog.Logger) *Generator {
	return &Generator{
		servers: cfg.WithDefaults(),
		session: session,
		log:     log,
		buckets: make(map[string]*OutputBucket),
	}
}

type logicalProject struct {
	cfg   config.ProjectConfig
	token string
}

// Run fetches every configured source and synthesizes all fragments,
// returning the output buckets keyed by resolved output path.
func (g *Generator) Run(ctx context.Context) (map[string]*OutputBucket, error) {
	eg, ctx := errgroup.WithContext(ctx)
	for si, server := range g.servers {
		// Expand multi-token projects into one logical project per token.
		var logical []logicalProject
		for _, project := range server.Projects {
			for _, token := range project.ExpandTokens() {
				logical = append(logical, logicalProject{cfg: project, token: token})
			}
		}
		for pi, lp := range logical {
			si, pi, lp, server := si, pi, lp, server
			eg.Go(func() error {
				return g.runProject(ctx, server, lp, WeightVector{si, pi})
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g.buckets, nil
}

func (g *Generator) runProject(ctx context.Context, server config.ServerConfig, lp logicalProject, weight WeightVector) error {
	project, err := g.session.Project(ctx, strings.TrimRight(server.ServerURL, "/"), lp.token)
	if err != nil {
		return err
	}
	export, err := g.session.Export(ctx, strings.TrimRight(server.ServerURL, "/"), lp.token)
	if err != nil {
		return err
	}
	g.log.Debug().Str("project", project.Name).Int("categories", len(export)).Msg("fetched project export")

	known := make([]int64, 0, len(export))
	byID := make(map[int64]wire.Category, len(export))
	for _, cat := range export {
		known = append(known, cat.ID)
		byID[cat.ID] = cat
	}

	// Resolve the configured category selections into concrete categories,
	// preserving configuration order for the weight dimension.
	type resolved struct {
		cfg config.CategoryConfig
		cat wire.Category
	}
	var cats []resolved
	for _, catCfg := range lp.cfg.Categories {
		for _, id := range ExpandCategoryIDs(catCfg.ID, known) {
			cat, ok := byID[id]
			if !ok {
				continue // unresolvable: silently filtered
			}
			cats = append(cats, resolved{cfg: catCfg, cat: cat})
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	for ci, rc := range cats {
		ci, rc := ci, rc
		sc := config.Merge(server, lp.token, lp.cfg, rc.cfg)
		eg.Go(func() error {
			return g.runCategory(ctx, sc, project, rc.cat, append(append(WeightVector(nil), weight...), ci))
		})
	}
	return eg.Wait()
}

func (g *Generator) runCategory(ctx context.Context, sc config.Synthetical, project *wire.Project, cat wire.Category, weight WeightVector) error {
	eg, _ := errgroup.WithContext(ctx)
	for ii, raw := range cat.List {
		ii, raw := ii, raw
		eg.Go(func() error {
			return g.runInterface(sc, project, cat, raw, append(append(WeightVector(nil), weight...), ii))
		})
	}
	return eg.Wait()
}

func (g *Generator) runInterface(sc config.Synthetical, project *wire.Project, cat wire.Category, raw wire.RawInterface, weight WeightVector) error {
	raw, keep := sc.Preprocess.Preprocess(raw)
	if !keep {
		return nil
	}
	if sc.PathPrefix != "" {
		prefix := "/" + strings.Trim(sc.PathPrefix, "/")
		if strings.HasPrefix(raw.Path, prefix) {
			raw.Path = strings.TrimPrefix(raw.Path, prefix)
			if !strings.HasPrefix(raw.Path, "/") {
				raw.Path = "/" + raw.Path
			}
		}
	}
	itf := wire.Extend(raw, project.ID, cat)

	code, err := synthesizeFragment(itf, sc)
	if err != nil {
		return fmt.Errorf("synthesize %s %s: %w", itf.Method, itf.Path, err)
	}

	outPath := path.Clean(sc.OutputPath.OutputFilePath(itf, sc.OutputDir))
	g.claim(outPath, sc).add(weight, code)
	return nil
}

// claim returns the bucket for an output path, creating it lazily on first
// use. The first fragment claiming a path fixes the bucket's shared-file
// paths and modes.
func (g *Generator) claim(outPath string, sc config.Synthetical) *OutputBucket {
	g.mu.Lock()
	defer g.mu.Unlock()
	if b, ok := g.buckets[outPath]; ok {
		return b
	}
	b := &OutputBucket{
		Path:                     outPath,
		OutputRoot:               path.Clean(sc.OutputDir),
		RequestFunctionFilePath:  sc.RequestFunctionFilePath,
		RequestHookMakerFilePath: sc.RequestHookMakerFilePath,
		TypesOnly:                sc.TypesOnly,
		ReactHooks:               sc.ReactHooks.Enabled,
	}
	// Shared files default to siblings of the output file.
	if b.RequestFunctionFilePath == "" {
		b.RequestFunctionFilePath = path.Join(path.Dir(outPath), "request.ts")
	}
	if b.RequestHookMakerFilePath == "" {
		b.RequestHookMakerFilePath = path.Join(path.Dir(outPath), "makeRequestHook.ts")
	}
	g.buckets[outPath] = b
	return b
}
