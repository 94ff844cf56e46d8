package generator

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// PlannedFile describes a file the writer intends to produce.
type PlannedFile struct {
	RelPath string
	Size    int
}

// WriteOptions controls output planning and writing.
type WriteOptions struct {
	// BaseDir anchors all relative output paths; defaults to the working
	// directory.
	BaseDir string
	// DryRun plans files without touching the filesystem.
	DryRun bool
}

// Result reports the planned (and, unless dry-run, written) files.
type Result struct {
	Planned []PlannedFile
}

const generatedBanner = "/* eslint-disable */\n// Generated by tsclientgen. Do not edit.\n"

// Write renders every output bucket into its module file, materializes the
// shared request-function (and hook-maker) files where absent, and emits an
// aggregating index file per root output directory.
func Write(buckets map[string]*OutputBucket, opts WriteOptions) (*Result, error) {
	files := map[string][]byte{}
	createIfAbsent := map[string][]byte{}

	// Module files, in deterministic path order.
	paths := make([]string, 0, len(buckets))
	for p := range buckets {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	indexDirs := map[string]map[string]bool{} // directory -> subdirs to re-export

	for _, p := range paths {
		b := buckets[p]
		files[p] = []byte(moduleFile(b))

		if !b.TypesOnly {
			createIfAbsent[b.RequestFunctionFilePath] = []byte(requestFileTemplate)
			if b.ReactHooks {
				createIfAbsent[b.RequestHookMakerFilePath] = []byte(hookMakerFileTemplate)
			}
		}

		recordIndexChain(indexDirs, b.OutputRoot, path.Dir(p))
	}

	for dir, subs := range indexDirs {
		indexPath := dir + "/index.ts"
		if _, taken := files[indexPath]; taken {
			continue
		}
		files[indexPath] = []byte(indexFile(subs))
	}

	rels := make([]string, 0, len(files)+len(createIfAbsent))
	for p := range files {
		rels = append(rels, p)
	}
	for p := range createIfAbsent {
		if _, exists := files[p]; !exists {
			rels = append(rels, p)
		}
	}
	sort.Strings(rels)

	res := &Result{}
	for _, rel := range rels {
		content, always := files[rel]
		if !always {
			content = createIfAbsent[rel]
		}
		res.Planned = append(res.Planned, PlannedFile{RelPath: rel, Size: len(content)})
	}

	if opts.DryRun {
		return res, nil
	}

	base := opts.BaseDir
	if base == "" {
		base = "."
	}
	for rel, content := range files {
		if err := writeAtomic(filepath.Join(base, filepath.FromSlash(rel)), content); err != nil {
			return nil, err
		}
	}
	for rel, content := range createIfAbsent {
		if _, always := files[rel]; always {
			continue
		}
		abs := filepath.Join(base, filepath.FromSlash(rel))
		if _, err := os.Stat(abs); err == nil {
			continue // shared files are created only if absent
		}
		if err := writeAtomic(abs, content); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func moduleFile(b *OutputBucket) string {
	var sb strings.Builder
	sb.WriteString(generatedBanner)
	if !b.TypesOnly {
		sb.WriteString(importLine("request", b.Path, b.RequestFunctionFilePath))
		if b.ReactHooks {
			sb.WriteString(importLine("makeRequestHook", b.Path, b.RequestHookMakerFilePath))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(b.Content())
	return sb.String()
}

func importLine(name, fromFile, toFile string) string {
	spec := relativeModule(fromFile, toFile)
	if spec == "" {
		// Degrade to a placeholder instead of aborting the run.
		return fmt.Sprintf("/* unresolved import: %s from %s */\n", name, toFile)
	}
	return fmt.Sprintf("import { %s } from '%s'\n", name, spec)
}

// relativeModule computes the TypeScript module specifier from one output
// file to another. Returns "" when the path cannot be mapped.
func relativeModule(fromFile, toFile string) string {
	rel, err := filepath.Rel(filepath.Dir(filepath.FromSlash(fromFile)), filepath.FromSlash(toFile))
	if err != nil {
		return ""
	}
	spec := filepath.ToSlash(rel)
	spec = strings.TrimSuffix(spec, ".ts")
	if spec == "" || spec == "." {
		return ""
	}
	if !strings.HasPrefix(spec, ".") {
		spec = "./" + spec
	}
	return spec
}

// recordIndexChain registers every directory between the output root and a
// module directory so that each ancestor's index re-exports the next level
// down. Multi-segment category names resolve to nested module directories;
// without the chain the root index could not reach them. Buckets planned
// outside a run (no recorded root, or a module dir outside it) degrade to
// indexing one level above the module directory.
func recordIndexChain(indexDirs map[string]map[string]bool, root, dir string) {
	if root == "" || root == "." || !strings.HasPrefix(dir, root+"/") {
		root = path.Dir(dir)
	}
	if root == "." || root == "/" || dir == root {
		return
	}
	cur := root
	for _, seg := range strings.Split(strings.TrimPrefix(dir, root+"/"), "/") {
		if seg == "" || seg == "." {
			continue
		}
		if indexDirs[cur] == nil {
			indexDirs[cur] = map[string]bool{}
		}
		indexDirs[cur][seg] = true
		cur = cur + "/" + seg
	}
}

func indexFile(subs map[string]bool) string {
	names := make([]string, 0, len(subs))
	for s := range subs {
		names = append(names, s)
	}
	sort.Strings(names)
	var sb strings.Builder
	sb.WriteString(generatedBanner)
	sb.WriteString("\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "export * from './%s'\n", name)
	}
	return sb.String()
}

// writeAtomic writes via a temp file and rename so a failed run never
// leaves a half-written module behind.
func writeAtomic(abs string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := abs + ".tmp-" + time.Now().Format("20060102150405")
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write temp %s: %w", abs, err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", abs, err)
	}
	return nil
}

const requestFileTemplate = generatedBanner + `
export type FileData = File | Blob

export interface RequestOptions {
    method: string
    path: string
    data?: any
    dataKey?: string[]
    responseType?: 'json' | 'blob'
}

// Default request implementation. Replace the body with your HTTP client of
// choice; the generated modules only depend on this signature.
export const request = async <T>(options: RequestOptions): Promise<T> => {
    const res = await fetch(options.path, {
        method: options.method.toUpperCase(),
        headers: { 'Content-Type': 'application/json' },
        body: options.method.toUpperCase() === 'GET' ? undefined : JSON.stringify(options.data),
    })
    if (options.responseType === 'blob') {
        return (await res.blob()) as unknown as T
    }
    let payload = await res.json()
    for (const key of options.dataKey ?? []) {
        payload = payload?.[key]
    }
    return payload as T
}
`

const hookMakerFileTemplate = generatedBanner + `
import { useEffect, useState } from 'react'

// Wraps a generated request function into a data-fetching hook.
export const makeRequestHook = <TData, TFn extends (data?: any) => Promise<TData>>(fn: TFn) => {
    return (...args: Parameters<TFn>) => {
        const [data, setData] = useState<TData>()
        const [loading, setLoading] = useState(true)
        const [error, setError] = useState<unknown>()
        useEffect(() => {
            fn(...args)
                .then(setData)
                .catch(setError)
                .finally(() => setLoading(false))
        }, [])
        return { data, loading, error }
    }
}
`
