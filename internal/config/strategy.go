package config

import (
	"github.com/yourorg/tsclientgen/internal/naming"
	"github.com/yourorg/tsclientgen/internal/wire"
)

// NameStrategy decides the generated identifier names for one interface.
// The default derives them from the HTTP method and path template.
type NameStrategy interface {
	FunctionName(itf wire.ExtendedInterface) string
	RequestTypeName(itf wire.ExtendedInterface) string
	ResponseTypeName(itf wire.ExtendedInterface) string
}

// DefaultNames is the deterministic method+path naming scheme.
type DefaultNames struct{}

func (DefaultNames) FunctionName(itf wire.ExtendedInterface) string {
	return naming.FunctionName(itf.Method, itf.Path)
}

func (DefaultNames) RequestTypeName(itf wire.ExtendedInterface) string {
	return naming.RequestTypeName(itf.Method, itf.Path)
}

func (DefaultNames) ResponseTypeName(itf wire.ExtendedInterface) string {
	return naming.ResponseTypeName(itf.Method, itf.Path)
}

// PreprocessStrategy may rewrite or drop a raw interface before synthesis.
// Returning false drops the interface from the working set.
type PreprocessStrategy interface {
	Preprocess(raw wire.RawInterface) (wire.RawInterface, bool)
}

// DefaultPreprocess keeps every interface untouched.
type DefaultPreprocess struct{}

func (DefaultPreprocess) Preprocess(raw wire.RawInterface) (wire.RawInterface, bool) {
	return raw, true
}

// OutputPathStrategy resolves the output module path (relative to the
// output dir) for one interface. The default maps the owning category name
// to a directory, one segment per "/"-delimited name component, with
// non-ASCII characters romanized.
type OutputPathStrategy interface {
	OutputFilePath(itf wire.ExtendedInterface, outputDir string) string
}

// DefaultOutputPath is the category-name directory mapping.
type DefaultOutputPath struct{}

func (DefaultOutputPath) OutputFilePath(itf wire.ExtendedInterface, outputDir string) string {
	dir := naming.DirName(itf.CategoryName)
	if dir == "" {
		dir = "misc"
	}
	return outputDir + "/" + dir + "/index.ts"
}
