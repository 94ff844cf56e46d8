package generator

import (
	"sort"
	"sync"
)

// WeightVector records an interface's position in the nested iteration
// order: [serverIndex, projectIndex, categoryIndex, interfaceIndex]. It is a
// tie-break key only; business logic never reads it.
type WeightVector []int

// CompareWeights orders two vectors lexicographically, zero-padding the
// shorter one first.
func CompareWeights(a, b WeightVector) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

type fragment struct {
	weight WeightVector
	code   string
}

// OutputBucket accumulates the code fragments that resolved to one output
// file, restoring deterministic order after parallel fetches complete in
// arbitrary order. Interfaces colliding on one output path are synthesized
// on separate goroutines, so the fragment list carries its own lock.
type OutputBucket struct {
	Path                     string
	OutputRoot               string
	RequestFunctionFilePath  string
	RequestHookMakerFilePath string
	TypesOnly                bool
	ReactHooks               bool

	mu        sync.Mutex
	fragments []fragment
}

func (b *OutputBucket) add(w WeightVector, code string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fragments = append(b.fragments, fragment{weight: w, code: code})
}

// Content returns the weight-sorted concatenation of all fragments.
func (b *OutputBucket) Content() string {
	b.mu.Lock()
	sorted := make([]fragment, len(b.fragments))
	copy(sorted, b.fragments)
	b.mu.Unlock()
	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareWeights(sorted[i].weight, sorted[j].weight) < 0
	})
	out := ""
	for i, f := range sorted {
		if i > 0 {
			out += "\n"
		}
		out += f.code
	}
	return out
}

// Len reports the number of fragments claimed by the bucket.
func (b *OutputBucket) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.fragments)
}
