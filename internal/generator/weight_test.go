package generator

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestCompareWeights(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b WeightVector
		want int
	}{
		{WeightVector{0, 0, 0, 1}, WeightVector{0, 0, 0, 2}, -1},
		{WeightVector{0, 1}, WeightVector{0, 0, 5}, 1},
		{WeightVector{0, 1}, WeightVector{0, 1, 0}, 0},
		{WeightVector{2}, WeightVector{1, 9, 9}, 1},
		{nil, WeightVector{0, 0}, 0},
		{WeightVector{1}, nil, 1},
	}
	for _, tc := range tests {
		if got := CompareWeights(tc.a, tc.b); got != tc.want {
			t.Errorf("CompareWeights(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestOutputBucket_ContentSortedByWeight(t *testing.T) {
	t.Parallel()
	b := &OutputBucket{Path: "src/api/pets/index.ts"}
	// Fragments arrive in completion order, not position order.
	b.add(WeightVector{0, 0, 0, 2}, "third")
	b.add(WeightVector{0, 0, 0, 0}, "first")
	b.add(WeightVector{0, 0, 0, 1}, "second")
	got := b.Content()
	want := "first\nsecond\nthird"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if b.Len() != 3 {
		t.Fatalf("len: %d", b.Len())
	}
	// Content must not disturb the bucket.
	if again := b.Content(); again != want {
		t.Fatalf("second call: %q", again)
	}
}

func TestOutputBucket_ConcurrentAdds(t *testing.T) {
	t.Parallel()
	b := &OutputBucket{Path: "src/api/pets/index.ts"}
	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.add(WeightVector{0, 0, 0, i}, fmt.Sprintf("fragment-%03d", i))
		}()
	}
	wg.Wait()
	if b.Len() != n {
		t.Fatalf("fragments lost: %d of %d", b.Len(), n)
	}
	want := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			want += "\n"
		}
		want += fmt.Sprintf("fragment-%03d", i)
	}
	if got := b.Content(); got != want {
		t.Fatalf("content out of order:\n%s", got)
	}
}

func TestOutputBucket_StableForEqualWeights(t *testing.T) {
	t.Parallel()
	b := &OutputBucket{}
	b.add(WeightVector{0}, "a")
	b.add(WeightVector{0}, "b")
	if got := b.Content(); got != "a\nb" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandCategoryIDs(t *testing.T) {
	t.Parallel()
	known := []int64{3, 1, 2}
	tests := []struct {
		name       string
		configured []int64
		want       []int64
	}{
		{"zero expands to all", []int64{0}, []int64{1, 2, 3}},
		{"negative excludes", []int64{0, -3}, []int64{1, 2}},
		{"explicit ids deduped", []int64{2, 2, 1}, []int64{1, 2}},
		{"unknown dropped", []int64{9}, []int64{}},
		{"exclusion without inclusion", []int64{-1}, []int64{}},
		{"mixed", []int64{0, -2, 9}, []int64{1, 3}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ExpandCategoryIDs(tc.configured, known)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCompareWeights_TotalOrderOverPrefixes(t *testing.T) {
	t.Parallel()
	ordered := []WeightVector{
		{0, 0},
		{0, 0, 1},
		{0, 1},
		{1},
	}
	for i := 0; i < len(ordered)-1; i++ {
		if CompareWeights(ordered[i], ordered[i+1]) >= 0 {
			t.Errorf("expected %v < %v", ordered[i], ordered[i+1])
		}
	}
}
