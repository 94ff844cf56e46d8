package generator

import "sort"

// ExpandCategoryIDs resolves a configured category id list against the ids
// a project actually knows. Id 0 expands to all known categories; negative
// ids remove their absolute value from the expanded set; unknown ids are
// dropped; the result is de-duplicated and sorted ascending.
func ExpandCategoryIDs(configured []int64, known []int64) []int64 {
	knownSet := make(map[int64]bool, len(known))
	for _, id := range known {
		knownSet[id] = true
	}

	included := make(map[int64]bool)
	for _, id := range configured {
		if id == 0 {
			for _, k := range known {
				included[k] = true
			}
		} else if id > 0 && knownSet[id] {
			included[id] = true
		}
	}
	for _, id := range configured {
		if id < 0 {
			delete(included, -id)
		}
	}

	out := make([]int64, 0, len(included))
	for id := range included {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
