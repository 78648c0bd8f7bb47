package geocell

import "sort"

// MergeInPlace appends every element of others onto *target, stably sorts
// the result by cmp (less-than; nil preserves append order), then removes
// duplicates keeping the first occurrence of each key(x) (nil uses the
// element itself as its key). It is destructive on *target.
func MergeInPlace[T comparable](target *[]T, others [][]T, key func(T) any, cmp func(a, b T) bool) {
	for _, o := range others {
		*target = append(*target, o...)
	}

	if cmp != nil {
		sort.SliceStable(*target, func(i, j int) bool {
			return cmp((*target)[i], (*target)[j])
		})
	}

	seen := make(map[any]bool, len(*target))
	out := (*target)[:0]
	for _, v := range *target {
		var k any = v
		if key != nil {
			k = key(v)
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	*target = out
}
