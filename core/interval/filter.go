// core/interval/filter.go
package interval

// Filter keeps the positions that fall inside none of the intervals in
// sets, preserving input order. Containment is half-open: start <= p < end.
// Batches are small, so every position scans every interval.
func Filter(positions []int, sets ...[]Interval) []int {
	out := make([]int, 0, len(positions))
next:
	for _, p := range positions {
		for _, set := range sets {
			for _, iv := range set {
				if iv.Contains(p) {
					continue next
				}
			}
		}
		out = append(out, p)
	}
	return out
}

// Excluded returns the complement of Filter: positions hit by at least one
// interval. Used for stage reporting.
func Excluded(positions []int, sets ...[]Interval) []int {
	kept := make(map[int]struct{}, len(positions))
	for _, p := range Filter(positions, sets...) {
		kept[p] = struct{}{}
	}
	var out []int
	for _, p := range positions {
		if _, ok := kept[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}
