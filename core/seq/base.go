// core/seq/base.go
package seq

/* ------------------------ canonical base lookup ------------------------ */

// baseIndex maps a byte to 0..3 for A,C,G,T (either case), -1 otherwise.
var baseIndex [256]int8

// Bases is the stable enumeration order used for allele counting.
var Bases = [4]byte{'A', 'C', 'G', 'T'}

func init() {
	for i := range baseIndex {
		baseIndex[i] = -1
	}
	set := func(c byte, v int8) {
		baseIndex[c] = v
		baseIndex[c+('a'-'A')] = v
	}
	set('A', 0)
	set('C', 1)
	set('G', 2)
	set('T', 3)
}

// Index returns the slot of b in Bases, or -1 for ambiguity codes, gaps,
// N and anything else outside {A,C,G,T}.
func Index(b byte) int { return int(baseIndex[b]) }

// IsCanonical reports whether b is A, C, G or T (case-insensitive).
func IsCanonical(b byte) bool { return baseIndex[b] >= 0 }

// Upper returns the upper-case form of a canonical base and leaves any
// other symbol unchanged.
func Upper(b byte) byte {
	if b >= 'a' && b <= 'z' && baseIndex[b] >= 0 {
		return b - ('a' - 'A')
	}
	return b
}

// GCCount counts G and C symbols (either case) in s.
func GCCount(s []byte) int {
	n := 0
	for _, b := range s {
		switch b {
		case 'G', 'C', 'g', 'c':
			n++
		}
	}
	return n
}

// GCFraction is GCCount over len(s); an empty slice yields 0.
func GCFraction(s []byte) float64 {
	if len(s) == 0 {
		return 0
	}
	return float64(GCCount(s)) / float64(len(s))
}

// MinLen returns the length of the shortest sequence, 0 for an empty batch.
func MinLen(seqs [][]byte) int {
	if len(seqs) == 0 {
		return 0
	}
	m := len(seqs[0])
	for _, s := range seqs[1:] {
		if len(s) < m {
			m = len(s)
		}
	}
	return m
}
