// core/regions/rules.go
package regions

import "snpscan/core/interval"

// Pattern is one structural signature. Expr uses Go regexp syntax; bounded
// gaps are written as .{min,max}.
type Pattern struct {
	Name     string
	Expr     string
	FoldCase bool // match case-insensitively
	Type     interval.Type
}

// Composition configures the GC window scan.
type Composition struct {
	WindowSize  int
	Step        int
	GCThreshold float64 // strict: a window must exceed it
}

// Rules is the full detection rule set for one Classifier.
type Rules struct {
	Composition Composition
	Signatures  []Pattern
	Repeats     []Pattern
}

// DefaultComposition: 200 nt windows, 50 nt step, > 60% GC.
func DefaultComposition() Composition {
	return Composition{WindowSize: 200, Step: 50, GCThreshold: 0.60}
}

// DefaultSignatures are simplified transposon-like motifs:
// LTR-like, poly-A tail with signal, Alu-like, and two terminal inverted
// repeat forms.
func DefaultSignatures() []Pattern {
	te := interval.TransposableElement
	return []Pattern{
		{Name: "ltr", Expr: `TGTTG.{100,500}ACAACA`, FoldCase: true, Type: te},
		{Name: "polya", Expr: `AATAAA.{10,30}AAAAAAA`, FoldCase: true, Type: te},
		{Name: "sine", Expr: `GGCCGG.{50,300}CCGGCC`, FoldCase: true, Type: te},
		{Name: "tir-long", Expr: `TACAGT.{10,30}ACTGTA`, FoldCase: true, Type: te},
		{Name: "tir-short", Expr: `CAGT.{5,20}ACTG`, FoldCase: true, Type: te},
	}
}

// DefaultRepeats are homopolymer runs (>= 10) and dinucleotide repeats
// (>= 5 units). They match case-sensitively.
func DefaultRepeats() []Pattern {
	rp := interval.Repeat
	return []Pattern{
		{Name: "polyA", Expr: `A{10,}`, Type: rp},
		{Name: "polyT", Expr: `T{10,}`, Type: rp},
		{Name: "polyG", Expr: `G{10,}`, Type: rp},
		{Name: "polyC", Expr: `C{10,}`, Type: rp},
		{Name: "AT", Expr: `(AT){5,}`, Type: rp},
		{Name: "GC", Expr: `(GC){5,}`, Type: rp},
		{Name: "AG", Expr: `(AG){5,}`, Type: rp},
		{Name: "AC", Expr: `(AC){5,}`, Type: rp},
	}
}

// DefaultRules combines the three default passes.
func DefaultRules() Rules {
	return Rules{
		Composition: DefaultComposition(),
		Signatures:  DefaultSignatures(),
		Repeats:     DefaultRepeats(),
	}
}
