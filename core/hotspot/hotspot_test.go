package hotspot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snpscan/core/interval"
)

func mustAgg(t *testing.T, size, min int) *Aggregator {
	t.Helper()
	a, err := New(size, min)
	require.NoError(t, err)
	return a
}

func TestClusterFound(t *testing.T) {
	a := mustAgg(t, 5, 2)
	ws := a.Aggregate([]int{10, 11, 12, 13, 14, 15})
	require.NotEmpty(t, ws)
	var full bool
	for _, w := range ws {
		assert.GreaterOrEqual(t, w.SNPCount, 2)
		if w.Start == 10 {
			full = true
			assert.Equal(t, []int{10, 11, 12, 13, 14}, w.Positions)
		}
	}
	assert.True(t, full, "expected a window starting at the cluster")
}

func TestWindowInvariants(t *testing.T) {
	a := mustAgg(t, 100, 1)
	pos := []int{3, 7, 150, 151, 152, 480, 999}
	for _, w := range a.Aggregate(pos) {
		assert.Equal(t, 100, w.End-w.Start)
		assert.Equal(t, w.SNPCount, len(w.Positions))
		assert.Equal(t, float64(w.SNPCount)/100, w.Density)
		for _, p := range w.Positions {
			assert.True(t, w.Start <= p && p < w.End)
		}
	}
}

func TestStepIsTenPercent(t *testing.T) {
	assert.Equal(t, 100, Step(1000))
	assert.Equal(t, 1, Step(5))
	assert.Equal(t, 1, Step(1))
	a := mustAgg(t, 1000, 1)
	ws := a.Aggregate([]int{250})
	// starts 0,100,200 contain 250; 300 onwards would too but start must be < 250
	require.Len(t, ws, 3)
	assert.Equal(t, []int{0, 100, 200}, []int{ws[0].Start, ws[1].Start, ws[2].Start})
}

func TestOverlappingWindowsKept(t *testing.T) {
	a := mustAgg(t, 10, 3)
	ws := a.Aggregate([]int{20, 21, 22, 23})
	// step 1: every start 14..20 holds all four or at least three
	assert.Greater(t, len(ws), 1)
}

func TestUnsortedInputNotMutated(t *testing.T) {
	a := mustAgg(t, 10, 2)
	in := []int{15, 3, 4}
	ws := a.Aggregate(in)
	assert.Equal(t, []int{15, 3, 4}, in)
	require.NotEmpty(t, ws)
	assert.Equal(t, []int{3, 4}, ws[0].Positions)
}

func TestThresholdAndEmpty(t *testing.T) {
	a := mustAgg(t, 1000, DefaultMinCount)
	assert.Empty(t, a.Aggregate([]int{1, 2, 3}))
	assert.Empty(t, a.Aggregate(nil))
	// a lone position at 0 scans no window
	assert.Empty(t, mustAgg(t, 10, 1).Aggregate([]int{0}))
}

func TestNewValidation(t *testing.T) {
	_, err := New(0, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = New(10, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFilterStable(t *testing.T) {
	ws := []Window{{Start: 0, End: 10}, {Start: 10, End: 20}, {Start: 20, End: 30}}
	got := FilterStable(ws, []interval.Interval{{Start: 12, End: 13, Type: interval.Repeat}})
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, 20, got[1].Start)
}

func TestAdaptiveMinCount(t *testing.T) {
	assert.Equal(t, 35, AdaptiveMinCount(36, 35))
	assert.Equal(t, 2, AdaptiveMinCount(35, 35))
	assert.Equal(t, 2, AdaptiveMinCount(3, 35))
	assert.Equal(t, 1, AdaptiveMinCount(2, 35))
	assert.Equal(t, 1, AdaptiveMinCount(0, 35))
}
