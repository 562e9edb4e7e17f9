package fitness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOneRepMax(t *testing.T) {
	t.Parallel()

	// Epley: weight * (1 + reps/30)
	assert.Equal(t, 116.67, OneRepMax(100, 5))
	assert.Equal(t, 133.33, OneRepMax(100, 10))
	assert.Equal(t, 60.0, OneRepMax(60, 1), "a single rep is already the max")
	assert.Equal(t, 0.0, OneRepMax(100, 0))
	assert.Equal(t, 0.0, OneRepMax(0, 5))
}

func TestTotalVolume(t *testing.T) {
	t.Parallel()

	sets := []Set{
		{Reps: 5, Weight: 100, Completed: true},
		{Reps: 8, Weight: 80, Completed: true},
		{Reps: 10, Weight: 60, Completed: false}, // skipped sets do not count
	}

	assert.Equal(t, 5*100.0+8*80.0, TotalVolume(sets))
	assert.Equal(t, 0.0, TotalVolume(nil))
}

func TestWarmupSets(t *testing.T) {
	t.Parallel()

	got := WarmupSets(100)
	want := []WarmupSet{
		{Weight: 40, Reps: 10},
		{Weight: 50, Reps: 8},
		{Weight: 60, Reps: 5},
		{Weight: 70, Reps: 3},
		{Weight: 80, Reps: 2},
	}
	assert.Equal(t, want, got)
}

func TestWarmupSets_CollapsesForLightWeights(t *testing.T) {
	t.Parallel()

	// At 10kg most percentages round to the same bar weight; the duplicate
	// rungs are dropped.
	got := WarmupSets(10)
	want := []WarmupSet{
		{Weight: 5, Reps: 10},
		{Weight: 10, Reps: 2},
	}
	assert.Equal(t, want, got)
}

func TestWarmupSets_ZeroWorkingWeight(t *testing.T) {
	t.Parallel()

	assert.Empty(t, WarmupSets(0))
}
