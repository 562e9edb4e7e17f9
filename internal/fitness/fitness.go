// Package fitness holds the strength-math used by the analytics endpoints.
// Pure functions, no persistence.
package fitness

import (
	"math"
)

// Set is the minimal view of a logged set the calculations need.
type Set struct {
	Reps      int
	Weight    float64
	Completed bool
}

// OneRepMax estimates a one-rep max with the Epley formula:
// weight * (1 + reps/30), rounded to two decimals.
func OneRepMax(weight float64, reps int) float64 {
	if reps == 0 || weight == 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return math.Round(weight*(1+float64(reps)/30)*100) / 100
}

// TotalVolume sums reps*weight over completed sets.
func TotalVolume(sets []Set) float64 {
	var total float64
	for _, s := range sets {
		if !s.Completed {
			continue
		}
		total += float64(s.Reps) * s.Weight
	}
	return total
}

// WarmupSet is one rung of a warm-up ladder.
type WarmupSet struct {
	Weight float64
	Reps   int
}

var (
	warmupPercentages = []float64{0.4, 0.5, 0.6, 0.7, 0.8}
	warmupReps        = []int{10, 8, 5, 3, 2}
)

// WarmupSets builds a warm-up ladder for a working weight. Weights are
// rounded to the nearest 5 and rungs whose rounded weight does not progress
// past the previous one are dropped.
func WarmupSets(workingWeight float64) []WarmupSet {
	var sets []WarmupSet
	for i, pct := range warmupPercentages {
		weight := math.Round(workingWeight*pct/5) * 5
		if len(sets) > 0 && weight <= sets[len(sets)-1].Weight {
			continue
		}
		if weight <= 0 {
			continue
		}
		sets = append(sets, WarmupSet{Weight: weight, Reps: warmupReps[i]})
	}
	return sets
}
