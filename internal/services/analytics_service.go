package services

import (
	"context"

	"gymgrub_backend/internal/dto"
	"gymgrub_backend/internal/fitness"
)

type AnalyticsService interface {
	// AnalyzeStrength computes one-rep-max, total volume and a warmup
	// pyramid from a logged strength session.
	AnalyzeStrength(ctx context.Context, req *dto.StrengthRequest) (*dto.StrengthResponse, error)
}

type analyticsService struct{}

func NewAnalyticsService() AnalyticsService {
	return &analyticsService{}
}

func (s *analyticsService) AnalyzeStrength(ctx context.Context, req *dto.StrengthRequest) (*dto.StrengthResponse, error) {
	sets := make([]fitness.Set, 0, len(req.Sets))
	for _, s := range req.Sets {
		sets = append(sets, fitness.Set{Reps: s.Reps, Weight: s.Weight, Completed: s.Completed})
	}

	var (
		best       float64
		bestWeight float64
	)
	for _, set := range sets {
		orm := fitness.OneRepMax(set.Weight, set.Reps)
		if orm > best {
			best = orm
			bestWeight = set.Weight
		}
	}

	warmups := fitness.WarmupSets(bestWeight)
	out := make([]dto.WarmupSet, 0, len(warmups))
	for _, w := range warmups {
		out = append(out, dto.WarmupSet{Weight: w.Weight, Reps: w.Reps})
	}

	return &dto.StrengthResponse{
		OneRepMax:   best,
		TotalVolume: fitness.TotalVolume(sets),
		WarmupSets:  out,
	}, nil
}
