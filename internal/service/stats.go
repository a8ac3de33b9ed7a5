package service

import (
	"context"
	"math"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/internal/repo"
)

type BaseInfo struct {
	ReviewCount          int64
	AverageRating        float64
	BusinessProfileCount int64
	OfferCount           int64
}

type StatsService struct {
	Repo *repo.GormRepo
}

func (s *StatsService) BaseInfo(ctx context.Context) (*BaseInfo, error) {
	reviews, avg, err := s.Repo.ReviewStats(ctx)
	if err != nil {
		return nil, err
	}
	businesses, err := s.Repo.CountUsersByRole(ctx, models.RoleBusiness)
	if err != nil {
		return nil, err
	}
	offers, err := s.Repo.CountOffers(ctx)
	if err != nil {
		return nil, err
	}

	info := &BaseInfo{
		ReviewCount:          reviews,
		BusinessProfileCount: businesses,
		OfferCount:           offers,
	}
	if avg != nil {
		info.AverageRating = math.Round(*avg*10) / 10
	}
	return info, nil
}
