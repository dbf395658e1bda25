package services

import (
	"context"

	authModels "prode-api/packages/auth/models"
	"prode-api/packages/core/models"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

type StatsService struct {
	db    *gorm.DB
	clock clockwork.Clock
}

func NewStatsService(db *gorm.DB, clock clockwork.Clock) *StatsService {
	return &StatsService{
		db:    db,
		clock: clock,
	}
}

func (s *StatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	db := s.db.WithContext(ctx)
	stats := &models.Stats{}
	now := s.clock.Now()

	if err := db.Model(&authModels.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Tournament{}).Count(&stats.TotalTournaments).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Participant{}).Count(&stats.TotalParticipants).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Match{}).
		Where("status = ?", models.MatchFinished).
		Count(&stats.MatchesFinished).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Match{}).
		Where("status = ? AND scheduled_at >= ?", models.MatchNotStarted, now).
		Count(&stats.MatchesUpcoming).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Prediction{}).
		Where("status <> ?", models.PredictionPending).
		Count(&stats.PredictionsScored).Error; err != nil {
		return nil, err
	}

	// Predictions submitted in the last 7 days
	if err := db.Model(&models.Prediction{}).
		Where("created_at >= ?", now.AddDate(0, 0, -7)).
		Count(&stats.PredictionsLast7Days).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
