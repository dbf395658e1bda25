package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/models"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// DefaultPredictionCutoff is how long before kickoff predictions lock.
const DefaultPredictionCutoff = 10 * time.Minute

type PredictionService struct {
	db     *gorm.DB
	clock  clockwork.Clock
	cutoff time.Duration
}

func NewPredictionService(db *gorm.DB, clock clockwork.Clock, cutoff time.Duration) *PredictionService {
	if cutoff <= 0 {
		cutoff = DefaultPredictionCutoff
	}
	return &PredictionService{
		db:     db,
		clock:  clock,
		cutoff: cutoff,
	}
}

// Submit creates a participant's prediction for a match. Predictions are
// create-once; Update changes the goals.
func (s *PredictionService) Submit(ctx context.Context, participantID, matchID uint, homeGoals, awayGoals int) (*models.Prediction, error) {
	if homeGoals < 0 || awayGoals < 0 {
		return nil, apperrors.Validation("goals must be non-negative integers")
	}

	db := s.db.WithContext(ctx)

	var participant models.Participant
	if err := db.Preload("Tournament").First(&participant, participantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("participant not found")
		}
		return nil, fmt.Errorf("load participant %d: %w", participantID, err)
	}

	match, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if participant.Tournament != nil && participant.Tournament.CompetitionID != match.CompetitionID {
		return nil, apperrors.Validation("match does not belong to the tournament's competition")
	}

	var count int64
	if err := db.Model(&models.Prediction{}).
		Where("participant_id = ? AND match_id = ?", participantID, matchID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check existing prediction: %w", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("prediction already exists for this match and participant")
	}

	if err := s.checkCutoff(match, "created"); err != nil {
		return nil, err
	}

	prediction := models.Prediction{
		ParticipantID: participantID,
		MatchID:       matchID,
		HomeGoals:     homeGoals,
		AwayGoals:     awayGoals,
		Status:        models.PredictionPending,
	}
	if err := db.Create(&prediction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("prediction already exists for this match and participant")
		}
		return nil, fmt.Errorf("create prediction: %w", err)
	}

	return &prediction, nil
}

// Update changes the predicted goals. Only supplied fields change and the
// cutoff is checked against the match's current kickoff time.
func (s *PredictionService) Update(ctx context.Context, predictionID uint, homeGoals, awayGoals *int) (*models.Prediction, error) {
	if homeGoals == nil && awayGoals == nil {
		return nil, apperrors.Validation("at least one of home_goals or away_goals is required")
	}
	if (homeGoals != nil && *homeGoals < 0) || (awayGoals != nil && *awayGoals < 0) {
		return nil, apperrors.Validation("goals must be non-negative integers")
	}

	prediction, err := s.GetPrediction(ctx, predictionID)
	if err != nil {
		return nil, err
	}

	match, err := s.loadMatch(ctx, prediction.MatchID)
	if err != nil {
		return nil, err
	}

	if err := s.checkCutoff(match, "updated"); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if homeGoals != nil {
		updates["home_goals"] = *homeGoals
	}
	if awayGoals != nil {
		updates["away_goals"] = *awayGoals
	}

	if err := s.db.WithContext(ctx).Model(prediction).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update prediction %d: %w", predictionID, err)
	}

	return s.GetPrediction(ctx, predictionID)
}

// SubmitBatch creates or updates one prediction per item. Items fail
// independently; the result reports what happened to each.
func (s *PredictionService) SubmitBatch(ctx context.Context, participantID uint, items []models.BatchPredictionItem) ([]models.BatchPredictionResult, error) {
	if len(items) == 0 {
		return nil, apperrors.Validation("at least one prediction is required")
	}

	db := s.db.WithContext(ctx)

	var participant models.Participant
	if err := db.First(&participant, participantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("participant not found")
		}
		return nil, fmt.Errorf("load participant %d: %w", participantID, err)
	}

	results := make([]models.BatchPredictionResult, 0, len(items))
	for _, item := range items {
		result := models.BatchPredictionResult{MatchID: item.MatchID}

		if item.HomeGoals == nil || item.AwayGoals == nil {
			result.Action = "failed"
			result.Kind = string(apperrors.KindValidation)
			result.Error = "home_goals and away_goals are required"
			results = append(results, result)
			continue
		}

		var existing models.Prediction
		err := db.Where("participant_id = ? AND match_id = ?", participantID, item.MatchID).First(&existing).Error

		var prediction *models.Prediction
		switch {
		case err == nil:
			result.Action = "updated"
			prediction, err = s.Update(ctx, existing.ID, item.HomeGoals, item.AwayGoals)
		case errors.Is(err, gorm.ErrRecordNotFound):
			result.Action = "created"
			prediction, err = s.Submit(ctx, participantID, item.MatchID, *item.HomeGoals, *item.AwayGoals)
		}

		if err != nil {
			result.Action = "failed"
			result.Kind = string(apperrors.KindOf(err))
			result.Error = err.Error()
		} else {
			result.PredictionID = prediction.ID
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *PredictionService) GetPrediction(ctx context.Context, id uint) (*models.Prediction, error) {
	var prediction models.Prediction
	if err := s.db.WithContext(ctx).First(&prediction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("prediction not found")
		}
		return nil, err
	}
	return &prediction, nil
}

// GetByParticipant returns every prediction of a participant, any status.
func (s *PredictionService) GetByParticipant(ctx context.Context, participantID uint) ([]models.Prediction, error) {
	predictions := []models.Prediction{}
	if err := s.db.WithContext(ctx).Where("participant_id = ?", participantID).Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}

// GetByMatch returns every prediction for a match, any status.
func (s *PredictionService) GetByMatch(ctx context.Context, matchID uint) ([]models.Prediction, error) {
	predictions := []models.Prediction{}
	if err := s.db.WithContext(ctx).Where("match_id = ?", matchID).Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}

func (s *PredictionService) loadMatch(ctx context.Context, matchID uint) (*models.Match, error) {
	var match models.Match
	if err := s.db.WithContext(ctx).First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("match not found")
		}
		return nil, fmt.Errorf("load match %d: %w", matchID, err)
	}
	return &match, nil
}

func (s *PredictionService) checkCutoff(match *models.Match, verb string) error {
	if match.ScheduledAt.Sub(s.clock.Now()) < s.cutoff {
		return apperrors.CutoffViolation(fmt.Sprintf(
			"prediction cannot be %s less than %s before the match", verb, s.cutoff))
	}
	return nil
}
