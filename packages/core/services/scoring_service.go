package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/metrics"
	"prode-api/packages/core/models"
	"prode-api/packages/core/utils"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// MatchFinishedListener is notified once per transition of a match into
// the finished status.
type MatchFinishedListener interface {
	OnMatchFinished(ctx context.Context, matchID uint) error
}

// errAlreadyApplied marks a prediction that another call scored first.
var errAlreadyApplied = errors.New("prediction already scored")

// ScoringService is the only writer of Participant points and hit counters.
type ScoringService struct {
	db    *gorm.DB
	clock clockwork.Clock
}

func NewScoringService(db *gorm.DB, clock clockwork.Clock) *ScoringService {
	return &ScoringService{
		db:    db,
		clock: clock,
	}
}

// ScoreMatch awards points for every pending prediction of a finished match.
//
// Each prediction is applied in its own transaction: the prediction leaves
// the pending status through a conditional update and the participant is
// incremented in the store, never rewritten. A failed write stops the run
// and returns the error; predictions already applied stay applied and a
// later call only picks up what is still pending. Once every prediction is
// handled the match is stamped with scored_at and further calls are no-ops.
func (s *ScoringService) ScoreMatch(ctx context.Context, matchID uint) (*models.ScoreMatchResponse, error) {
	db := s.db.WithContext(ctx)

	var match models.Match
	if err := db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("match not found")
		}
		return nil, fmt.Errorf("load match %d: %w", matchID, err)
	}

	if !match.IsFinished() {
		metrics.ScoreMatchRuns.WithLabelValues("not_ready").Inc()
		return nil, apperrors.NotReady(fmt.Sprintf("match %d is not finished (status %s)", match.ID, match.Status))
	}

	result := &models.ScoreMatchResponse{
		MatchID:     match.ID,
		Predictions: []models.ScoredPrediction{},
	}

	if match.ScoredAt != nil {
		metrics.ScoreMatchRuns.WithLabelValues("already_scored").Inc()
		result.AlreadyScored = true
		return result, nil
	}

	var predictions []models.Prediction
	if err := db.Where("match_id = ? AND status = ?", match.ID, models.PredictionPending).
		Preload("Participant.Tournament").
		Order("id ASC").
		Find(&predictions).Error; err != nil {
		return nil, fmt.Errorf("load predictions for match %d: %w", match.ID, err)
	}

	actual := utils.Scoreline{Home: match.HomeGoals, Away: match.AwayGoals}
	now := s.clock.Now()

	for _, prediction := range predictions {
		participant := prediction.Participant
		if participant == nil || participant.Tournament == nil {
			log.Printf("[scoring] match %d: prediction %d has no participant or tournament, skipping", match.ID, prediction.ID)
			result.Skipped++
			continue
		}
		tournament := participant.Tournament
		if tournament.CompetitionID != match.CompetitionID {
			log.Printf("[scoring] match %d: prediction %d belongs to tournament %d of competition %d, skipping",
				match.ID, prediction.ID, tournament.ID, tournament.CompetitionID)
			result.Skipped++
			continue
		}

		predicted := utils.Scoreline{Home: prediction.HomeGoals, Away: prediction.AwayGoals}
		score := utils.ScorePrediction(tournament.Rules, predicted, actual)
		if !score.Scored {
			log.Printf("[scoring] match %d: tournament %d has unknown rules %q, prediction %d left pending",
				match.ID, tournament.ID, tournament.Rules, prediction.ID)
			result.Skipped++
			continue
		}

		err := s.applyScore(ctx, prediction.ID, participant.ID, score, now)
		if errors.Is(err, errAlreadyApplied) {
			result.Skipped++
			continue
		}
		if err != nil {
			metrics.ScoreMatchRuns.WithLabelValues("failed").Inc()
			return result, fmt.Errorf("score prediction %d of match %d: %w", prediction.ID, match.ID, err)
		}

		metrics.PredictionsScored.WithLabelValues(string(tournament.Rules), string(score.Status)).Inc()
		metrics.PointsAwarded.WithLabelValues(string(tournament.Rules)).Add(float64(score.Points))

		result.Processed++
		result.PointsAwarded += score.Points
		result.Predictions = append(result.Predictions, models.ScoredPrediction{
			PredictionID:  prediction.ID,
			ParticipantID: participant.ID,
			Rules:         tournament.Rules,
			Points:        score.Points,
			Status:        score.Status,
		})
	}

	if err := db.Model(&models.Match{}).
		Where("id = ? AND scored_at IS NULL", match.ID).
		Update("scored_at", now).Error; err != nil {
		metrics.ScoreMatchRuns.WithLabelValues("failed").Inc()
		return result, fmt.Errorf("mark match %d scored: %w", match.ID, err)
	}

	metrics.ScoreMatchRuns.WithLabelValues("scored").Inc()
	log.Printf("[scoring] match %d (%d-%d): %d predictions scored, %d skipped, %d points awarded",
		match.ID, match.HomeGoals, match.AwayGoals, result.Processed, result.Skipped, result.PointsAwarded)

	return result, nil
}

func (s *ScoringService) applyScore(ctx context.Context, predictionID, participantID uint, score utils.ScoreResult, now time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Prediction{}).
			Where("id = ? AND status = ?", predictionID, models.PredictionPending).
			Updates(map[string]interface{}{
				"status":    score.Status,
				"points":    score.Points,
				"scored_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyApplied
		}

		updates := map[string]interface{}{
			"points": gorm.Expr("points + ?", score.Points),
		}
		if score.Exact {
			updates["exact_predictions"] = gorm.Expr("exact_predictions + 1")
		} else if score.Points > 0 {
			updates["partial_predictions"] = gorm.Expr("partial_predictions + 1")
		}

		res = tx.Model(&models.Participant{}).Where("id = ?", participantID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("participant %d not found", participantID)
		}
		return nil
	})
}

// OnMatchFinished scores the match. It is safe to call more than once.
func (s *ScoringService) OnMatchFinished(ctx context.Context, matchID uint) error {
	_, err := s.ScoreMatch(ctx, matchID)
	return err
}
