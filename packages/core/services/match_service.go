package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/models"

	"gorm.io/gorm"
)

type MatchService struct {
	db       *gorm.DB
	listener MatchFinishedListener
}

// NewMatchService wires the match store to the listener that runs when a
// match becomes finished. listener may be nil.
func NewMatchService(db *gorm.DB, listener MatchFinishedListener) *MatchService {
	return &MatchService{
		db:       db,
		listener: listener,
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, req models.CreateMatchRequest) (*models.Match, error) {
	if req.HomeGoals < 0 || req.AwayGoals < 0 {
		return nil, apperrors.Validation("goals must be non-negative integers")
	}

	db := s.db.WithContext(ctx)

	if err := db.First(&models.Competition{}, req.CompetitionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("competition not found")
		}
		return nil, err
	}

	match := models.Match{
		CompetitionID: req.CompetitionID,
		ExternalID:    req.ExternalID,
		ScheduledAt:   req.ScheduledAt.UTC(),
		Round:         req.Round,
		Venue:         req.Venue,
		HomeTeam:      req.HomeTeam,
		HomeTeamImage: req.HomeTeamImage,
		AwayTeam:      req.AwayTeam,
		AwayTeamImage: req.AwayTeamImage,
		HomeGoals:     req.HomeGoals,
		AwayGoals:     req.AwayGoals,
		Status:        models.MatchNotStarted,
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("unknown match status %q", *req.Status))
		}
		match.Status = *req.Status
	}

	if err := db.Create(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("match already exists")
		}
		return nil, err
	}

	if match.IsFinished() {
		s.notifyFinished(ctx, match.ID)
	}

	return &match, nil
}

func (s *MatchService) GetMatch(ctx context.Context, id uint) (*models.Match, error) {
	var match models.Match
	if err := s.db.WithContext(ctx).First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("match not found")
		}
		return nil, err
	}
	return &match, nil
}

// GetMatches lists matches by kickoff time, optionally filtered by
// competition and status.
func (s *MatchService) GetMatches(ctx context.Context, competitionID *uint, status *models.MatchStatus) ([]models.Match, error) {
	matches := []models.Match{}

	query := s.db.WithContext(ctx).Model(&models.Match{})
	if competitionID != nil {
		query = query.Where("competition_id = ?", *competitionID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Order("scheduled_at ASC").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// UpdateMatch applies the supplied fields. A change of status into finished
// notifies the listener once.
func (s *MatchService) UpdateMatch(ctx context.Context, id uint, req models.UpdateMatchRequest) (*models.Match, error) {
	updates := make(map[string]interface{})
	if req.ScheduledAt != nil {
		updates["scheduled_at"] = req.ScheduledAt.UTC()
	}
	if req.HomeTeam != nil {
		updates["home_team"] = *req.HomeTeam
	}
	if req.AwayTeam != nil {
		updates["away_team"] = *req.AwayTeam
	}
	if req.HomeGoals != nil {
		if *req.HomeGoals < 0 {
			return nil, apperrors.Validation("goals must be non-negative integers")
		}
		updates["home_goals"] = *req.HomeGoals
	}
	if req.AwayGoals != nil {
		if *req.AwayGoals < 0 {
			return nil, apperrors.Validation("goals must be non-negative integers")
		}
		updates["away_goals"] = *req.AwayGoals
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("unknown match status %q", *req.Status))
		}
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return nil, apperrors.Validation("at least one field is required")
	}

	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	wasFinished := match.IsFinished()

	if err := s.db.WithContext(ctx).Model(match).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update match %d: %w", id, err)
	}

	if !wasFinished && req.Status != nil && *req.Status == models.MatchFinished {
		s.notifyFinished(ctx, id)
	}

	return s.GetMatch(ctx, id)
}

// UpsertByExternalID creates or refreshes a feed match keyed by its
// external id and reports whether it just became finished. The listener
// is notified on that transition.
func (s *MatchService) UpsertByExternalID(ctx context.Context, incoming models.Match) (created, finished bool, err error) {
	if incoming.ExternalID == nil || *incoming.ExternalID == "" {
		return false, false, apperrors.Validation("external id is required")
	}

	db := s.db.WithContext(ctx)

	var existing models.Match
	err = db.Unscoped().Where("external_id = ?", *incoming.ExternalID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(&incoming).Error; err != nil {
			return false, false, fmt.Errorf("create match %s: %w", *incoming.ExternalID, err)
		}
		created = true
		finished = incoming.IsFinished()
	case err != nil:
		return false, false, fmt.Errorf("load match %s: %w", *incoming.ExternalID, err)
	default:
		if existing.DeletedAt.Valid {
			return false, false, nil
		}
		wasFinished := existing.IsFinished()
		if err := db.Model(&existing).Updates(map[string]interface{}{
			"competition_id":  incoming.CompetitionID,
			"scheduled_at":    incoming.ScheduledAt,
			"round":           incoming.Round,
			"venue":           incoming.Venue,
			"home_team":       incoming.HomeTeam,
			"home_team_image": incoming.HomeTeamImage,
			"away_team":       incoming.AwayTeam,
			"away_team_image": incoming.AwayTeamImage,
			"home_goals":      incoming.HomeGoals,
			"away_goals":      incoming.AwayGoals,
			"status":          incoming.Status,
			"banner_url":      incoming.BannerURL,
			"video_url":       incoming.VideoURL,
		}).Error; err != nil {
			return false, false, fmt.Errorf("update match %s: %w", *incoming.ExternalID, err)
		}
		incoming.ID = existing.ID
		finished = !wasFinished && incoming.IsFinished()

		// A finished match whose scoring failed earlier is picked up again.
		if wasFinished && incoming.IsFinished() && existing.ScoredAt == nil {
			s.notifyFinished(ctx, incoming.ID)
		}
	}

	if finished {
		s.notifyFinished(ctx, incoming.ID)
	}
	return created, finished, nil
}

func (s *MatchService) DeleteMatch(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Match{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("match not found")
	}
	return nil
}

// notifyFinished runs the listener. Failures are logged; the match is
// already stored and scoring can be retried.
func (s *MatchService) notifyFinished(ctx context.Context, matchID uint) {
	if s.listener == nil {
		return
	}
	log.Printf("[matches] match %d finished, scoring predictions", matchID)
	if err := s.listener.OnMatchFinished(ctx, matchID); err != nil {
		log.Printf("[matches] scoring match %d failed: %v", matchID, err)
	}
}
