package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authModels "prode-api/packages/auth/models"
	authUtils "prode-api/packages/auth/utils"
	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/models"

	"gorm.io/gorm"
)

type TournamentService struct {
	db *gorm.DB
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{
		db: db,
	}
}

func (s *TournamentService) CreateTournament(ctx context.Context, creatorID uint, req models.CreateTournamentRequest) (*models.Tournament, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 6 || len(name) > 20 {
		return nil, apperrors.Validation("name must be between 6 and 20 characters")
	}

	tournament := &models.Tournament{
		Name:          name,
		CompetitionID: req.CompetitionID,
		CreatorID:     creatorID,
		Status:        models.TournamentPending,
		Rules:         models.RulesDefault,
	}
	if req.Rules != nil {
		if !req.Rules.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("unknown rules %q", *req.Rules))
		}
		tournament.Rules = *req.Rules
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("unknown status %q", *req.Status))
		}
		tournament.Status = *req.Status
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Tournament{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Conflict("tournament already exists")
	}

	if err := db.First(&models.Competition{}, req.CompetitionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("competition not found")
		}
		return nil, err
	}
	if err := db.First(&authModels.User{}, creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("creator not found")
		}
		return nil, err
	}

	if req.Password != nil && *req.Password != "" {
		hashed, err := authUtils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash tournament password: %w", err)
		}
		tournament.Password = &hashed
	}

	if err := db.Create(tournament).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("tournament already exists")
		}
		return nil, err
	}

	return tournament, nil
}

func (s *TournamentService) GetTournamentByID(ctx context.Context, id uint) (*models.Tournament, error) {
	var tournament models.Tournament

	result := s.db.WithContext(ctx).Preload("Competition").First(&tournament, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tournament not found")
		}
		return nil, result.Error
	}

	return &tournament, nil
}

// GetAllTournaments lists tournaments, optionally filtered by competition
// and status.
func (s *TournamentService) GetAllTournaments(ctx context.Context, competitionID *uint, status *string) ([]models.Tournament, error) {
	tournaments := []models.Tournament{}

	query := s.db.WithContext(ctx).Model(&models.Tournament{})

	if competitionID != nil {
		query = query.Where("competition_id = ?", *competitionID)
	}

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Order("created_at DESC").Find(&tournaments).Error; err != nil {
		return nil, err
	}

	return tournaments, nil
}

// UpdateTournament changes name, status, rules or password. Only the
// creator may update. A rules change applies to matches scored afterwards.
func (s *TournamentService) UpdateTournament(ctx context.Context, id, callerID uint, req models.UpdateTournamentRequest) (*models.Tournament, error) {
	if req.Name == nil && req.Status == nil && req.Rules == nil && req.Password == nil {
		return nil, apperrors.Validation("at least one field is required")
	}

	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.CreatorID != callerID {
		return nil, apperrors.Forbidden("user is not the creator of the tournament")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 6 || len(name) > 20 {
			return nil, apperrors.Validation("name must be between 6 and 20 characters")
		}
		updates["name"] = name
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("unknown status %q", *req.Status))
		}
		updates["status"] = *req.Status
	}
	if req.Rules != nil {
		if !req.Rules.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("unknown rules %q", *req.Rules))
		}
		updates["rules"] = *req.Rules
	}
	if req.Password != nil {
		if *req.Password == "" {
			updates["password"] = nil
		} else {
			hashed, err := authUtils.HashPassword(*req.Password)
			if err != nil {
				return nil, fmt.Errorf("hash tournament password: %w", err)
			}
			updates["password"] = hashed
		}
	}

	if err := s.db.WithContext(ctx).Model(&models.Tournament{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("tournament already exists")
		}
		return nil, err
	}

	return s.GetTournamentByID(ctx, id)
}

// DeleteTournament soft-deletes a tournament. Only the creator may delete.
func (s *TournamentService) DeleteTournament(ctx context.Context, id, callerID uint) error {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return err
	}
	if tournament.CreatorID != callerID {
		return apperrors.Forbidden("user is not the creator of the tournament")
	}
	return s.db.WithContext(ctx).Delete(&models.Tournament{}, id).Error
}

// Leaderboard ranks participants by points, then exact hits, then name.
// Participants tied on points and exact hits share a position.
func (s *TournamentService) Leaderboard(ctx context.Context, tournamentID uint) (*models.LeaderboardResponse, error) {
	tournament, err := s.GetTournamentByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var participants []models.Participant
	if err := s.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("points DESC").
		Order("exact_predictions DESC").
		Order("name ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(participants))
	for i, p := range participants {
		position := i + 1
		if i > 0 {
			prev := entries[i-1]
			if prev.Points == p.Points && prev.ExactPredictions == p.ExactPredictions {
				position = prev.Position
			}
		}
		entries = append(entries, models.LeaderboardEntry{
			Position:           position,
			ParticipantID:      p.ID,
			UserID:             p.UserID,
			Name:               p.Name,
			Points:             p.Points,
			ExactPredictions:   p.ExactPredictions,
			PartialPredictions: p.PartialPredictions,
		})
	}

	return &models.LeaderboardResponse{
		TournamentID: tournament.ID,
		Rules:        tournament.Rules,
		Entries:      entries,
	}, nil
}
