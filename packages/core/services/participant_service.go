package services

import (
	"context"
	"errors"
	"fmt"

	authModels "prode-api/packages/auth/models"
	authUtils "prode-api/packages/auth/utils"
	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/models"

	"gorm.io/gorm"
)

type ParticipantService struct {
	db *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{
		db: db,
	}
}

// Enroll registers a user in a tournament. Password-protected tournaments
// require the matching password.
func (s *ParticipantService) Enroll(ctx context.Context, userID uint, req models.EnrollRequest) (*models.Participant, error) {
	db := s.db.WithContext(ctx)

	var user authModels.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}

	var tournament models.Tournament
	if err := db.First(&tournament, req.TournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tournament not found")
		}
		return nil, err
	}

	if tournament.HasPassword() {
		if req.Password == nil || !authUtils.CheckPassword(*req.Password, *tournament.Password) {
			return nil, apperrors.Forbidden("invalid tournament password")
		}
	}

	var count int64
	if err := db.Model(&models.Participant{}).
		Where("user_id = ? AND tournament_id = ?", user.ID, tournament.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Conflict("user already enrolled in this tournament")
	}

	participant := models.Participant{
		Name:         user.Username,
		UserID:       user.ID,
		TournamentID: tournament.ID,
	}
	if err := db.Create(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("user already enrolled in this tournament")
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}

	return &participant, nil
}

func (s *ParticipantService) GetParticipant(ctx context.Context, id uint) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.WithContext(ctx).Preload("Tournament").First(&participant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("participant not found")
		}
		return nil, err
	}
	return &participant, nil
}

func (s *ParticipantService) GetAllParticipants(ctx context.Context, tournamentID *uint) ([]models.Participant, error) {
	participants := []models.Participant{}
	query := s.db.WithContext(ctx).Model(&models.Participant{})
	if tournamentID != nil {
		query = query.Where("tournament_id = ?", *tournamentID)
	}
	if err := query.Order("id ASC").Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// GetByUser returns the user's enrollments with their tournaments.
func (s *ParticipantService) GetByUser(ctx context.Context, userID uint) ([]models.Participant, error) {
	participants := []models.Participant{}
	if err := s.db.WithContext(ctx).
		Preload("Tournament").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// Leave removes the user's enrollment and its predictions.
func (s *ParticipantService) Leave(ctx context.Context, participantID, tournamentID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participant models.Participant
		err := tx.Where("id = ? AND tournament_id = ? AND user_id = ?", participantID, tournamentID, userID).
			First(&participant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("participant not found")
			}
			return err
		}

		if err := tx.Where("participant_id = ?", participant.ID).Delete(&models.Prediction{}).Error; err != nil {
			return fmt.Errorf("delete predictions of participant %d: %w", participant.ID, err)
		}
		return tx.Delete(&participant).Error
	})
}

// OwnedBy reports whether the participant belongs to the user.
func (s *ParticipantService) OwnedBy(ctx context.Context, participantID, userID uint) (bool, error) {
	participant, err := s.GetParticipant(ctx, participantID)
	if err != nil {
		return false, err
	}
	return participant.UserID == userID, nil
}
