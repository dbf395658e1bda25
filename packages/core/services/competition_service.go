package services

import (
	"context"
	"errors"
	"strings"

	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/models"

	"gorm.io/gorm"
)

type CompetitionService struct {
	db *gorm.DB
}

func NewCompetitionService(db *gorm.DB) *CompetitionService {
	return &CompetitionService{
		db: db,
	}
}

func (s *CompetitionService) CreateCompetition(ctx context.Context, req models.CreateCompetitionRequest) (*models.Competition, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 5 || len(name) > 25 {
		return nil, apperrors.Validation("name must be between 5 and 25 characters")
	}

	competition := &models.Competition{
		ExternalID: req.ExternalID,
		Name:       name,
		Format:     req.Format,
		Image:      req.Image,
		Image2:     req.Image2,
	}
	if competition.Format == "" {
		competition.Format = "cup"
	}

	if err := s.db.WithContext(ctx).Create(competition).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("competition already exists")
		}
		return nil, err
	}
	return competition, nil
}

func (s *CompetitionService) GetCompetition(ctx context.Context, id uint) (*models.Competition, error) {
	var competition models.Competition
	if err := s.db.WithContext(ctx).First(&competition, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("competition not found")
		}
		return nil, err
	}
	return &competition, nil
}

func (s *CompetitionService) GetAllCompetitions(ctx context.Context) ([]models.Competition, error) {
	competitions := []models.Competition{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&competitions).Error; err != nil {
		return nil, err
	}
	return competitions, nil
}

func (s *CompetitionService) UpdateCompetition(ctx context.Context, id uint, req models.UpdateCompetitionRequest) (*models.Competition, error) {
	if _, err := s.GetCompetition(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 5 || len(name) > 25 {
			return nil, apperrors.Validation("name must be between 5 and 25 characters")
		}
		updates["name"] = name
	}
	if req.ExternalID != nil {
		updates["external_id"] = *req.ExternalID
	}
	if req.Format != nil {
		updates["format"] = *req.Format
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Image2 != nil {
		updates["image2"] = *req.Image2
	}
	if len(updates) == 0 {
		return nil, apperrors.Validation("at least one field is required")
	}

	if err := s.db.WithContext(ctx).Model(&models.Competition{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("competition already exists")
		}
		return nil, err
	}
	return s.GetCompetition(ctx, id)
}

func (s *CompetitionService) DeleteCompetition(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Competition{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("competition not found")
	}
	return nil
}
