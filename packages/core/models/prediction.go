package models

import "time"

type PredictionStatus string

const (
	PredictionPending   PredictionStatus = "pending"
	PredictionCorrect   PredictionStatus = "correct"
	PredictionIncorrect PredictionStatus = "incorrect"
)

// Prediction is one participant's forecast for one match. Goals are
// editable until the cutoff; status and points are set by scoring.
type Prediction struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID       uint             `gorm:"not null;uniqueIndex:idx_predictions_participant_match,priority:2;index" json:"match_id"`
	ParticipantID uint             `gorm:"not null;uniqueIndex:idx_predictions_participant_match,priority:1" json:"participant_id"`
	HomeGoals     int              `gorm:"not null" json:"home_goals"`
	AwayGoals     int              `gorm:"not null" json:"away_goals"`
	Status        PredictionStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	Points        int              `gorm:"not null;default:0" json:"points"`
	ScoredAt      *time.Time       `json:"scored_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	// Relationships
	Match       *Match       `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
	Participant *Participant `gorm:"foreignKey:ParticipantID;references:ID" json:"participant,omitempty"`
}

func (Prediction) TableName() string {
	return "predictions"
}

type CreatePredictionRequest struct {
	ParticipantID uint `json:"participant_id" binding:"required"`
	MatchID       uint `json:"match_id" binding:"required"`
	HomeGoals     *int `json:"home_goals" binding:"required,min=0"`
	AwayGoals     *int `json:"away_goals" binding:"required,min=0"`
}

type UpdatePredictionRequest struct {
	HomeGoals *int `json:"home_goals,omitempty" binding:"omitempty,min=0"`
	AwayGoals *int `json:"away_goals,omitempty" binding:"omitempty,min=0"`
}

type BatchPredictionItem struct {
	MatchID   uint `json:"match_id" binding:"required"`
	HomeGoals *int `json:"home_goals" binding:"required,min=0"`
	AwayGoals *int `json:"away_goals" binding:"required,min=0"`
}

type BatchPredictionRequest struct {
	ParticipantID uint                  `json:"participant_id" binding:"required"`
	Predictions   []BatchPredictionItem `json:"predictions" binding:"required,min=1,dive"`
}

type BatchPredictionResult struct {
	MatchID      uint   `json:"match_id"`
	PredictionID uint   `json:"prediction_id,omitempty"`
	Action       string `json:"action"` // created, updated, failed
	Kind         string `json:"kind,omitempty"`
	Error        string `json:"error,omitempty"`
}
