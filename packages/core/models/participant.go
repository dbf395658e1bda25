package models

import "time"

// Participant is a user's enrollment in one tournament. Points and the hit
// counters are written only by the scoring service.
type Participant struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	UserID             uint      `gorm:"not null;uniqueIndex:idx_participants_user_tournament" json:"user_id"`
	TournamentID       uint      `gorm:"not null;uniqueIndex:idx_participants_user_tournament;index" json:"tournament_id"`
	Points             int       `gorm:"not null;default:0" json:"points"`
	ExactPredictions   int       `gorm:"not null;default:0" json:"exact_predictions"`
	PartialPredictions int       `gorm:"not null;default:0" json:"partial_predictions"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relationships
	Tournament *Tournament `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
}

func (Participant) TableName() string {
	return "participants"
}

type EnrollRequest struct {
	TournamentID uint    `json:"tournament_id" binding:"required"`
	Password     *string `json:"password,omitempty"`
}
