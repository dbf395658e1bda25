package models

import (
	"time"

	"gorm.io/gorm"
)

// Rules selects how non-exact predictions are scored in a tournament.
type Rules string

const (
	RulesDefault    Rules = "default"
	RulesPartial    Rules = "partial"
	RulesDifference Rules = "difference"
)

func (r Rules) Valid() bool {
	switch r {
	case RulesDefault, RulesPartial, RulesDifference:
		return true
	}
	return false
}

type TournamentStatus string

const (
	TournamentPending   TournamentStatus = "pending"
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentPending, TournamentActive, TournamentCompleted:
		return true
	}
	return false
}

type Tournament struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string           `gorm:"size:255;uniqueIndex;not null" json:"name"`
	CompetitionID uint             `gorm:"not null;index" json:"competition_id"`
	CreatorID     uint             `gorm:"not null;index" json:"creator_id"`
	Password      *string          `gorm:"size:255" json:"-"` // bcrypt hash, nil for open tournaments
	Status        TournamentStatus `gorm:"size:20;not null;default:pending" json:"status"`
	Rules         Rules            `gorm:"size:20;not null;default:default" json:"rules"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Competition *Competition `gorm:"foreignKey:CompetitionID;references:ID" json:"competition,omitempty"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

// HasPassword reports whether enrolling requires a password.
func (t *Tournament) HasPassword() bool {
	return t.Password != nil && *t.Password != ""
}

// DTOs

type CreateTournamentRequest struct {
	Name          string            `json:"name" binding:"required,min=6,max=20"`
	CompetitionID uint              `json:"competition_id" binding:"required"`
	Password      *string           `json:"password,omitempty" binding:"omitempty,min=4,max=16"`
	Status        *TournamentStatus `json:"status,omitempty" binding:"omitempty,oneof=pending active completed"`
	Rules         *Rules            `json:"rules,omitempty" binding:"omitempty,oneof=default partial difference"`
}

type UpdateTournamentRequest struct {
	Name     *string           `json:"name,omitempty" binding:"omitempty,min=6,max=20"`
	Status   *TournamentStatus `json:"status,omitempty" binding:"omitempty,oneof=pending active completed"`
	Rules    *Rules            `json:"rules,omitempty" binding:"omitempty,oneof=default partial difference"`
	Password *string           `json:"password,omitempty" binding:"omitempty,min=4,max=16"`
}

// Responses

type LeaderboardEntry struct {
	Position           int    `json:"position"`
	ParticipantID      uint   `json:"participant_id"`
	UserID             uint   `json:"user_id"`
	Name               string `json:"name"`
	Points             int    `json:"points"`
	ExactPredictions   int    `json:"exact_predictions"`
	PartialPredictions int    `json:"partial_predictions"`
}

type LeaderboardResponse struct {
	TournamentID uint               `json:"tournament_id"`
	Rules        Rules              `json:"rules"`
	Entries      []LeaderboardEntry `json:"entries"`
}
