package models

import (
	"time"

	"gorm.io/gorm"
)

type MatchStatus string

const (
	MatchNotStarted MatchStatus = "not_started"
	MatchPending    MatchStatus = "pending" // in progress
	MatchFinished   MatchStatus = "finished"
	MatchCancelled  MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchNotStarted, MatchPending, MatchFinished, MatchCancelled:
		return true
	}
	return false
}

type Match struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CompetitionID uint           `gorm:"not null;index" json:"competition_id"`
	ExternalID    *string        `gorm:"size:64;uniqueIndex" json:"external_id"`
	ScheduledAt   time.Time      `gorm:"not null;index" json:"scheduled_at"`
	Round         *int           `json:"round"`
	Venue         string         `gorm:"size:255" json:"venue"`
	HomeTeam      string         `gorm:"size:255;not null" json:"home_team"`
	HomeTeamImage string         `gorm:"size:512" json:"home_team_image"`
	AwayTeam      string         `gorm:"size:255;not null" json:"away_team"`
	AwayTeamImage string         `gorm:"size:512" json:"away_team_image"`
	HomeGoals     int            `gorm:"not null;default:0" json:"home_goals"`
	AwayGoals     int            `gorm:"not null;default:0" json:"away_goals"`
	Status        MatchStatus    `gorm:"size:20;not null;default:not_started;index" json:"status"`
	BannerURL     string         `gorm:"size:512" json:"banner_url"`
	VideoURL      string         `gorm:"size:512" json:"video_url"`
	ScoredAt      *time.Time     `json:"scored_at"` // set once every prediction has been scored
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Competition *Competition `gorm:"foreignKey:CompetitionID;references:ID" json:"competition,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

func (m *Match) IsFinished() bool {
	return m.Status == MatchFinished
}

type CreateMatchRequest struct {
	CompetitionID uint         `json:"competition_id" binding:"required"`
	ExternalID    *string      `json:"external_id,omitempty"`
	ScheduledAt   time.Time    `json:"scheduled_at" binding:"required"`
	Round         *int         `json:"round,omitempty" binding:"omitempty,min=1"`
	Venue         string       `json:"venue,omitempty"`
	HomeTeam      string       `json:"home_team" binding:"required"`
	AwayTeam      string       `json:"away_team" binding:"required"`
	HomeTeamImage string       `json:"home_team_image,omitempty"`
	AwayTeamImage string       `json:"away_team_image,omitempty"`
	HomeGoals     int          `json:"home_goals" binding:"min=0"`
	AwayGoals     int          `json:"away_goals" binding:"min=0"`
	Status        *MatchStatus `json:"status,omitempty" binding:"omitempty,oneof=not_started pending finished cancelled"`
}

type UpdateMatchRequest struct {
	ScheduledAt *time.Time   `json:"scheduled_at,omitempty"`
	HomeTeam    *string      `json:"home_team,omitempty"`
	AwayTeam    *string      `json:"away_team,omitempty"`
	HomeGoals   *int         `json:"home_goals,omitempty" binding:"omitempty,min=0"`
	AwayGoals   *int         `json:"away_goals,omitempty" binding:"omitempty,min=0"`
	Status      *MatchStatus `json:"status,omitempty" binding:"omitempty,oneof=not_started pending finished cancelled"`
}

type ScoreMatchResponse struct {
	MatchID       uint               `json:"match_id"`
	AlreadyScored bool               `json:"already_scored"`
	Processed     int                `json:"processed"`
	Skipped       int                `json:"skipped"`
	PointsAwarded int                `json:"points_awarded"`
	Predictions   []ScoredPrediction `json:"predictions"`
}

type ScoredPrediction struct {
	PredictionID  uint             `json:"prediction_id"`
	ParticipantID uint             `json:"participant_id"`
	Rules         Rules            `json:"rules"`
	Points        int              `json:"points"`
	Status        PredictionStatus `json:"status"`
}
