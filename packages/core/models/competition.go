package models

import (
	"time"

	"gorm.io/gorm"
)

type Competition struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID *string        `gorm:"size:64;uniqueIndex" json:"external_id"` // league id in the sports feed
	Name       string         `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Format     string         `gorm:"size:50;default:cup" json:"format"`
	Image      string         `gorm:"size:512" json:"image"`
	Image2     string         `gorm:"size:512" json:"image2"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Competition) TableName() string {
	return "competitions"
}

type CreateCompetitionRequest struct {
	ExternalID *string `json:"external_id,omitempty"`
	Name       string  `json:"name" binding:"required,min=5,max=25"`
	Format     string  `json:"format,omitempty"`
	Image      string  `json:"image,omitempty"`
	Image2     string  `json:"image2,omitempty"`
}

type UpdateCompetitionRequest struct {
	ExternalID *string `json:"external_id,omitempty"`
	Name       *string `json:"name,omitempty" binding:"omitempty,min=5,max=25"`
	Format     *string `json:"format,omitempty"`
	Image      *string `json:"image,omitempty"`
	Image2     *string `json:"image2,omitempty"`
}
