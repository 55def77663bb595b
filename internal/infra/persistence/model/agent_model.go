package model

import (
	"time"

	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// AgentProfileModel mirrors the 'agent_profiles' table. List-shaped fields
// live in JSONB columns through the GORM JSON serializer.
type AgentProfileModel struct {
	ID          uuid.UUID              `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AccountID   uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex"`
	Slug        string                 `gorm:"type:varchar(255);unique;not null"`
	Name        string                 `gorm:"type:varchar(100);not null"`
	Email       string                 `gorm:"type:varchar(255);not null"`
	Phone       string                 `gorm:"type:varchar(32)"`
	AvatarURL   string                 `gorm:"type:text"`
	Title       string                 `gorm:"type:varchar(100)"`
	Location    string                 `gorm:"type:varchar(255)"`
	Bio         string                 `gorm:"type:text"`
	Experience  string                 `gorm:"type:varchar(100)"`
	Languages   []string               `gorm:"type:jsonb;serializer:json"`
	Communities []string               `gorm:"type:jsonb;serializer:json"`
	Specialties []string               `gorm:"type:jsonb;serializer:json"`
	Portfolio   []entity.PortfolioItem `gorm:"type:jsonb;serializer:json"`
	Status      string                 `gorm:"type:varchar(16);not null;default:active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AgentProfileModel) TableName() string {
	return "agent_profiles"
}
