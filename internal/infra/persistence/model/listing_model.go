package model

import (
	"time"

	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// ListingModel mirrors the 'listings' table. Structured sub-documents
// (units, brochures, payment plan) live in JSONB columns.
type ListingModel struct {
	ID            uuid.UUID                 `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Slug          string                    `gorm:"type:varchar(255);unique;not null"`
	Title         string                    `gorm:"type:varchar(255);not null"`
	Headline      string                    `gorm:"type:varchar(255)"`
	Description   string                    `gorm:"type:text"`
	Developer     string                    `gorm:"type:varchar(100)"`
	Community     string                    `gorm:"type:varchar(100)"`
	Location      string                    `gorm:"type:varchar(255)"`
	Emirate       string                    `gorm:"type:varchar(100);index"`
	Country       string                    `gorm:"type:varchar(100);index"`
	Category      string                    `gorm:"type:varchar(100);index"`
	Types         []string                  `gorm:"type:jsonb;serializer:json"`
	StartingPrice float64                   `gorm:"index"`
	Currency      string                    `gorm:"type:varchar(8)"`
	Handover      string                    `gorm:"type:varchar(100)"`
	Featured      bool                      `gorm:"not null;default:false"`
	IsNew         bool                      `gorm:"not null;default:false"`
	Status        string                    `gorm:"type:varchar(16);not null;default:active"`
	HeroImage     string                    `gorm:"type:text"`
	Gallery       []string                  `gorm:"type:jsonb;serializer:json"`
	Brochures     []entity.Brochure         `gorm:"type:jsonb;serializer:json"`
	Amenities     []string                  `gorm:"type:jsonb;serializer:json"`
	NearbyPlaces  []entity.NearbyPlace      `gorm:"type:jsonb;serializer:json"`
	Units         []entity.Unit             `gorm:"type:jsonb;serializer:json"`
	PaymentPlan   []entity.PaymentMilestone `gorm:"type:jsonb;serializer:json"`
	AgentIDs      []uuid.UUID               `gorm:"type:jsonb;serializer:json"`
	CreatedBy     uuid.UUID                 `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ListingModel) TableName() string {
	return "listings"
}
