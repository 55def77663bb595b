package entity

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus is the publication state of a listing.
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingInactive ListingStatus = "inactive"
)

// IsValid checks if the ListingStatus is a valid value.
func (s ListingStatus) IsValid() bool {
	return s == ListingActive || s == ListingInactive
}

// Brochure is a downloadable document attached to a listing.
type Brochure struct {
	Title      string    `json:"title"`
	Language   string    `json:"language"`
	FileURL    string    `json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Unit describes one unit type available within a development.
type Unit struct {
	UnitID      string  `json:"unit_id"`
	Title       string  `json:"title"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Sqm         float64 `json:"sqm"`
	Sqft        float64 `json:"sqft"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// NearbyPlace is a named point of interest with a human-readable distance.
type NearbyPlace struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// PaymentMilestone is one step of an off-plan payment schedule.
type PaymentMilestone struct {
	Percentage float64 `json:"percentage"`
	Title      string  `json:"title"`
	Subtitle   string  `json:"subtitle"`
}

// Listing is a property record. HeroImage, Gallery and Brochures carry media
// references; references hosted on the managed asset host are deleted when
// removed from the record, externally supplied URLs are left untouched.
type Listing struct {
	ID            uuid.UUID          `json:"id"`
	Slug          string             `json:"slug"`
	Title         string             `json:"title"`
	Headline      string             `json:"headline"`
	Description   string             `json:"description"`
	Developer     string             `json:"developer"`
	Community     string             `json:"community"`
	Location      string             `json:"location"`
	Emirate       string             `json:"emirate"`
	Country       string             `json:"country"`
	Category      string             `json:"property_category"`
	Types         []string           `json:"property_types"`
	StartingPrice float64            `json:"starting_price"`
	Currency      string             `json:"currency"`
	Handover      string             `json:"handover"`
	Featured      bool               `json:"featured"`
	IsNew         bool               `json:"is_new"`
	Status        ListingStatus      `json:"status"`
	HeroImage     string             `json:"hero_image"`
	Gallery       []string           `json:"gallery"`
	Brochures     []Brochure         `json:"brochure_pdfs"`
	Amenities     []string           `json:"amenities"`
	NearbyPlaces  []NearbyPlace      `json:"nearby_locations"`
	Units         []Unit             `json:"units"`
	PaymentPlan   []PaymentMilestone `json:"payment_plan"`
	AgentIDs      []uuid.UUID        `json:"agents"`
	CreatedBy     uuid.UUID          `json:"created_by"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
