package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/spot"
)

// SpotURI binds /campsites/:id/spots/:spot_id.
type SpotURI struct {
	CampSiteID string `uri:"id" binding:"required,uuid"`
	SpotID     string `uri:"spot_id" binding:"required,uuid"`
}

// CreateSpotRequest is the payload for POST /campsites/:id/spots.
type CreateSpotRequest struct {
	Name          string          `json:"name" binding:"required"`
	MaxCampers    int             `json:"max_campers" binding:"min=0"`
	MaxTents      int             `json:"max_tents" binding:"min=0"`
	Environment   string          `json:"environment"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	PricePerSite  decimal.Decimal `json:"price_per_site"`
}

// UpdateSpotRequest is the payload for PATCH /campsites/:id/spots/:spot_id.
type UpdateSpotRequest struct {
	Name          *string          `json:"name"`
	MaxCampers    *int             `json:"max_campers" binding:"omitempty,min=0"`
	MaxTents      *int             `json:"max_tents" binding:"omitempty,min=0"`
	Environment   *string          `json:"environment"`
	PricePerNight *decimal.Decimal `json:"price_per_night"`
	PricePerSite  *decimal.Decimal `json:"price_per_site"`
}

type SpotResponse struct {
	ID            string          `json:"id"`
	CampSiteID    string          `json:"campsite_id"`
	Name          string          `json:"name"`
	MaxCampers    int             `json:"max_campers"`
	MaxTents      int             `json:"max_tents"`
	Environment   string          `json:"environment"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	PricePerSite  decimal.Decimal `json:"price_per_site"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewSpotResponse(s *spot.Spot) SpotResponse {
	return SpotResponse{
		ID:            s.ID,
		CampSiteID:    s.CampSiteID,
		Name:          s.Name,
		MaxCampers:    s.MaxCampers,
		MaxTents:      s.MaxTents,
		Environment:   s.Environment,
		PricePerNight: s.PricePerNight,
		PricePerSite:  s.PricePerSite,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// CapacityResponse reports per-day limits; null means unlimited.
type CapacityResponse struct {
	TotalSpots      int  `json:"total_spots"`
	MaxGuestsPerDay *int `json:"max_guests_per_day"`
	MaxTentsPerDay  *int `json:"max_tents_per_day"`
}

func newCapacityResponse(c campsite.Capacity) CapacityResponse {
	return CapacityResponse{
		TotalSpots:      c.TotalSpots,
		MaxGuestsPerDay: c.MaxGuestsPerDay,
		MaxTentsPerDay:  c.MaxTentsPerDay,
	}
}

type CapacityReportResponse struct {
	UseSpotView bool             `json:"use_spot_view"`
	Spots       CapacityResponse `json:"spots"`
	Effective   CapacityResponse `json:"effective"`
}
