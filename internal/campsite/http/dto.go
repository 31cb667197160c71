package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/request"
)

// ListCampSitesRequest binds the search query of GET /campsites and GET /campsites/count.
// Values are validated by the filter builder so malformed input reports INVALID_FILTER.
type ListCampSitesRequest struct {
	request.ListParams
	Type       string `form:"type"`
	Keyword    string `form:"keyword"`
	Province   string `form:"province"`
	District   string `form:"district"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	Min        string `form:"min"`
	Max        string `form:"max"`
	Access     string `form:"access"`
	Facilities string `form:"facilities"`
	External   string `form:"external"`
	Equipment  string `form:"equipment"`
	Activities string `form:"activities"`
	Terrain    string `form:"terrain"`
}

func (r ListCampSitesRequest) FilterParams() campsite.FilterParams {
	return campsite.FilterParams{
		Type:       r.Type,
		Keyword:    r.Keyword,
		Province:   r.Province,
		District:   r.District,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Min:        r.Min,
		Max:        r.Max,
		Access:     r.Access,
		Facilities: r.Facilities,
		External:   r.External,
		Equipment:  r.Equipment,
		Activities: r.Activities,
		Terrain:    r.Terrain,
	}
}

type LocationBody struct {
	Province  string   `json:"province"`
	District  string   `json:"district"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
}

func (l LocationBody) toModel() campsite.Location {
	return campsite.Location{
		Province:  l.Province,
		District:  l.District,
		Address:   l.Address,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

// CreateCampSiteRequest is the payload for POST /campsites.
type CreateCampSiteRequest struct {
	NameTH             string          `json:"name_th"`
	NameEN             string          `json:"name_en"`
	Description        string          `json:"description"`
	Type               string          `json:"campsite_type" binding:"required"`
	PriceLow           decimal.Decimal `json:"price_low"`
	PriceHigh          decimal.Decimal `json:"price_high"`
	AccessTypes        []string        `json:"access_types" binding:"omitempty,codelist"`
	Facilities         []string        `json:"facilities" binding:"omitempty,codelist"`
	ExternalFacilities []string        `json:"external_facilities" binding:"omitempty,codelist"`
	Equipment          []string        `json:"equipment" binding:"omitempty,codelist"`
	Activities         []string        `json:"activities" binding:"omitempty,codelist"`
	Terrain            []string        `json:"terrain" binding:"omitempty,codelist"`
	MaxGuestsPerDay    *int            `json:"max_guests_per_day" binding:"omitempty,min=0"`
	MaxTentsPerDay     *int            `json:"max_tents_per_day" binding:"omitempty,min=0"`
	UseSpotView        bool            `json:"use_spot_view"`
	IsPublished        bool            `json:"is_published"`
	Location           LocationBody    `json:"location"`
}

// UpdateCampSiteRequest is the payload for PATCH /campsites/:id.
type UpdateCampSiteRequest struct {
	NameTH             *string          `json:"name_th"`
	NameEN             *string          `json:"name_en"`
	Description        *string          `json:"description"`
	Type               *string          `json:"campsite_type"`
	PriceLow           *decimal.Decimal `json:"price_low"`
	PriceHigh          *decimal.Decimal `json:"price_high"`
	AccessTypes        *[]string        `json:"access_types" binding:"omitempty,codelist"`
	Facilities         *[]string        `json:"facilities" binding:"omitempty,codelist"`
	ExternalFacilities *[]string        `json:"external_facilities" binding:"omitempty,codelist"`
	Equipment          *[]string        `json:"equipment" binding:"omitempty,codelist"`
	Activities         *[]string        `json:"activities" binding:"omitempty,codelist"`
	Terrain            *[]string        `json:"terrain" binding:"omitempty,codelist"`
	MaxGuestsPerDay    *int             `json:"max_guests_per_day" binding:"omitempty,min=0"`
	MaxTentsPerDay     *int             `json:"max_tents_per_day" binding:"omitempty,min=0"`
	ClearManualCaps    bool             `json:"clear_manual_caps"`
	UseSpotView        *bool            `json:"use_spot_view"`
	IsPublished        *bool            `json:"is_published"`
	Location           *LocationBody    `json:"location"`
}

type LocationResponse struct {
	Province  string   `json:"province"`
	District  string   `json:"district"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type CampSiteResponse struct {
	ID                 string           `json:"id"`
	OperatorID         string           `json:"operator_id"`
	OperatorName       string           `json:"operator_name"`
	NameTH             string           `json:"name_th"`
	NameEN             string           `json:"name_en"`
	Description        string           `json:"description"`
	Type               string           `json:"campsite_type"`
	IsPublished        bool             `json:"is_published"`
	PriceLow           decimal.Decimal  `json:"price_low"`
	PriceHigh          decimal.Decimal  `json:"price_high"`
	AccessTypes        []string         `json:"access_types"`
	Facilities         []string         `json:"facilities"`
	ExternalFacilities []string         `json:"external_facilities"`
	Equipment          []string         `json:"equipment"`
	Activities         []string         `json:"activities"`
	Terrain            []string         `json:"terrain"`
	MaxGuestsPerDay    *int             `json:"max_guests_per_day"`
	MaxTentsPerDay     *int             `json:"max_tents_per_day"`
	UseSpotView        bool             `json:"use_spot_view"`
	Location           LocationResponse `json:"location"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func codes(s campsite.CodeSet) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func NewCampSiteResponse(cs *campsite.CampSite) CampSiteResponse {
	return CampSiteResponse{
		ID:                 cs.ID,
		OperatorID:         cs.OperatorID,
		OperatorName:       cs.OperatorName,
		NameTH:             cs.NameTH,
		NameEN:             cs.NameEN,
		Description:        cs.Description,
		Type:               cs.Type,
		IsPublished:        cs.IsPublished,
		PriceLow:           cs.PriceLow,
		PriceHigh:          cs.PriceHigh,
		AccessTypes:        codes(cs.AccessTypes),
		Facilities:         codes(cs.Facilities),
		ExternalFacilities: codes(cs.ExternalFacilities),
		Equipment:          codes(cs.Equipment),
		Activities:         codes(cs.Activities),
		Terrain:            codes(cs.Terrain),
		MaxGuestsPerDay:    cs.MaxGuestsPerDay,
		MaxTentsPerDay:     cs.MaxTentsPerDay,
		UseSpotView:        cs.UseSpotView,
		Location: LocationResponse{
			Province:  cs.Location.Province,
			District:  cs.Location.District,
			Address:   cs.Location.Address,
			Latitude:  cs.Location.Latitude,
			Longitude: cs.Location.Longitude,
		},
		CreatedAt: cs.CreatedAt,
		UpdatedAt: cs.UpdatedAt,
	}
}
