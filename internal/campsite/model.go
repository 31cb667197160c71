package campsite

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "campsite not found")
	ErrInvalidFilter = apperror.New(http.StatusBadRequest, "invalid filter")
	ErrInvalidType   = apperror.New(http.StatusBadRequest, "invalid campsite type")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "campsite needs a Thai or English name")
	ErrInvalidPrice  = apperror.New(http.StatusBadRequest, "price_low must be between 0 and price_high")
	ErrInvalidCap    = apperror.New(http.StatusBadRequest, "capacity caps cannot be negative")
)

// Campsite categories.
const (
	TypeCampground  = "CAMPGROUND"
	TypeGlamping    = "GLAMPING"
	TypeCaravan     = "CARAVAN"
	TypeCabin       = "CABIN"
	TypeBackcountry = "BACKCOUNTRY"

	// TypeAll is the filter value meaning "no category constraint".
	TypeAll = "ALL"
)

// ValidTypes lists the categories a campsite can be created with.
var ValidTypes = []string{TypeCampground, TypeGlamping, TypeCaravan, TypeCabin, TypeBackcountry}

// CancelledBookingStatus is the booking status that never occupies a spot.
// It mirrors booking.StatusCancelled; booking imports this package, not the reverse.
const CancelledBookingStatus = "CANCELLED"

// CampSite is a listable camping property: the unit of search, filtering and booking.
type CampSite struct {
	ID           string
	OperatorID   string
	OperatorName string
	NameTH       string
	NameEN       string
	Description  string
	Type         string
	IsActive     bool
	IsPublished  bool
	PriceLow     decimal.Decimal
	PriceHigh    decimal.Decimal

	AccessTypes        CodeSet
	Facilities         CodeSet
	ExternalFacilities CodeSet
	Equipment          CodeSet
	Activities         CodeSet
	Terrain            CodeSet

	// Manual caps; nil means unconstrained. Ignored when UseSpotView is set.
	MaxGuestsPerDay *int
	MaxTentsPerDay  *int
	UseSpotView     bool

	Location  Location
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location is the address sub-entity of a campsite.
type Location struct {
	Province  string
	District  string
	Address   string
	Latitude  *float64
	Longitude *float64
}

// Capacity is the per-day limit of a campsite. A nil cap means unlimited for that dimension.
type Capacity struct {
	TotalSpots      int
	MaxGuestsPerDay *int
	MaxTentsPerDay  *int
}

// ManualCapacity returns the capacity authored directly on the campsite.
func (c *CampSite) ManualCapacity() Capacity {
	return Capacity{
		MaxGuestsPerDay: c.MaxGuestsPerDay,
		MaxTentsPerDay:  c.MaxTentsPerDay,
	}
}

// IsValidType reports whether t is a known campsite category.
func IsValidType(t string) bool {
	return slices.Contains(ValidTypes, t)
}

// CodeSet is the decoded form of a comma-joined code column.
// Codes are trimmed, non-empty and unique; order of first appearance is kept.
type CodeSet []string

// ParseCodes decodes a comma separated list into upper-case codes, dropping empty
// tokens and duplicates.
func ParseCodes(raw string) CodeSet {
	var set CodeSet
	for _, token := range strings.Split(raw, ",") {
		token = strings.ToUpper(strings.TrimSpace(token))
		if token == "" || slices.Contains(set, token) {
			continue
		}
		set = append(set, token)
	}
	return set
}

// NewCodeSet normalises a slice of codes the same way ParseCodes does.
func NewCodeSet(codes []string) CodeSet {
	return ParseCodes(strings.Join(codes, ","))
}

// Contains reports exact membership; "PARK" is not contained in {"PARKING"}.
func (s CodeSet) Contains(code string) bool {
	return slices.Contains(s, code)
}

// String encodes the set for storage.
func (s CodeSet) String() string {
	return strings.Join(s, ",")
}

// Filter defines paging for listing campsites; matching is described by a Predicate.
type Filter struct {
	Page     int
	PageSize int
}
