package spot

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "spot not found")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "spot name is required")
	ErrInvalidLimits = apperror.New(http.StatusBadRequest, "max_campers and max_tents cannot be negative")
	ErrInvalidPrice  = apperror.New(http.StatusBadRequest, "spot prices cannot be negative")
)

// Spot is a bookable pitch inside a campsite.
type Spot struct {
	ID            string
	CampSiteID    string
	Name          string
	MaxCampers    int
	MaxTents      int
	Environment   string
	PricePerNight decimal.Decimal
	PricePerSite  decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
