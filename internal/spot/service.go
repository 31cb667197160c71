package spot

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team"
)

// CampSiteGetter loads the campsite a spot belongs to.
type CampSiteGetter interface {
	GetByID(ctx context.Context, id string) (*campsite.CampSite, error)
}

// CreateRequest holds the fields of a new spot.
type CreateRequest struct {
	Name          string
	MaxCampers    int
	MaxTents      int
	Environment   string
	PricePerNight decimal.Decimal
	PricePerSite  decimal.Decimal
}

// UpdateRequest defines the fields that can be updated. Nil fields are left untouched.
type UpdateRequest struct {
	Name          *string
	MaxCampers    *int
	MaxTents      *int
	Environment   *string
	PricePerNight *decimal.Decimal
	PricePerSite  *decimal.Decimal
}

// CapacityReport compares the spot-derived capacity with the one bookings are checked against.
type CapacityReport struct {
	UseSpotView bool
	Spots       campsite.Capacity
	Effective   campsite.Capacity
}

// Service defines business logic for spots.
type Service interface {
	List(ctx context.Context, campSiteID string) ([]*Spot, error)
	Get(ctx context.Context, campSiteID, id string) (*Spot, error)
	Create(ctx context.Context, campSiteID, actorID string, req CreateRequest) (*Spot, error)
	Update(ctx context.Context, campSiteID, id, actorID string, req UpdateRequest) (*Spot, error)
	Delete(ctx context.Context, campSiteID, id, actorID string) error
	// CalculateSpotCapacity sums the current spots of a campsite. It is never cached.
	CalculateSpotCapacity(ctx context.Context, campSiteID string) (campsite.Capacity, error)
	Capacity(ctx context.Context, campSiteID string) (*CapacityReport, error)
}

type service struct {
	repo      Repository
	campsites CampSiteGetter
	authz     team.Authorizer
}

// NewService creates a new spot service.
func NewService(repo Repository, campsites CampSiteGetter, authz team.Authorizer) Service {
	return &service{repo: repo, campsites: campsites, authz: authz}
}

func (s *service) List(ctx context.Context, campSiteID string) ([]*Spot, error) {
	if _, err := s.campsites.GetByID(ctx, campSiteID); err != nil {
		return nil, err
	}
	return s.repo.ListByCampSite(ctx, campSiteID)
}

func (s *service) Get(ctx context.Context, campSiteID, id string) (*Spot, error) {
	return s.repo.GetByID(ctx, campSiteID, id)
}

func (s *service) Create(ctx context.Context, campSiteID, actorID string, req CreateRequest) (*Spot, error) {
	if err := s.authz.Authorize(ctx, campSiteID, actorID, team.PermSpotManage); err != nil {
		return nil, err
	}

	sp := &Spot{
		CampSiteID:    campSiteID,
		Name:          strings.TrimSpace(req.Name),
		MaxCampers:    req.MaxCampers,
		MaxTents:      req.MaxTents,
		Environment:   strings.TrimSpace(req.Environment),
		PricePerNight: req.PricePerNight,
		PricePerSite:  req.PricePerSite,
	}
	if err := validate(sp); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) Update(ctx context.Context, campSiteID, id, actorID string, req UpdateRequest) (*Spot, error) {
	if err := s.authz.Authorize(ctx, campSiteID, actorID, team.PermSpotManage); err != nil {
		return nil, err
	}

	sp, err := s.repo.GetByID(ctx, campSiteID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sp.Name = strings.TrimSpace(*req.Name)
	}
	if req.MaxCampers != nil {
		sp.MaxCampers = *req.MaxCampers
	}
	if req.MaxTents != nil {
		sp.MaxTents = *req.MaxTents
	}
	if req.Environment != nil {
		sp.Environment = strings.TrimSpace(*req.Environment)
	}
	if req.PricePerNight != nil {
		sp.PricePerNight = *req.PricePerNight
	}
	if req.PricePerSite != nil {
		sp.PricePerSite = *req.PricePerSite
	}
	if err := validate(sp); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) Delete(ctx context.Context, campSiteID, id, actorID string) error {
	if err := s.authz.Authorize(ctx, campSiteID, actorID, team.PermSpotManage); err != nil {
		return err
	}
	return s.repo.Delete(ctx, campSiteID, id)
}

func (s *service) CalculateSpotCapacity(ctx context.Context, campSiteID string) (campsite.Capacity, error) {
	spots, err := s.repo.ListByCampSite(ctx, campSiteID)
	if err != nil {
		return campsite.Capacity{}, err
	}
	return AggregateCapacity(spots), nil
}

func (s *service) Capacity(ctx context.Context, campSiteID string) (*CapacityReport, error) {
	cs, err := s.campsites.GetByID(ctx, campSiteID)
	if err != nil {
		return nil, err
	}
	spots, err := s.repo.ListByCampSite(ctx, campSiteID)
	if err != nil {
		return nil, err
	}
	return &CapacityReport{
		UseSpotView: cs.UseSpotView,
		Spots:       AggregateCapacity(spots),
		Effective:   EffectiveCapacity(cs, spots),
	}, nil
}

func validate(sp *Spot) error {
	if sp.Name == "" {
		return ErrNameRequired
	}
	if sp.MaxCampers < 0 || sp.MaxTents < 0 {
		return ErrInvalidLimits
	}
	if sp.PricePerNight.IsNegative() || sp.PricePerSite.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
