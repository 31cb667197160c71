package campsite

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team"
)

// CreateRequest holds the fields of a new campsite.
type CreateRequest struct {
	NameTH             string
	NameEN             string
	Description        string
	Type               string
	PriceLow           decimal.Decimal
	PriceHigh          decimal.Decimal
	AccessTypes        []string
	Facilities         []string
	ExternalFacilities []string
	Equipment          []string
	Activities         []string
	Terrain            []string
	MaxGuestsPerDay    *int
	MaxTentsPerDay     *int
	UseSpotView        bool
	IsPublished        bool
	Location           Location
}

// UpdateRequest defines the fields that can be updated. Nil fields are left untouched.
type UpdateRequest struct {
	NameTH             *string
	NameEN             *string
	Description        *string
	Type               *string
	PriceLow           *decimal.Decimal
	PriceHigh          *decimal.Decimal
	AccessTypes        *[]string
	Facilities         *[]string
	ExternalFacilities *[]string
	Equipment          *[]string
	Activities         *[]string
	Terrain            *[]string
	MaxGuestsPerDay    *int
	MaxTentsPerDay     *int
	// ClearManualCaps removes both manual caps, making the campsite unlimited.
	ClearManualCaps bool
	UseSpotView     *bool
	IsPublished     *bool
	Location        *Location
}

// Service defines business logic for campsites.
type Service interface {
	List(ctx context.Context, userID string, params FilterParams, filter Filter) ([]*CampSite, int, error)
	Count(ctx context.Context, params FilterParams) (int, error)
	LastFilters(ctx context.Context, userID string) (*FilterParams, error)
	Get(ctx context.Context, id, userID string) (*CampSite, error)
	Create(ctx context.Context, operatorID string, req CreateRequest) (*CampSite, error)
	Update(ctx context.Context, id, actorID string, req UpdateRequest) (*CampSite, error)
	Delete(ctx context.Context, id, actorID string) error
}

type service struct {
	repo    Repository
	authz   team.Authorizer
	history FilterHistory
}

// NewService creates a new campsite service.
func NewService(repo Repository, authz team.Authorizer, history FilterHistory) Service {
	if history == nil {
		history = NopFilterHistory{}
	}
	return &service{repo: repo, authz: authz, history: history}
}

// List searches visible campsites. Searches by a signed-in user are remembered.
func (s *service) List(ctx context.Context, userID string, params FilterParams, filter Filter) ([]*CampSite, int, error) {
	pred, err := BuildFilterPredicate(params)
	if err != nil {
		return nil, 0, err
	}

	sites, total, err := s.repo.List(ctx, pred, filter)
	if err != nil {
		return nil, 0, err
	}

	if userID != "" {
		if err := s.history.Save(ctx, userID, params); err != nil {
			slog.WarnContext(ctx, "failed to save filter history", slog.String("user_id", userID), slog.String("error", err.Error()))
		}
	}

	return sites, total, nil
}

func (s *service) Count(ctx context.Context, params FilterParams) (int, error) {
	pred, err := BuildFilterPredicate(params)
	if err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, pred)
}

func (s *service) LastFilters(ctx context.Context, userID string) (*FilterParams, error) {
	return s.history.Last(ctx, userID)
}

// Get returns a campsite. Unpublished campsites are only visible to their team.
func (s *service) Get(ctx context.Context, id, userID string) (*CampSite, error) {
	cs, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cs.IsPublished {
		return cs, nil
	}

	if err := s.authz.Authorize(ctx, id, userID, team.PermCampSiteView); err != nil {
		if errors.Is(err, team.ErrPermissionDenied) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cs, nil
}

func (s *service) Create(ctx context.Context, operatorID string, req CreateRequest) (*CampSite, error) {
	cs := &CampSite{
		OperatorID:         operatorID,
		NameTH:             strings.TrimSpace(req.NameTH),
		NameEN:             strings.TrimSpace(req.NameEN),
		Description:        strings.TrimSpace(req.Description),
		Type:               strings.ToUpper(strings.TrimSpace(req.Type)),
		IsActive:           true,
		IsPublished:        req.IsPublished,
		PriceLow:           req.PriceLow,
		PriceHigh:          req.PriceHigh,
		AccessTypes:        NewCodeSet(req.AccessTypes),
		Facilities:         NewCodeSet(req.Facilities),
		ExternalFacilities: NewCodeSet(req.ExternalFacilities),
		Equipment:          NewCodeSet(req.Equipment),
		Activities:         NewCodeSet(req.Activities),
		Terrain:            NewCodeSet(req.Terrain),
		MaxGuestsPerDay:    req.MaxGuestsPerDay,
		MaxTentsPerDay:     req.MaxTentsPerDay,
		UseSpotView:        req.UseSpotView,
		Location:           req.Location,
	}
	if err := validate(cs); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *service) Update(ctx context.Context, id, actorID string, req UpdateRequest) (*CampSite, error) {
	if err := s.authz.Authorize(ctx, id, actorID, team.PermCampSiteEdit); err != nil {
		return nil, err
	}

	cs, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsPublished != nil && *req.IsPublished != cs.IsPublished {
		if err := s.authz.Authorize(ctx, id, actorID, team.PermCampSitePublish); err != nil {
			return nil, err
		}
		cs.IsPublished = *req.IsPublished
	}

	applyUpdate(cs, req)
	if err := validate(cs); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func applyUpdate(cs *CampSite, req UpdateRequest) {
	if req.NameTH != nil {
		cs.NameTH = strings.TrimSpace(*req.NameTH)
	}
	if req.NameEN != nil {
		cs.NameEN = strings.TrimSpace(*req.NameEN)
	}
	if req.Description != nil {
		cs.Description = strings.TrimSpace(*req.Description)
	}
	if req.Type != nil {
		cs.Type = strings.ToUpper(strings.TrimSpace(*req.Type))
	}
	if req.PriceLow != nil {
		cs.PriceLow = *req.PriceLow
	}
	if req.PriceHigh != nil {
		cs.PriceHigh = *req.PriceHigh
	}

	codeFields := []struct {
		src *[]string
		dst *CodeSet
	}{
		{req.AccessTypes, &cs.AccessTypes},
		{req.Facilities, &cs.Facilities},
		{req.ExternalFacilities, &cs.ExternalFacilities},
		{req.Equipment, &cs.Equipment},
		{req.Activities, &cs.Activities},
		{req.Terrain, &cs.Terrain},
	}
	for _, f := range codeFields {
		if f.src != nil {
			*f.dst = NewCodeSet(*f.src)
		}
	}

	if req.ClearManualCaps {
		cs.MaxGuestsPerDay = nil
		cs.MaxTentsPerDay = nil
	}
	if req.MaxGuestsPerDay != nil {
		cs.MaxGuestsPerDay = req.MaxGuestsPerDay
	}
	if req.MaxTentsPerDay != nil {
		cs.MaxTentsPerDay = req.MaxTentsPerDay
	}
	if req.UseSpotView != nil {
		cs.UseSpotView = *req.UseSpotView
	}
	if req.Location != nil {
		cs.Location = *req.Location
	}
}

func (s *service) Delete(ctx context.Context, id, actorID string) error {
	if err := s.authz.Authorize(ctx, id, actorID, team.PermCampSiteDelete); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validate(cs *CampSite) error {
	if cs.NameTH == "" && cs.NameEN == "" {
		return ErrNameRequired
	}
	if !IsValidType(cs.Type) {
		return ErrInvalidType
	}
	if cs.PriceLow.IsNegative() || cs.PriceHigh.LessThan(cs.PriceLow) {
		return ErrInvalidPrice
	}
	if (cs.MaxGuestsPerDay != nil && *cs.MaxGuestsPerDay < 0) || (cs.MaxTentsPerDay != nil && *cs.MaxTentsPerDay < 0) {
		return ErrInvalidCap
	}
	return nil
}
