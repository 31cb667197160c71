package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/spot"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team"
)

type CreateRequest struct {
	CampSiteID string
	SpotID     *string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	// Tents defaults to 1 when nil.
	Tents *int
}

// Availability is the per-day view of a campsite over a date window.
type Availability struct {
	CampSiteID string
	Start      time.Time
	End        time.Time
	Capacity   campsite.Capacity
	Days       []DayAvailability
}

type Service interface {
	// GetDailyAvailability is advisory; Create enforces capacity.
	// Unpublished campsites are only visible to team members with CAMPSITE_VIEW.
	GetDailyAvailability(ctx context.Context, campSiteID, userID string, start, end time.Time) (*Availability, error)
	Create(ctx context.Context, userID string, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id, actorID string) (*Booking, error)
	List(ctx context.Context, actorID string, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id, actorID string, status Status) (*Booking, error)
}

type service struct {
	repo   Repository
	authz  team.Authorizer
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, authz team.Authorizer, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:   repo,
		authz:  authz,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || Day(end).Before(Day(start)) {
		return ErrInvalidDateRange
	}
	if daysBetween(Day(start), Day(end))+1 > MaxRangeDays {
		return ErrRangeTooLong
	}
	return nil
}

func (s *service) GetDailyAvailability(ctx context.Context, campSiteID, userID string, start, end time.Time) (*Availability, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	start, end = Day(start), Day(end)

	snap, err := s.repo.Snapshot(ctx, campSiteID, start, end)
	if err != nil {
		return nil, err
	}
	if !snap.CampSite.IsPublished {
		if err := s.authz.Authorize(ctx, campSiteID, userID, team.PermCampSiteView); err != nil {
			if errors.Is(err, team.ErrPermissionDenied) {
				return nil, ErrCampSiteNotFound
			}
			return nil, err
		}
	}
	availabilityLookupsTotal.Inc()

	capacity := spot.EffectiveCapacity(snap.CampSite, snap.Spots)
	totals := AggregateDaily(snap.Bookings, start, end)

	return &Availability{
		CampSiteID: campSiteID,
		Start:      start,
		End:        end,
		Capacity:   capacity,
		Days:       EvaluateDays(totals, start, end, capacity),
	}, nil
}

func (s *service) Create(ctx context.Context, userID string, req CreateRequest) (*Booking, error) {
	if err := validateRange(req.CheckIn, req.CheckOut); err != nil {
		return nil, err
	}
	if !Day(req.CheckOut).After(Day(req.CheckIn)) {
		return nil, ErrInvalidDateRange
	}
	if Day(req.CheckIn).Before(Day(s.now())) {
		return nil, ErrCheckInPast
	}

	tents := 1
	if req.Tents != nil {
		tents = *req.Tents
	}
	if req.Guests < 1 || tents < 0 {
		return nil, ErrInvalidGuests
	}

	b := &Booking{
		CampSiteID: req.CampSiteID,
		SpotID:     req.SpotID,
		UserID:     userID,
		CheckIn:    Day(req.CheckIn),
		CheckOut:   Day(req.CheckOut),
		Guests:     req.Guests,
		Tents:      tents,
		Status:     StatusPending,
	}

	err := s.repo.CreateChecked(ctx, b, func(snap *Snapshot) error {
		return checkCapacity(snap, b)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCapacityExceeded):
			bookingsRejectedTotal.WithLabelValues("capacity").Inc()
		case errors.Is(err, ErrSpotUnavailable):
			bookingsRejectedTotal.WithLabelValues("spot_unavailable").Inc()
		}
		return nil, err
	}

	bookingsCreatedTotal.Inc()
	s.logger.InfoContext(ctx, "booking created",
		slog.String("booking_id", b.ID),
		slog.String("campsite_id", b.CampSiteID),
		slog.Int("guests", b.Guests),
	)
	return b, nil
}

// checkCapacity rejects b if adding it to snap would exceed a defined cap on any day of
// the stay, or if its spot is taken or too small.
func checkCapacity(snap *Snapshot, b *Booking) error {
	if b.SpotID != nil {
		var target *spot.Spot
		for _, sp := range snap.Spots {
			if sp.ID == *b.SpotID {
				target = sp
				break
			}
		}
		if target == nil {
			return ErrSpotNotFound
		}
		if b.Guests > target.MaxCampers || b.Tents > target.MaxTents {
			return ErrCapacityExceeded
		}
		for _, other := range snap.Bookings {
			if other.SpotID != nil && *other.SpotID == *b.SpotID && other.Status != StatusCancelled {
				return ErrSpotUnavailable
			}
		}
	}

	capacity := spot.EffectiveCapacity(snap.CampSite, snap.Spots)
	totals := AggregateDaily(snap.Bookings, b.CheckIn, b.CheckOut)
	for _, day := range totals {
		if capacity.MaxGuestsPerDay != nil && day.BookedGuests+b.Guests > *capacity.MaxGuestsPerDay {
			return ErrCapacityExceeded
		}
		if capacity.MaxTentsPerDay != nil && day.BookedTents+b.Tents > *capacity.MaxTentsPerDay {
			return ErrCapacityExceeded
		}
	}
	return nil
}

// GetByID returns a booking to its camper or to a campsite team member with BOOKING_VIEW.
func (s *service) GetByID(ctx context.Context, id, actorID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID == actorID {
		return b, nil
	}
	if err := s.authz.Authorize(ctx, b.CampSiteID, actorID, team.PermBookingView); err != nil {
		if errors.Is(err, team.ErrPermissionDenied) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// List returns the caller's own bookings, or a campsite's bookings when filter.CampSiteID
// is set and the caller holds BOOKING_VIEW there.
func (s *service) List(ctx context.Context, actorID string, filter Filter) ([]*Booking, int, error) {
	if filter.Status != "" && !Status(filter.Status).IsValid() {
		return nil, 0, ErrInvalidStatus
	}
	if filter.CampSiteID == "" {
		filter.UserID = actorID
	} else if err := s.authz.Authorize(ctx, filter.CampSiteID, actorID, team.PermBookingView); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

// UpdateStatus moves a booking along its lifecycle. Campers may only cancel their own
// bookings; BOOKING_MANAGE holders may make any allowed transition.
func (s *service) UpdateStatus(ctx context.Context, id, actorID string, status Status) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	manageErr := s.authz.Authorize(ctx, b.CampSiteID, actorID, team.PermBookingManage)
	if manageErr != nil && !errors.Is(manageErr, team.ErrPermissionDenied) {
		return nil, manageErr
	}
	isManager := manageErr == nil
	isCamper := b.UserID == actorID

	switch {
	case isManager:
	case isCamper && status == StatusCancelled:
	case isCamper:
		return nil, team.ErrPermissionDenied
	default:
		return nil, ErrNotFound
	}

	if !b.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	// The write only lands if the booking still has the status checked above.
	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, status); err != nil {
		return nil, err
	}
	b.Status = status
	s.logger.InfoContext(ctx, "booking status changed",
		slog.String("booking_id", b.ID),
		slog.String("status", string(status)),
		slog.String("actor_id", actorID),
	)
	return b, nil
}
