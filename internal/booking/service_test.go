package booking

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/spot"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team"
)

type mockRepo struct {
	campsites map[string]*campsite.CampSite
	spots     map[string][]*spot.Spot
	bookings  []*Booking
	seq       int
	// beforeUpdate runs between the service's read and its status write.
	beforeUpdate func()
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		campsites: make(map[string]*campsite.CampSite),
		spots:     make(map[string][]*spot.Spot),
	}
}

func (m *mockRepo) Snapshot(ctx context.Context, campSiteID string, start, end time.Time) (*Snapshot, error) {
	cs, ok := m.campsites[campSiteID]
	if !ok {
		return nil, ErrCampSiteNotFound
	}
	var overlapping []*Booking
	for _, b := range m.bookings {
		if b.CampSiteID == campSiteID && b.Status != StatusCancelled &&
			!b.CheckIn.After(end) && !b.CheckOut.Before(start) {
			overlapping = append(overlapping, b)
		}
	}
	return &Snapshot{CampSite: cs, Spots: m.spots[campSiteID], Bookings: overlapping}, nil
}

func (m *mockRepo) CreateChecked(ctx context.Context, b *Booking, check func(*Snapshot) error) error {
	snap, err := m.Snapshot(ctx, b.CampSiteID, b.CheckIn, b.CheckOut)
	if err != nil {
		return err
	}
	if !snap.CampSite.IsPublished {
		return ErrCampSiteNotFound
	}
	if err := check(snap); err != nil {
		return err
	}
	m.seq++
	b.ID = fmt.Sprintf("booking-%d", m.seq)
	cp := *b
	m.bookings = append(m.bookings, &cp)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	for _, b := range m.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range m.bookings {
		if (filter.UserID == "" || b.UserID == filter.UserID) &&
			(filter.CampSiteID == "" || b.CampSiteID == filter.CampSiteID) {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	if m.beforeUpdate != nil {
		m.beforeUpdate()
	}
	for _, b := range m.bookings {
		if b.ID == id {
			if b.Status != from {
				return ErrInvalidTransition
			}
			b.Status = to
			return nil
		}
	}
	return ErrNotFound
}

type fakeAuthorizer map[string]team.PermissionSet

func (f fakeAuthorizer) Permissions(ctx context.Context, campSiteID, userID string) (team.PermissionSet, error) {
	return f[userID], nil
}

func (f fakeAuthorizer) Authorize(ctx context.Context, campSiteID, userID, perm string) error {
	if !f[userID].Has(perm) {
		return team.ErrPermissionDenied
	}
	return nil
}

var testAuthz = fakeAuthorizer{
	"operator": team.EffectivePermissions(team.RoleOwner, nil),
	"viewer":   team.EffectivePermissions(team.RoleViewer, nil),
}

func newTestService(repo *mockRepo) *service {
	svc := NewService(repo, testAuthz, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return date("2024-01-01") }
	return svc
}

func TestGetDailyAvailability(t *testing.T) {
	repo := newMockRepo()
	repo.campsites["camp-1"] = &campsite.CampSite{ID: "camp-1", IsPublished: true, MaxGuestsPerDay: intPtr(10)}
	repo.bookings = []*Booking{
		{ID: "a", CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-12"), Guests: 9, Tents: 1, Status: StatusConfirmed},
		{ID: "b", CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-10"), Guests: 1, Tents: 1, Status: StatusPending},
		{ID: "c", CampSiteID: "camp-1", CheckIn: date("2024-01-11"), CheckOut: date("2024-01-11"), Guests: 5, Tents: 1, Status: StatusCancelled},
		{ID: "d", CampSiteID: "camp-2", CheckIn: date("2024-01-11"), CheckOut: date("2024-01-11"), Guests: 5, Tents: 1, Status: StatusConfirmed},
	}
	svc := newTestService(repo)

	avail, err := svc.GetDailyAvailability(context.Background(), "camp-1", "", date("2024-01-09"), date("2024-01-13"))
	require.NoError(t, err)
	require.Len(t, avail.Days, 5)

	byDate := make(map[string]DayAvailability)
	for _, d := range avail.Days {
		byDate[d.Date] = d
	}
	assert.Equal(t, 0, byDate["2024-01-09"].BookedGuests)
	assert.False(t, byDate["2024-01-10"].Available)
	assert.Equal(t, 10, byDate["2024-01-10"].BookedGuests)
	assert.True(t, byDate["2024-01-11"].Available)
	assert.Equal(t, 1, *byDate["2024-01-11"].RemainingGuests)
	assert.Equal(t, 0, byDate["2024-01-13"].BookedGuests)
}

func TestGetDailyAvailabilityValidation(t *testing.T) {
	repo := newMockRepo()
	repo.campsites["camp-1"] = &campsite.CampSite{ID: "camp-1", IsPublished: true}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.GetDailyAvailability(ctx, "camp-1", "", date("2024-01-12"), date("2024-01-10"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	_, err = svc.GetDailyAvailability(ctx, "camp-1", "", time.Time{}, date("2024-01-10"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	_, err = svc.GetDailyAvailability(ctx, "camp-1", "", date("2024-01-01"), date("2025-01-01"))
	assert.ErrorIs(t, err, ErrRangeTooLong)
	_, err = svc.GetDailyAvailability(ctx, "camp-404", "", date("2024-01-01"), date("2024-01-02"))
	assert.ErrorIs(t, err, ErrCampSiteNotFound)

	// A single day and a full leap year are both accepted.
	_, err = svc.GetDailyAvailability(ctx, "camp-1", "", date("2024-01-01"), date("2024-01-01"))
	require.NoError(t, err)
	_, err = svc.GetDailyAvailability(ctx, "camp-1", "", date("2024-01-01"), date("2024-12-31"))
	require.NoError(t, err)
}

func TestGetDailyAvailabilityUnpublished(t *testing.T) {
	repo := newMockRepo()
	repo.campsites["camp-1"] = &campsite.CampSite{ID: "camp-1", MaxGuestsPerDay: intPtr(10)}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.GetDailyAvailability(ctx, "camp-1", "", date("2024-01-10"), date("2024-01-12"))
	assert.ErrorIs(t, err, ErrCampSiteNotFound)
	_, err = svc.GetDailyAvailability(ctx, "camp-1", "camper", date("2024-01-10"), date("2024-01-12"))
	assert.ErrorIs(t, err, ErrCampSiteNotFound)

	avail, err := svc.GetDailyAvailability(ctx, "camp-1", "viewer", date("2024-01-10"), date("2024-01-12"))
	require.NoError(t, err)
	assert.Len(t, avail.Days, 3)
}

func TestCreateEnforcesCapacity(t *testing.T) {
	repo := newMockRepo()
	repo.campsites["camp-1"] = &campsite.CampSite{ID: "camp-1", IsPublished: true, MaxGuestsPerDay: intPtr(10), MaxTentsPerDay: intPtr(3)}
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, "camper-1", CreateRequest{
		CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-12"), Guests: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, first.Status)
	assert.Equal(t, 1, first.Tents)

	_, err = svc.Create(ctx, "camper-2", CreateRequest{
		CampSiteID: "camp-1", CheckIn: date("2024-01-12"), CheckOut: date("2024-01-13"), Guests: 3,
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	_, err = svc.Create(ctx, "camper-2", CreateRequest{
		CampSiteID: "camp-1", CheckIn: date("2024-01-12"), CheckOut: date("2024-01-13"), Guests: 2,
	})
	require.NoError(t, err)

	tents := 2
	_, err = svc.Create(ctx, "camper-3", CreateRequest{
		CampSiteID: "camp-1", CheckIn: date("2024-01-13"), CheckOut: date("2024-01-14"), Guests: 1, Tents: &tents,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "camper-3", CreateRequest{
		CampSiteID: "camp-1", CheckIn: date("2024-01-13"), CheckOut: date("2024-01-14"), Guests: 1,
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// Cancelling frees the capacity.
	_, err = svc.UpdateStatus(ctx, first.ID, "camper-1", StatusCancelled)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "camper-2", CreateRequest{
		CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-11"), Guests: 10,
	})
	require.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	repo := newMockRepo()
	repo.campsites["camp-1"] = &campsite.CampSite{ID: "camp-1", IsPublished: true}
	svc := newTestService(repo)
	ctx := context.Background()

	zero := 0
	negative := -1
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{"same day", CreateRequest{CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-10"), Guests: 1}, ErrInvalidDateRange},
		{"inverted", CreateRequest{CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-09"), Guests: 1}, ErrInvalidDateRange},
		{"past", CreateRequest{CampSiteID: "camp-1", CheckIn: date("2023-12-30"), CheckOut: date("2024-01-02"), Guests: 1}, ErrCheckInPast},
		{"no guests", CreateRequest{CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-11")}, ErrInvalidGuests},
		{"negative tents", CreateRequest{CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-11"), Guests: 1, Tents: &negative}, ErrInvalidGuests},
		{"unknown campsite", CreateRequest{CampSiteID: "camp-404", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-11"), Guests: 1}, ErrCampSiteNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "camper", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	b, err := svc.Create(ctx, "camper", CreateRequest{
		CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-11"), Guests: 1, Tents: &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, b.Tents)
}

func TestCreateOnSpot(t *testing.T) {
	repo := newMockRepo()
	repo.campsites["camp-1"] = &campsite.CampSite{ID: "camp-1", IsPublished: true, UseSpotView: true, MaxGuestsPerDay: intPtr(1)}
	repo.spots["camp-1"] = []*spot.Spot{
		{ID: "spot-a", CampSiteID: "camp-1", MaxCampers: 4, MaxTents: 1},
		{ID: "spot-b", CampSiteID: "camp-1", MaxCampers: 4, MaxTents: 1},
	}
	svc := newTestService(repo)
	ctx := context.Background()

	spotA, spotX := "spot-a", "spot-x"
	req := CreateRequest{CampSiteID: "camp-1", SpotID: &spotA, CheckIn: date("2024-01-10"), CheckOut: date("2024-01-12"), Guests: 4}

	// Spot view ignores the stale manual cap of 1 guest.
	_, err := svc.Create(ctx, "camper-1", req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "camper-2", req)
	assert.ErrorIs(t, err, ErrSpotUnavailable)

	req.SpotID = &spotX
	_, err = svc.Create(ctx, "camper-2", req)
	assert.ErrorIs(t, err, ErrSpotNotFound)

	req.SpotID = nil
	req.Guests = 5
	_, err = svc.Create(ctx, "camper-2", req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestUpdateStatusPermissions(t *testing.T) {
	repo := newMockRepo()
	repo.campsites["camp-1"] = &campsite.CampSite{ID: "camp-1", IsPublished: true}
	svc := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, "camper", CreateRequest{
		CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-11"), Guests: 2,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, b.ID, "camper", StatusConfirmed)
	assert.ErrorIs(t, err, team.ErrPermissionDenied)
	_, err = svc.UpdateStatus(ctx, b.ID, "stranger", StatusCancelled)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.UpdateStatus(ctx, b.ID, "viewer", StatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.UpdateStatus(ctx, b.ID, "operator", Status("LOST"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	confirmed, err := svc.UpdateStatus(ctx, b.ID, "operator", StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	_, err = svc.UpdateStatus(ctx, b.ID, "operator", StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	completed, err := svc.UpdateStatus(ctx, b.ID, "operator", StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)

	_, err = svc.UpdateStatus(ctx, b.ID, "camper", StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusLosesRaceToConcurrentCancel(t *testing.T) {
	repo := newMockRepo()
	repo.campsites["camp-1"] = &campsite.CampSite{ID: "camp-1", IsPublished: true}
	svc := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, "camper", CreateRequest{
		CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-11"), Guests: 2,
	})
	require.NoError(t, err)

	// The camper cancels after the operator's confirm has read PENDING.
	repo.beforeUpdate = func() {
		repo.beforeUpdate = nil
		_, err := svc.UpdateStatus(ctx, b.ID, "camper", StatusCancelled)
		require.NoError(t, err)
	}

	_, err = svc.UpdateStatus(ctx, b.ID, "operator", StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	current, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, current.Status)
}

func TestVisibility(t *testing.T) {
	repo := newMockRepo()
	repo.campsites["camp-1"] = &campsite.CampSite{ID: "camp-1", IsPublished: true}
	svc := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, "camper", CreateRequest{
		CampSiteID: "camp-1", CheckIn: date("2024-01-10"), CheckOut: date("2024-01-11"), Guests: 2,
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, b.ID, "camper")
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, b.ID, "viewer")
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, b.ID, "stranger")
	assert.ErrorIs(t, err, ErrNotFound)

	mine, total, err := svc.List(ctx, "stranger", Filter{})
	require.NoError(t, err)
	assert.Empty(t, mine)
	assert.Equal(t, 0, total)

	_, _, err = svc.List(ctx, "stranger", Filter{CampSiteID: "camp-1"})
	assert.ErrorIs(t, err, team.ErrPermissionDenied)

	all, _, err := svc.List(ctx, "viewer", Filter{CampSiteID: "camp-1"})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, _, err = svc.List(ctx, "camper", Filter{Status: "nope"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
