package team

import (
	"net/http"
	"time"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "team member not found")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrNotInvitee        = apperror.New(http.StatusForbidden, "only the invited user can respond to this invitation")
	ErrInvitationClosed  = apperror.New(http.StatusConflict, "invitation is no longer open")
	ErrAlreadyMember     = apperror.New(http.StatusConflict, "user is already a member of this campsite team")
	ErrInvalidRole       = apperror.New(http.StatusBadRequest, "invalid role")
	ErrInvalidPermission = apperror.New(http.StatusBadRequest, "invalid permission code")
	ErrOwnerRole         = apperror.New(http.StatusBadRequest, "the OWNER role cannot be granted")
	ErrUserNotFound      = apperror.New(http.StatusNotFound, "user not found")
)

// State of a membership, derived from IsActive and AcceptedAt.
type State string

const (
	StateInvited  State = "INVITED"
	StateAccepted State = "ACCEPTED"
	StateDeclined State = "DECLINED"
	StateRemoved  State = "REMOVED"
)

// Member is a user's membership in a campsite team, from invitation onward.
type Member struct {
	ID          string
	CampSiteID  string
	UserID      string
	Email       string
	DisplayName *string
	Role        string
	// Permissions, when non-empty, replaces the role defaults.
	Permissions []string
	IsActive    bool
	InvitedBy   string
	InvitedAt   time.Time
	AcceptedAt  *time.Time
}
