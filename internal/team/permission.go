package team

import "slices"

// Roles a team member can hold.
const (
	RoleOwner   = "OWNER"
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
	RoleViewer  = "VIEWER"
)

// Permission codes.
const (
	PermCampSiteView    = "CAMPSITE_VIEW"
	PermCampSiteEdit    = "CAMPSITE_EDIT"
	PermCampSiteDelete  = "CAMPSITE_DELETE"
	PermCampSitePublish = "CAMPSITE_PUBLISH"
	PermSpotManage      = "SPOT_MANAGE"
	PermBookingView     = "BOOKING_VIEW"
	PermBookingManage   = "BOOKING_MANAGE"
	PermTeamView        = "TEAM_VIEW"
	PermTeamManage      = "TEAM_MANAGE"
	PermPhotoManage     = "PHOTO_MANAGE"
	PermReportView      = "REPORT_VIEW"
)

// AllPermissions is the permission universe in canonical order.
var AllPermissions = []string{
	PermCampSiteView,
	PermCampSiteEdit,
	PermCampSiteDelete,
	PermCampSitePublish,
	PermSpotManage,
	PermBookingView,
	PermBookingManage,
	PermTeamView,
	PermTeamManage,
	PermPhotoManage,
	PermReportView,
}

// roleDefaults is the only source of default grants.
var roleDefaults = map[string][]string{
	RoleOwner: AllPermissions,
	RoleAdmin: {
		PermCampSiteView, PermCampSiteEdit, PermCampSitePublish, PermSpotManage,
		PermBookingView, PermBookingManage, PermTeamView, PermTeamManage,
		PermPhotoManage, PermReportView,
	},
	RoleManager: {
		PermCampSiteView, PermCampSiteEdit, PermSpotManage,
		PermBookingView, PermBookingManage, PermTeamView,
		PermPhotoManage, PermReportView,
	},
	RoleStaff: {
		PermCampSiteView, PermBookingView, PermBookingManage, PermTeamView,
	},
	RoleViewer: {
		PermCampSiteView, PermBookingView, PermReportView,
	},
}

// IsValidRole reports whether role is a known role.
func IsValidRole(role string) bool {
	_, ok := roleDefaults[role]
	return ok
}

// IsValidPermission reports whether code belongs to the permission universe.
func IsValidPermission(code string) bool {
	return slices.Contains(AllPermissions, code)
}

// PermissionSet is a set of permission codes kept in canonical order.
type PermissionSet []string

// Has reports whether perm is granted.
func (s PermissionSet) Has(perm string) bool {
	return slices.Contains(s, perm)
}

// EffectivePermissions resolves what a member with role and an optional explicit grant list
// may do. A non-empty explicit list replaces the role defaults entirely and unknown codes in
// it are dropped. An unknown role with no explicit list resolves to the empty set.
func EffectivePermissions(role string, explicit []string) PermissionSet {
	source := roleDefaults[role]
	if len(explicit) > 0 {
		source = explicit
	}

	set := PermissionSet{}
	for _, perm := range AllPermissions {
		if slices.Contains(source, perm) {
			set = append(set, perm)
		}
	}
	return set
}
