// Package records implements the domain repositories on top of the generic
// core.Store record contract.
package records

// Collection names used across all store backends.
const (
	collProfiles      = "profiles"
	collInternships   = "internships"
	collApplications  = "applications"
	collAppointments  = "appointments"
	collNotifications = "notifications"
)
