package core

// Portal roles. Identity is a bare email string; roles are claimed by the
// caller per request, there is no authentication layer.
const (
	RoleStudent    = "student"
	RoleProStudent = "pro_student"
	RoleCompany    = "company"
	RoleScadOffice = "scad_office"
)

var AllRoles = []string{RoleStudent, RoleProStudent, RoleCompany, RoleScadOffice}

// IsStaffRole reports whether role acts on the company/office side of a
// workflow (as opposed to the applicant side).
func IsStaffRole(role string) bool {
	return role == RoleCompany || role == RoleScadOffice
}
