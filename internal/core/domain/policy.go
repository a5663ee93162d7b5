package domain

// Privilege names a single capability checked before a mutating operation.
type Privilege string

const (
	PrivSubmitBusiness    Privilege = "add_business"
	PrivSubmitMeeting     Privilege = "add_meeting"
	PrivSubmitAchievement Privilege = "add_achievement"
	PrivApproveContent    Privilege = "approve_content"
	PrivRejectContent     Privilege = "reject_content"
	PrivViewPending       Privilege = "view_pending"
	PrivManageUsers       Privilege = "manage_users"
	PrivOverrideStatus    Privilege = "override_status"
)

var rolePrivileges = map[Role][]Privilege{
	RoleAdmin: {PrivApproveContent, PrivRejectContent, PrivViewPending},
	RoleUser:  {PrivSubmitBusiness, PrivSubmitMeeting, PrivSubmitAchievement},
}

// Permits reports whether role holds privilege. The owner holds every
// privilege; admins do not inherit the user's submission rights.
func Permits(role Role, p Privilege) bool {
	if role == RoleOwner {
		return true
	}
	for _, allowed := range rolePrivileges[role] {
		if allowed == p {
			return true
		}
	}
	return false
}
