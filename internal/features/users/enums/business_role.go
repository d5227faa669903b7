package users_enums

type BusinessRole string

const (
	BusinessRoleOwner  BusinessRole = "OWNER"
	BusinessRoleAdmin  BusinessRole = "BUSINESS_ADMIN"
	BusinessRoleMember BusinessRole = "BUSINESS_MEMBER"
)

func (r BusinessRole) IsValid() bool {
	switch r {
	case BusinessRoleOwner, BusinessRoleAdmin, BusinessRoleMember:
		return true
	default:
		return false
	}
}

// CanManageMembers reports whether the role may invite or remove
// other members of the same business.
func (r BusinessRole) CanManageMembers() bool {
	return r == BusinessRoleOwner || r == BusinessRoleAdmin
}
