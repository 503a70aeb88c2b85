package service

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type AccountType string

const (
	AccountTypePersonal AccountType = "personal"
	AccountTypeJoint    AccountType = "joint"
)

// Session identifies who is acting and which organization scope they see.
type Session struct {
	UserID         string
	Email          string
	Role           Role
	AccountType    AccountType
	OrganizationID string
}

// Scope is the partition key for every read and write. Personal sessions see
// only their own budgets; joint sessions share the organization's budgets.
func (s Session) Scope() string {
	if s.AccountType == AccountTypeJoint {
		return s.OrganizationID
	}
	return s.UserID
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// DirectSpending reports whether the session may log spending without approval.
func (s Session) DirectSpending() bool {
	return s.AccountType != AccountTypeJoint || s.IsAdmin()
}

// Validate rejects sessions that cannot be mapped to a scope.
func (s Session) Validate() error {
	if s.UserID == "" {
		return invalid("session.user_id", "is required")
	}
	switch s.AccountType {
	case AccountTypePersonal:
	case AccountTypeJoint:
		if s.OrganizationID == "" {
			return invalid("session.organization_id", "is required for joint accounts")
		}
	default:
		return invalid("session.account_type", "must be personal or joint")
	}
	switch s.Role {
	case RoleAdmin, RoleMember:
	default:
		return invalid("session.role", "must be admin or member")
	}
	return nil
}
