package auth

type Role string

const (
	RoleOwner    Role = "owner"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// CanManage reports whether the role may write attendance, leave, payroll and
// invoice records of other employees.
func (r Role) CanManage() bool {
	return r == RoleOwner || r == RoleManager
}

// Principal is the tenant identity carried by an access token.
type Principal struct {
	UserID        string
	CompanyID     string
	EmployeeID    *string
	InstitutionID *string
	Role          Role
}
