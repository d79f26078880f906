package user

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - full access, decides requests
	RoleManager  Role = "manager"  // Can view team attendance
	RoleEmployee Role = "employee" // Regular employee
)

// Caller is the authenticated identity a request is made on behalf of.
// It is built per request from the access token and passed explicitly into
// every service call; services keep no caller state between calls.
type Caller struct {
	UserID     string
	EmployeeID string
	Role       Role
}

// IsAuthenticated reports whether the caller carries an identity at all.
func (c *Caller) IsAuthenticated() bool {
	return c != nil && c.UserID != "" && c.EmployeeID != ""
}

// IsAdmin checks if caller is an HR administrator
func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// IsManager checks if caller is manager or admin
func (c *Caller) IsManager() bool {
	return c != nil && (c.Role == RoleManager || c.Role == RoleAdmin)
}

// Owns checks if the given employee record belongs to the caller
func (c *Caller) Owns(employeeID string) bool {
	return c != nil && c.EmployeeID != "" && c.EmployeeID == employeeID
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}
