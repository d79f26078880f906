package employee

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"

// Filter narrows team-wide queries. All set fields are AND-combined.
type Filter struct {
	DepartmentID *string `json:"department,omitempty"`
	PositionID   *string `json:"position,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	EmployeeID   *string `json:"employee_id,omitempty"`
}

// Normalize trims every field and turns blanks into "not set".
func (f Filter) Normalize() Filter {
	return Filter{
		DepartmentID: validator.TrimOrNil(f.DepartmentID),
		PositionID:   validator.TrimOrNil(f.PositionID),
		EmployeeCode: validator.TrimOrNil(f.EmployeeCode),
		EmployeeID:   validator.TrimOrNil(f.EmployeeID),
	}
}

func (f Filter) IsEmpty() bool {
	return f.DepartmentID == nil && f.PositionID == nil && f.EmployeeCode == nil && f.EmployeeID == nil
}

// Validate expects a normalized filter.
func (f Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeCode != nil && !validator.IsValidEmployeeCode(*f.EmployeeCode) {
		errs.Add("employee_code", "employee_code must be 1-32 characters of letters, digits, '-' or '_'")
	}
	if f.DepartmentID != nil && len(*f.DepartmentID) > 64 {
		errs.Add("department", "department must not exceed 64 characters")
	}
	if f.PositionID != nil && len(*f.PositionID) > 64 {
		errs.Add("position", "position must not exceed 64 characters")
	}
	if f.EmployeeID != nil && len(*f.EmployeeID) > 64 {
		errs.Add("employee_id", "employee_id must not exceed 64 characters")
	}

	return errs.Err()
}

// Matches applies the filter to a profile in memory.
func (f Filter) Matches(p Profile) bool {
	if f.EmployeeID != nil && p.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.EmployeeCode != nil && p.EmployeeCode != *f.EmployeeCode {
		return false
	}
	if f.DepartmentID != nil && (p.DepartmentID == nil || *p.DepartmentID != *f.DepartmentID) {
		return false
	}
	if f.PositionID != nil && (p.PositionID == nil || *p.PositionID != *f.PositionID) {
		return false
	}
	return true
}
