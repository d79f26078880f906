package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ProfileSeed is one entry of a profile seed file.
type ProfileSeed struct {
	EmployeeID      string   `json:"employee_id"`
	EmployeeCode    string   `json:"employee_code"`
	DepartmentID    *string  `json:"department_id"`
	PositionID      *string  `json:"position_id"`
	BaseHoursPerDay *float64 `json:"base_hours_per_day"`
	IsManager       bool     `json:"is_manager"`
}

func (s ProfileSeed) toProfile() employee.Profile {
	return employee.Profile{
		EmployeeID:      s.EmployeeID,
		EmployeeCode:    s.EmployeeCode,
		DepartmentID:    validator.TrimOrNil(s.DepartmentID),
		PositionID:      validator.TrimOrNil(s.PositionID),
		BaseHoursPerDay: s.BaseHoursPerDay,
		IsManager:       s.IsManager,
	}
}

// LoadProfiles reads a JSON array of profile seeds from path.
func LoadProfiles(path string) ([]employee.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile seed file: %w", err)
	}

	var seeds []ProfileSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("decode profile seed file: %w", err)
	}

	var errs validator.ValidationErrors
	seen := make(map[string]struct{}, len(seeds))
	seenCodes := make(map[string]struct{}, len(seeds))
	profiles := make([]employee.Profile, 0, len(seeds))
	for i, s := range seeds {
		field := fmt.Sprintf("profiles[%d]", i)
		if validator.IsEmpty(s.EmployeeID) {
			errs.Add(field+".employee_id", "employee_id is required")
			continue
		}
		if _, dup := seen[s.EmployeeID]; dup {
			errs.Add(field+".employee_id", "duplicate employee_id "+s.EmployeeID)
			continue
		}
		seen[s.EmployeeID] = struct{}{}

		// employee_code is unique and required in employee_profiles
		switch _, dupCode := seenCodes[s.EmployeeCode]; {
		case validator.IsEmpty(s.EmployeeCode):
			errs.Add(field+".employee_code", "employee_code is required")
		case !validator.IsValidEmployeeCode(s.EmployeeCode):
			errs.Add(field+".employee_code", "invalid employee_code")
		case dupCode:
			errs.Add(field+".employee_code", "duplicate employee_code "+s.EmployeeCode)
		default:
			seenCodes[s.EmployeeCode] = struct{}{}
		}
		if s.BaseHoursPerDay != nil && (*s.BaseHoursPerDay < 0 || *s.BaseHoursPerDay > 24) {
			errs.Add(field+".base_hours_per_day", "must be between 0 and 24")
		}
		profiles = append(profiles, s.toProfile())
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// SeedProfiles writes profiles through w, stopping at the first failure.
func SeedProfiles(ctx context.Context, w employee.ProfileWriter, profiles []employee.Profile) error {
	for _, p := range profiles {
		if err := w.Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed profile %s: %w", p.EmployeeID, err)
		}
	}
	return nil
}
