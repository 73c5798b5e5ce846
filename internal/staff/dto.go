package staff

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/felixonline247/opolo-cbt-app/internal"
)

type CreateStaffDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	BaseSalary string `json:"base_salary"`
	RoleID     *int64 `json:"role_id"`
	Password   string `json:"password"`
}

func (d *CreateStaffDTO) Validate() error {
	var verrs internal.ValidationErrors

	if strings.TrimSpace(d.Name) == "" {
		verrs.Errors = append(verrs.Errors, internal.ValidationError{Field: "name", Message: "name is required", Code: "required"})
	}

	email := strings.ToLower(strings.TrimSpace(d.Email))
	if email == "" || !strings.Contains(email, "@") {
		verrs.Errors = append(verrs.Errors, internal.ValidationError{Field: "email", Message: "a valid email is required", Code: "invalid"})
	}
	d.Email = email

	if strings.TrimSpace(d.BaseSalary) == "" {
		d.BaseSalary = "0"
	}
	salary, err := decimal.NewFromString(strings.TrimSpace(d.BaseSalary))
	if err != nil || salary.IsNegative() {
		verrs.Errors = append(verrs.Errors, internal.ValidationError{Field: "base_salary", Message: "base salary must be a non-negative decimal", Code: "invalid"})
	}

	if len(verrs.Errors) > 0 {
		return internal.NewValidationError(verrs.Messages(), internal.ErrCodeValidationFailed).WithDetails(verrs)
	}
	return nil
}

func (d *CreateStaffDTO) Salary() decimal.Decimal {
	salary, err := decimal.NewFromString(strings.TrimSpace(d.BaseSalary))
	if err != nil {
		return decimal.Zero
	}
	return salary
}

type UpdateStaffDTO struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	BaseSalary *string `json:"base_salary"`
	RoleID     *int64  `json:"role_id"`
	IsActive   *bool   `json:"is_active"`
}

// Apply copies the provided fields onto the record. The id is never touched,
// so sales attribution survives any rename.
func (d *UpdateStaffDTO) Apply(member *Staff) error {
	if d.Name != nil {
		name := strings.TrimSpace(*d.Name)
		if name == "" {
			return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
		}
		member.Name = name
	}

	if d.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*d.Email))
		if email == "" || !strings.Contains(email, "@") {
			return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
		}
		member.Email = email
	}

	if d.BaseSalary != nil {
		salary, err := decimal.NewFromString(strings.TrimSpace(*d.BaseSalary))
		if err != nil || salary.IsNegative() {
			return internal.NewValidationError("base salary must be a non-negative decimal", internal.ErrCodeInvalidSalary)
		}
		member.BaseSalary = salary
	}

	if d.RoleID != nil {
		member.RoleID = d.RoleID
	}

	if d.IsActive != nil {
		member.IsActive = *d.IsActive
	}

	return nil
}
