package employee

import (
	"time"

	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Date is a calendar date carried as YYYY-MM-DD on the wire.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return appErrors.NewValidationError("dates must be strings in YYYY-MM-DD form", appErrors.ErrCodeInvalidDate)
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return appErrors.NewValidationError("dates must use YYYY-MM-DD", appErrors.ErrCodeInvalidDate).WithCause(err)
	}
	d.Time = t
	return nil
}

// CreateEmployeeDTO is the body of POST /employees and /auth/register.
type CreateEmployeeDTO struct {
	Document            string          `json:"document"`
	GivenNames          string          `json:"given_names"`
	Surname             string          `json:"surname"`
	Email               string          `json:"email"`
	Phone               string          `json:"phone"`
	Address             string          `json:"address"`
	BirthDate           Date            `json:"birth_date"`
	HireDate            Date            `json:"hire_date"`
	Salary              decimal.Decimal `json:"salary"`
	ProfessionalSummary string          `json:"professional_summary"`
	Status              string          `json:"status"`
	JobTitle            string          `json:"job_title"`
	Department          string          `json:"department"`
	EducationLevel      string          `json:"education_level"`
}

func (d CreateEmployeeDTO) Validate() *appErrors.AppError {
	v := validation.NewValidator()
	v.Field("document", d.Document).Required().MaxLength(32)
	v.Field("given_names", d.GivenNames).Required().MaxLength(120)
	v.Field("surname", d.Surname).Required().MaxLength(120)
	v.Field("email", d.Email).Email()
	v.Field("salary", d.Salary).NonNegative()
	v.Field("birth_date", d.BirthDate.Time).NotFuture()
	v.Field("status", d.Status).Custom(validStatus("status"))
	return v.Validate()
}

func (d CreateEmployeeDTO) ToDraft() Draft {
	status, _ := ParseStatus(d.Status)
	return Draft{
		Document:       d.Document,
		GivenNames:     d.GivenNames,
		Surname:        d.Surname,
		Email:          d.Email,
		Phone:          d.Phone,
		Address:        d.Address,
		Summary:        d.ProfessionalSummary,
		BirthDate:      d.BirthDate.Time,
		HireDate:       d.HireDate.Time,
		Salary:         d.Salary,
		Status:         status,
		JobTitle:       d.JobTitle,
		Department:     d.Department,
		EducationLevel: d.EducationLevel,
	}
}

// UpdateEmployeeDTO patches an employee. Document and email are identity and
// cannot change here; nil fields are left as they are.
type UpdateEmployeeDTO struct {
	GivenNames          *string          `json:"given_names,omitempty"`
	Surname             *string          `json:"surname,omitempty"`
	Phone               *string          `json:"phone,omitempty"`
	Address             *string          `json:"address,omitempty"`
	BirthDate           *Date            `json:"birth_date,omitempty"`
	HireDate            *Date            `json:"hire_date,omitempty"`
	Salary              *decimal.Decimal `json:"salary,omitempty"`
	ProfessionalSummary *string          `json:"professional_summary,omitempty"`
	Status              *string          `json:"status,omitempty"`
	JobTitle            *string          `json:"job_title,omitempty"`
	Department          *string          `json:"department,omitempty"`
	EducationLevel      *string          `json:"education_level,omitempty"`
}

func (d UpdateEmployeeDTO) Validate() *appErrors.AppError {
	v := validation.NewValidator()
	if d.GivenNames != nil {
		v.Field("given_names", *d.GivenNames).Required().MaxLength(120)
	}
	if d.Surname != nil {
		v.Field("surname", *d.Surname).Required().MaxLength(120)
	}
	if d.Salary != nil {
		v.Field("salary", *d.Salary).NonNegative()
	}
	if d.BirthDate != nil {
		v.Field("birth_date", d.BirthDate.Time).NotFuture()
	}
	if d.Status != nil {
		v.Field("status", *d.Status).Required().Custom(validStatus("status"))
	}
	for name, value := range map[string]*string{
		"job_title":       d.JobTitle,
		"department":      d.Department,
		"education_level": d.EducationLevel,
	} {
		if value != nil {
			v.Field(name, *value).Required()
		}
	}
	return v.Validate()
}

func validStatus(field string) func(interface{}) *appErrors.AppError {
	return func(value interface{}) *appErrors.AppError {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, ok := ParseStatus(s); !ok {
			return appErrors.NewValidationFieldError(field, "status must be one of active, inactive, on_vacation", appErrors.ErrCodeInvalidStatus)
		}
		return nil
	}
}

type ListFilter struct {
	Search       string
	Status       Status
	DepartmentID int64
}

type EmployeeResponse struct {
	ID                  int64           `json:"id"`
	Document            string          `json:"document"`
	GivenNames          string          `json:"given_names"`
	Surname             string          `json:"surname"`
	FullName            string          `json:"full_name"`
	Email               string          `json:"email"`
	Phone               string          `json:"phone"`
	Address             string          `json:"address"`
	BirthDate           Date            `json:"birth_date"`
	HireDate            Date            `json:"hire_date"`
	Salary              decimal.Decimal `json:"salary"`
	ProfessionalSummary string          `json:"professional_summary"`
	Status              Status          `json:"status"`
	JobTitleID          int64           `json:"job_title_id"`
	JobTitle            string          `json:"job_title"`
	DepartmentID        int64           `json:"department_id"`
	Department          string          `json:"department"`
	EducationLevelID    int64           `json:"education_level_id"`
	EducationLevel      string          `json:"education_level"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// DimensionNames carries the display names for an employee's references.
type DimensionNames struct {
	JobTitle       string
	Department     string
	EducationLevel string
}

func (e *Employee) ToResponse(names DimensionNames) EmployeeResponse {
	return EmployeeResponse{
		ID:                  e.ID,
		Document:            e.Document,
		GivenNames:          e.GivenNames,
		Surname:             e.Surname,
		FullName:            e.FullName(),
		Email:               e.Email,
		Phone:               e.Phone,
		Address:             e.Address,
		BirthDate:           Date{e.BirthDate},
		HireDate:            Date{e.HireDate},
		Salary:              e.Salary,
		ProfessionalSummary: e.ProfessionalSummary,
		Status:              e.Status,
		JobTitleID:          e.JobTitleID,
		JobTitle:            names.JobTitle,
		DepartmentID:        e.DepartmentID,
		Department:          names.Department,
		EducationLevelID:    e.EducationLevelID,
		EducationLevel:      names.EducationLevel,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

type DepartmentCount struct {
	Department string `json:"department" db:"department"`
	Count      int64  `json:"count" db:"count"`
}

type Stats struct {
	Total        int64             `json:"total"`
	Active       int64             `json:"active"`
	Inactive     int64             `json:"inactive"`
	OnVacation   int64             `json:"on_vacation"`
	Departments  int64             `json:"departments"`
	ByDepartment []DepartmentCount `json:"by_department"`
}
