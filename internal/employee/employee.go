package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	employeeDatamodel "github.com/frahmantamala/talento-plus/internal/core/datamodel/employee"
	"github.com/frahmantamala/talento-plus/internal/dimension"
	"github.com/frahmantamala/talento-plus/pkg/textnorm"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusOnVacation Status = "on_vacation"
)

var Statuses = []string{string(StatusActive), string(StatusInactive), string(StatusOnVacation)}

var statusAliases = map[string]Status{
	"active":        StatusActive,
	"activo":        StatusActive,
	"activa":        StatusActive,
	"inactive":      StatusInactive,
	"inactivo":      StatusInactive,
	"inactiva":      StatusInactive,
	"on_vacation":   StatusOnVacation,
	"vacaciones":    StatusOnVacation,
	"de vacaciones": StatusOnVacation,
	"en vacaciones": StatusOnVacation,
}

// ParseStatus maps English or Spanish status text to a Status.
func ParseStatus(s string) (Status, bool) {
	st, ok := statusAliases[textnorm.Fold(s)]
	return st, ok
}

// Values used when a source leaves an optional field blank.
const (
	DefaultJobTitle       = "Sin Cargo"
	DefaultDepartment     = "Sin Departamento"
	DefaultEducationLevel = "Bachillerato"
	DefaultAddress        = "No registrada"
	DefaultPhone          = "0000000"
	DefaultSummary        = "Importado"
	DefaultAgeYears       = 20
)

type Employee struct {
	ID                  int64
	Document            string
	GivenNames          string
	Surname             string
	BirthDate           time.Time
	Address             string
	Phone               string
	Email               string
	Salary              decimal.Decimal
	HireDate            time.Time
	ProfessionalSummary string
	Status              Status
	JobTitleID          int64
	DepartmentID        int64
	EducationLevelID    int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.GivenNames + " " + e.Surname)
}

// Draft is an employee as typed by a person or read from a spreadsheet row,
// with dimensions still named rather than referenced.
type Draft struct {
	Document       string
	GivenNames     string
	Surname        string
	Email          string
	Phone          string
	Address        string
	Summary        string
	BirthDate      time.Time
	HireDate       time.Time
	Salary         decimal.Decimal
	Status         Status
	JobTitle       string
	Department     string
	EducationLevel string
}

// WithDefaults trims every text field and fills blanks with the documented
// defaults. The email is synthesized from the document when missing and
// normalized either way.
func (d Draft) WithDefaults(now time.Time, emailDomain string) Draft {
	d.Document = strings.TrimSpace(d.Document)
	d.GivenNames = strings.TrimSpace(d.GivenNames)
	d.Surname = strings.TrimSpace(d.Surname)
	d.Email = textnorm.NormalizeEmailWithDomain(d.Email, d.Document, emailDomain)
	d.Phone = orDefault(d.Phone, DefaultPhone)
	d.Address = orDefault(d.Address, DefaultAddress)
	d.Summary = orDefault(d.Summary, DefaultSummary)
	d.JobTitle = orDefault(d.JobTitle, DefaultJobTitle)
	d.Department = orDefault(d.Department, DefaultDepartment)
	d.EducationLevel = orDefault(d.EducationLevel, DefaultEducationLevel)
	if d.BirthDate.IsZero() {
		d.BirthDate = now.AddDate(-DefaultAgeYears, 0, 0)
	}
	if d.HireDate.IsZero() {
		d.HireDate = now
	}
	if d.Status == "" {
		d.Status = StatusActive
	}
	return d
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// DimensionResolver turns a dimension name into its id, creating it if needed.
type DimensionResolver interface {
	Resolve(ctx context.Context, kind dimension.Kind, name string) (int64, error)
}

// Resolve reconciles the draft's named dimensions and returns the employee
// ready to persist.
func (d Draft) Resolve(ctx context.Context, dims DimensionResolver) (*Employee, error) {
	jobTitleID, err := dims.Resolve(ctx, dimension.KindJobTitle, d.JobTitle)
	if err != nil {
		return nil, fmt.Errorf("job title: %w", err)
	}
	departmentID, err := dims.Resolve(ctx, dimension.KindDepartment, d.Department)
	if err != nil {
		return nil, fmt.Errorf("department: %w", err)
	}
	educationLevelID, err := dims.Resolve(ctx, dimension.KindEducationLevel, d.EducationLevel)
	if err != nil {
		return nil, fmt.Errorf("education level: %w", err)
	}

	return &Employee{
		Document:            d.Document,
		GivenNames:          d.GivenNames,
		Surname:             d.Surname,
		BirthDate:           dateOnly(d.BirthDate),
		Address:             d.Address,
		Phone:               d.Phone,
		Email:               d.Email,
		Salary:              d.Salary,
		HireDate:            dateOnly(d.HireDate),
		ProfessionalSummary: d.Summary,
		Status:              d.Status,
		JobTitleID:          jobTitleID,
		DepartmentID:        departmentID,
		EducationLevelID:    educationLevelID,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:                  e.ID,
		Document:            e.Document,
		GivenNames:          e.GivenNames,
		Surname:             e.Surname,
		BirthDate:           e.BirthDate,
		Address:             e.Address,
		Phone:               e.Phone,
		Email:               e.Email,
		Salary:              e.Salary,
		HireDate:            e.HireDate,
		ProfessionalSummary: e.ProfessionalSummary,
		Status:              string(e.Status),
		JobTitleID:          e.JobTitleID,
		DepartmentID:        e.DepartmentID,
		EducationLevelID:    e.EducationLevelID,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func FromDataModel(m *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:                  m.ID,
		Document:            m.Document,
		GivenNames:          m.GivenNames,
		Surname:             m.Surname,
		BirthDate:           m.BirthDate,
		Address:             m.Address,
		Phone:               m.Phone,
		Email:               m.Email,
		Salary:              m.Salary,
		HireDate:            m.HireDate,
		ProfessionalSummary: m.ProfessionalSummary,
		Status:              Status(m.Status),
		JobTitleID:          m.JobTitleID,
		DepartmentID:        m.DepartmentID,
		EducationLevelID:    m.EducationLevelID,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
