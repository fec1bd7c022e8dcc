package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                  int64           `gorm:"primaryKey"`
	Document            string          `gorm:"column:document;uniqueIndex;not null"`
	GivenNames          string          `gorm:"column:given_names;not null"`
	Surname             string          `gorm:"column:surname;not null"`
	BirthDate           time.Time       `gorm:"column:birth_date"`
	Address             string          `gorm:"column:address;not null"`
	Phone               string          `gorm:"column:phone;not null"`
	Email               string          `gorm:"column:email;uniqueIndex;not null"`
	Salary              decimal.Decimal `gorm:"column:salary;type:numeric(14,2);not null"`
	HireDate            time.Time       `gorm:"column:hire_date"`
	ProfessionalSummary string          `gorm:"column:professional_summary"`
	Status              string          `gorm:"column:status;not null;default:active"`
	JobTitleID          int64           `gorm:"column:job_title_id;not null"`
	DepartmentID        int64           `gorm:"column:department_id;not null"`
	EducationLevelID    int64           `gorm:"column:education_level_id;not null"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string { return "employees" }
