package dimension

import "time"

// Record is the row shape shared by every dimension table.
type Record struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

type JobTitle struct {
	Record
}

func (JobTitle) TableName() string { return "job_titles" }

type Department struct {
	Record
}

func (Department) TableName() string { return "departments" }

type EducationLevel struct {
	Record
}

func (EducationLevel) TableName() string { return "education_levels" }
