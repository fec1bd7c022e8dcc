package postgres

import (
	"context"
	"errors"
	"strings"

	employeeDatamodel "github.com/frahmantamala/talento-plus/internal/core/datamodel/employee"
	"github.com/frahmantamala/talento-plus/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) first(ctx context.Context, query string, arg interface{}) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employee.Employee, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EmployeeRepository) GetByDocument(ctx context.Context, document string) (*employee.Employee, error) {
	return r.first(ctx, "document = ?", document)
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]*employee.Employee, error) {
	q := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{})

	if s := strings.ToLower(strings.TrimSpace(filter.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(given_names) LIKE ? OR LOWER(surname) LIKE ? OR document LIKE ? OR email LIKE ?",
			like, like, like, like)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.DepartmentID != 0 {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}

	var rows []employeeDatamodel.Employee
	if err := q.Order("surname ASC, given_names ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]*employee.Employee, len(rows))
	for i := range rows {
		result[i] = employee.FromDataModel(&rows[i])
	}
	return result, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	return insert(r.db.WithContext(ctx), e)
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	return update(r.db.WithContext(ctx), e)
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&employeeDatamodel.Employee{}, id).Error
}

func (r *EmployeeRepository) SaveBatch(ctx context.Context, employees []*employee.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range employees {
			var err error
			if e.ID == 0 {
				err = insert(tx, e)
			} else {
				err = update(tx, e)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func insert(db *gorm.DB, e *employee.Employee) error {
	row := employee.ToDataModel(e)
	if err := db.Create(row).Error; err != nil {
		return err
	}
	e.ID = row.ID
	e.CreatedAt = row.CreatedAt
	e.UpdatedAt = row.UpdatedAt
	return nil
}

// update writes every column, zero values included, except identity and
// creation time.
func update(db *gorm.DB, e *employee.Employee) error {
	row := employee.ToDataModel(e)
	res := db.Model(row).Select("*").Omit("id", "created_at").Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	e.UpdatedAt = row.UpdatedAt
	return nil
}
