package postgres

import (
	"context"

	"github.com/frahmantamala/talento-plus/internal/employee"
	"github.com/jmoiron/sqlx"
)

// StatsReader answers dashboard aggregates with plain SQL over the shared pool.
type StatsReader struct {
	db *sqlx.DB
}

func NewStatsReader(db *sqlx.DB) *StatsReader {
	return &StatsReader{db: db}
}

const statusCountsQuery = `
SELECT status, COUNT(*) AS count
FROM employees
GROUP BY status`

const departmentCountsQuery = `
SELECT d.name AS department, COUNT(e.id) AS count
FROM departments d
LEFT JOIN employees e ON e.department_id = d.id
GROUP BY d.id, d.name
ORDER BY d.name`

func (r *StatsReader) Stats(ctx context.Context) (*employee.Stats, error) {
	var byStatus []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &byStatus, statusCountsQuery); err != nil {
		return nil, err
	}

	stats := &employee.Stats{ByDepartment: []employee.DepartmentCount{}}
	for _, row := range byStatus {
		stats.Total += row.Count
		switch employee.Status(row.Status) {
		case employee.StatusActive:
			stats.Active = row.Count
		case employee.StatusInactive:
			stats.Inactive = row.Count
		case employee.StatusOnVacation:
			stats.OnVacation = row.Count
		}
	}

	if err := r.db.SelectContext(ctx, &stats.ByDepartment, departmentCountsQuery); err != nil {
		return nil, err
	}
	stats.Departments = int64(len(stats.ByDepartment))
	return stats, nil
}
