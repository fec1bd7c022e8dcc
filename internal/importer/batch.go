package importer

import (
	"context"
	"fmt"

	"github.com/frahmantamala/talento-plus/internal/employee"
)

type stagedEmployee struct {
	row      int
	employee *employee.Employee
	updated  bool
}

// unitOfWork collects the employees of one batch and writes them in a single
// transaction. Staging never touches the employee table.
type unitOfWork struct {
	store      employee.RepositoryAPI
	staged     []stagedEmployee
	byDocument map[string]int
	byEmail    map[string]int
}

func newUnitOfWork(store employee.RepositoryAPI) *unitOfWork {
	return &unitOfWork{
		store:      store,
		byDocument: make(map[string]int),
		byEmail:    make(map[string]int),
	}
}

// Stage queues emp for commit. An employee already stored under the same
// document is updated in place; columns the sheet does not carry keep their
// stored values. The stored email identifies the login account: a blank email
// cell keeps it and a different one fails the row.
func (u *unitOfWork) Stage(ctx context.Context, row int, emp *employee.Employee, layout Layout, emailGiven bool) error {
	if prev, ok := u.byDocument[emp.Document]; ok {
		return fmt.Errorf("document %s already appears in row %d", emp.Document, prev)
	}

	existing, err := u.store.GetByDocument(ctx, emp.Document)
	if err != nil {
		return fmt.Errorf("lookup document %s: %w", emp.Document, err)
	}
	if existing != nil {
		if emailGiven && emp.Email != existing.Email {
			return fmt.Errorf("email of document %s cannot change from %s to %s", emp.Document, existing.Email, emp.Email)
		}
		keepUnsupplied(existing, emp, layout)
		emp.Email = existing.Email
	}

	if prev, ok := u.byEmail[emp.Email]; ok {
		return fmt.Errorf("email %s already appears in row %d", emp.Email, prev)
	}
	owner, err := u.store.GetByEmail(ctx, emp.Email)
	if err != nil {
		return fmt.Errorf("lookup email %s: %w", emp.Email, err)
	}
	if owner != nil && owner.ID != emp.ID {
		return fmt.Errorf("email %s already belongs to employee with document %s", emp.Email, owner.Document)
	}

	u.byDocument[emp.Document] = row
	u.byEmail[emp.Email] = row
	u.staged = append(u.staged, stagedEmployee{row: row, employee: emp, updated: existing != nil})
	return nil
}

func keepUnsupplied(existing, emp *employee.Employee, layout Layout) {
	emp.ID = existing.ID
	emp.CreatedAt = existing.CreatedAt

	keep := []struct {
		field Field
		apply func()
	}{
		{FieldSurname, func() { emp.Surname = existing.Surname }},
		{FieldPhone, func() { emp.Phone = existing.Phone }},
		{FieldAddress, func() { emp.Address = existing.Address }},
		{FieldBirthDate, func() { emp.BirthDate = existing.BirthDate }},
		{FieldHireDate, func() { emp.HireDate = existing.HireDate }},
		{FieldSalary, func() { emp.Salary = existing.Salary }},
		{FieldStatus, func() { emp.Status = existing.Status }},
		{FieldSummary, func() { emp.ProfessionalSummary = existing.ProfessionalSummary }},
		{FieldJobTitle, func() { emp.JobTitleID = existing.JobTitleID }},
		{FieldDepartment, func() { emp.DepartmentID = existing.DepartmentID }},
		{FieldEducationLevel, func() { emp.EducationLevelID = existing.EducationLevelID }},
	}
	for _, k := range keep {
		if !layout.Has(k.field) {
			k.apply()
		}
	}
}

// CommitAll writes every staged employee in one transaction.
func (u *unitOfWork) CommitAll(ctx context.Context) error {
	employees := make([]*employee.Employee, len(u.staged))
	for i, s := range u.staged {
		employees[i] = s.employee
	}
	return u.store.SaveBatch(ctx, employees)
}

func (u *unitOfWork) Staged() []stagedEmployee {
	return u.staged
}
