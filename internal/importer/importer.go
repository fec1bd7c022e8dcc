package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/auth"
	"github.com/frahmantamala/talento-plus/internal/core/common/validation"
	"github.com/frahmantamala/talento-plus/internal/core/events"
	"github.com/frahmantamala/talento-plus/internal/dimension"
	"github.com/frahmantamala/talento-plus/internal/employee"
	"github.com/google/uuid"
)

type DimensionSource interface {
	NewReconciler() *dimension.Reconciler
}

type AccountProvisioner interface {
	EnsureAccount(ctx context.Context, email, credential string) (*auth.Account, bool, error)
}

type ServiceAPI interface {
	ImportEmployees(ctx context.Context, r io.Reader) (*Result, error)
}

type Service struct {
	employees   employee.RepositoryAPI
	dims        DimensionSource
	accounts    AccountProvisioner
	publisher   events.Publisher
	emailDomain string
	logger      *slog.Logger
	now         func() time.Time
}

func NewService(employees employee.RepositoryAPI, dims DimensionSource, accounts AccountProvisioner, publisher events.Publisher, emailDomain string, logger *slog.Logger) *Service {
	return &Service{
		employees:   employees,
		dims:        dims,
		accounts:    accounts,
		publisher:   publisher,
		emailDomain: emailDomain,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock replaces the time source used for default dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ImportEmployees reads sheet 1 of an xlsx stream and imports one employee
// per data row. Bad rows are reported in the result and do not stop the
// batch. Employees commit in a single transaction; login accounts are only
// provisioned after that commit succeeds. The returned error is non-nil only
// when nothing was imported.
func (s *Service) ImportEmployees(ctx context.Context, r io.Reader) (*Result, error) {
	result := newResult(uuid.NewString())
	log := s.logger.With("batch_id", result.BatchID)

	sheet, err := ReadFirstSheet(r)
	if err != nil {
		log.Error("failed to read spreadsheet", "error", err)
		return nil, err
	}
	result.Sheet = sheet.Name

	layout := NewLayout(ResolveHeaders(sheet.HeaderCells()))
	if !layout.Has(FieldDocument) || !layout.Has(FieldGivenNames) {
		log.Warn("spreadsheet lacks identity columns, every row will be skipped",
			"has_document", layout.Has(FieldDocument), "has_given_names", layout.Has(FieldGivenNames))
	}

	reconciler := s.dims.NewReconciler()
	uow := newUnitOfWork(s.employees)
	now := s.now()

	for _, row := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			log.Warn("import cancelled before commit", "row", row.Number, "error", err)
			return nil, appErrors.ErrImportCancelled.WithCause(fmt.Errorf("at row %d: %w", row.Number, err))
		}

		skipped, err := s.stageRow(ctx, row, layout, sheet.Date1904, now, reconciler, uow)
		switch {
		case err != nil:
			log.Warn("row failed", "row", row.Number, "error", err)
			result.Failures = append(result.Failures, RowFailure{Row: row.Number, Reason: err.Error()})
		case skipped:
			log.Debug("row skipped", "row", row.Number)
			result.SkippedRows = append(result.SkippedRows, row.Number)
		}
	}

	result.DimensionsCreated = reconciler.Created()

	if err := uow.CommitAll(ctx); err != nil {
		log.Error("import commit failed", "staged", len(uow.Staged()), "error", err)
		return nil, appErrors.ErrImportCommitFailed.WithCause(err)
	}

	// Employees are committed; finish their logins even if the caller goes away.
	provisionCtx := context.WithoutCancel(ctx)
	for _, st := range uow.Staged() {
		emp := st.employee
		result.Employees = append(result.Employees, emp)
		result.Imported = append(result.Imported, ImportedEmployee{
			Row:      st.row,
			ID:       emp.ID,
			Document: emp.Document,
			Email:    emp.Email,
			Updated:  st.updated,
		})

		_, created, err := s.accounts.EnsureAccount(provisionCtx, emp.Email, emp.Document)
		if err != nil {
			log.Warn("account provisioning failed", "row", st.row, "email", emp.Email, "error", err)
			result.Warnings = append(result.Warnings, ProvisionWarning{Row: st.row, Email: emp.Email, Reason: err.Error()})
			continue
		}
		if created {
			result.AccountsCreated++
		}
	}

	log.Info("import finished",
		"imported", len(result.Imported),
		"failed", len(result.Failures),
		"skipped", len(result.SkippedRows),
		"accounts_created", result.AccountsCreated,
		"dimensions_created", result.DimensionsCreated)

	if s.publisher != nil {
		evt := events.NewEmployeesImportedEvent(result.BatchID, len(result.Imported), len(result.Failures), result.AccountsCreated)
		if err := s.publisher.Publish(provisionCtx, evt); err != nil {
			log.Warn("failed to publish import event", "error", err)
		}
	}
	return result, nil
}

// stageRow runs extract, normalize, reconcile and stage for one row. A panic
// anywhere in that chain fails the row, not the batch.
func (s *Service) stageRow(ctx context.Context, row Row, layout Layout, date1904 bool, now time.Time, reconciler *dimension.Reconciler, uow *unitOfWork) (skipped bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("unexpected error: %v", rec)
		}
	}()

	draft := extractDraft(layout, row, date1904, now)
	if draft.Document == "" || draft.GivenNames == "" {
		return true, nil
	}
	draft = draft.WithDefaults(now, s.emailDomain)

	if appErr := validation.ValidateSalary(draft.Salary); appErr != nil {
		return false, appErr
	}
	if appErr := validation.ValidateDocument(draft.Document); appErr != nil {
		return false, appErr
	}

	emp, err := draft.Resolve(ctx, reconciler)
	if err != nil {
		return false, err
	}
	return false, uow.Stage(ctx, row.Number, emp, layout, layout.String(row, FieldEmail) != "")
}

func extractDraft(layout Layout, row Row, date1904 bool, now time.Time) employee.Draft {
	draft := employee.Draft{
		Document:       layout.String(row, FieldDocument),
		GivenNames:     layout.String(row, FieldGivenNames),
		Surname:        layout.String(row, FieldSurname),
		Email:          layout.String(row, FieldEmail),
		Phone:          layout.String(row, FieldPhone),
		Address:        layout.String(row, FieldAddress),
		Summary:        layout.String(row, FieldSummary),
		JobTitle:       layout.String(row, FieldJobTitle),
		Department:     layout.String(row, FieldDepartment),
		EducationLevel: layout.String(row, FieldEducationLevel),
		Salary:         layout.Decimal(row, FieldSalary),
		HireDate:       layout.Date(row, FieldHireDate, now, date1904),
		BirthDate:      layout.Date(row, FieldBirthDate, time.Time{}, date1904),
	}
	if status, ok := employee.ParseStatus(layout.String(row, FieldStatus)); ok {
		draft.Status = status
	}
	return draft
}
