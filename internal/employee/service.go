package employee

import (
	"context"
	"log/slog"
	"strings"
	"time"

	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/auth"
	"github.com/frahmantamala/talento-plus/internal/dimension"
	"github.com/frahmantamala/talento-plus/pkg/textnorm"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*Employee, error)
	GetByDocument(ctx context.Context, document string) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context, filter ListFilter) ([]*Employee, error)
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id int64) error
	// SaveBatch inserts new employees and updates existing ones in a single
	// transaction; either every row lands or none does.
	SaveBatch(ctx context.Context, employees []*Employee) error
}

type StatsReader interface {
	Stats(ctx context.Context) (*Stats, error)
}

// AccountProvisioner is the slice of the auth service employees depend on.
type AccountProvisioner interface {
	EnsureAccount(ctx context.Context, email, credential string) (*auth.Account, bool, error)
	AccountExists(ctx context.Context, email string) (bool, error)
	DeleteAccount(ctx context.Context, email string) error
}

// DimensionDirectory reconciles and names dimensions.
type DimensionDirectory interface {
	NewReconciler() *dimension.Reconciler
	Names(ctx context.Context, kind dimension.Kind) (map[int64]string, error)
	NameOf(ctx context.Context, kind dimension.Kind, id int64) (string, error)
}

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateEmployeeDTO) (*EmployeeResponse, error)
	GetByID(ctx context.Context, id int64) (*EmployeeResponse, error)
	List(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error)
	Update(ctx context.Context, id int64, dto UpdateEmployeeDTO) (*EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*Stats, error)
}

type Service struct {
	repo        RepositoryAPI
	dims        DimensionDirectory
	accounts    AccountProvisioner
	stats       StatsReader
	emailDomain string
	logger      *slog.Logger
	now         func() time.Time
}

func NewService(repo RepositoryAPI, dims DimensionDirectory, accounts AccountProvisioner, stats StatsReader, emailDomain string, logger *slog.Logger) *Service {
	if emailDomain == "" {
		emailDomain = textnorm.DefaultEmailDomain
	}
	return &Service{
		repo:        repo,
		dims:        dims,
		accounts:    accounts,
		stats:       stats,
		emailDomain: emailDomain,
		logger:      logger,
		now:         time.Now,
	}
}

// Create registers one employee: identity checks, dimension get-or-create,
// insert, then the login account. If the account cannot be provisioned the
// employee is removed again.
func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (*EmployeeResponse, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	draft := dto.ToDraft().WithDefaults(s.now(), s.emailDomain)
	if err := s.ensureUnique(ctx, draft); err != nil {
		return nil, err
	}

	emp, err := draft.Resolve(ctx, s.dims.NewReconciler())
	if err != nil {
		s.logger.Error("failed to resolve dimensions", "document", draft.Document, "error", err)
		return nil, appErrors.ErrInvalidDimension.WithCause(err)
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error("failed to create employee", "document", emp.Document, "error", err)
		return nil, appErrors.NewInternalError("failed to create employee", err)
	}

	if _, _, err := s.accounts.EnsureAccount(ctx, emp.Email, emp.Document); err != nil {
		s.logger.Warn("account provisioning failed, rolling back employee", "employee_id", emp.ID, "error", err)
		if delErr := s.repo.Delete(ctx, emp.ID); delErr != nil {
			s.logger.Error("failed to roll back employee", "employee_id", emp.ID, "error", delErr)
		}
		if appErr, ok := appErrors.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, appErrors.NewInternalError("failed to provision account", err)
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "email", emp.Email)
	return s.respond(ctx, emp)
}

func (s *Service) ensureUnique(ctx context.Context, draft Draft) error {
	byDoc, err := s.repo.GetByDocument(ctx, draft.Document)
	if err != nil {
		return appErrors.NewInternalError("failed to check document", err)
	}
	if byDoc != nil {
		return appErrors.ErrDuplicateDocument
	}

	byEmail, err := s.repo.GetByEmail(ctx, draft.Email)
	if err != nil {
		return appErrors.NewInternalError("failed to check email", err)
	}
	if byEmail != nil {
		return appErrors.ErrDuplicateEmail
	}

	exists, err := s.accounts.AccountExists(ctx, draft.Email)
	if err != nil {
		return appErrors.NewInternalError("failed to check account", err)
	}
	if exists {
		return appErrors.ErrDuplicateEmail
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*EmployeeResponse, error) {
	emp, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, emp)
}

func (s *Service) GetByDocument(ctx context.Context, document string) (*EmployeeResponse, error) {
	emp, err := s.repo.GetByDocument(ctx, strings.TrimSpace(document))
	if err != nil {
		return nil, appErrors.NewInternalError("failed to get employee", err)
	}
	if emp == nil {
		return nil, appErrors.ErrEmployeeNotFound
	}
	return s.respond(ctx, emp)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error) {
	emps, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, appErrors.NewInternalError("failed to list employees", err)
	}

	names := make(map[dimension.Kind]map[int64]string, len(dimension.Kinds))
	for _, kind := range dimension.Kinds {
		names[kind], err = s.dims.Names(ctx, kind)
		if err != nil {
			return nil, appErrors.NewInternalError("failed to load dimensions", err)
		}
	}

	responses := make([]EmployeeResponse, 0, len(emps))
	for _, e := range emps {
		responses = append(responses, e.ToResponse(DimensionNames{
			JobTitle:       names[dimension.KindJobTitle][e.JobTitleID],
			Department:     names[dimension.KindDepartment][e.DepartmentID],
			EducationLevel: names[dimension.KindEducationLevel][e.EducationLevelID],
		}))
	}
	return responses, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateEmployeeDTO) (*EmployeeResponse, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	emp, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&emp.GivenNames, dto.GivenNames)
	setString(&emp.Surname, dto.Surname)
	setString(&emp.Phone, dto.Phone)
	setString(&emp.Address, dto.Address)
	setString(&emp.ProfessionalSummary, dto.ProfessionalSummary)
	if dto.BirthDate != nil {
		emp.BirthDate = dateOnly(dto.BirthDate.Time)
	}
	if dto.HireDate != nil {
		emp.HireDate = dateOnly(dto.HireDate.Time)
	}
	if dto.Salary != nil {
		emp.Salary = *dto.Salary
	}
	if dto.Status != nil {
		emp.Status, _ = ParseStatus(*dto.Status)
	}

	rec := s.dims.NewReconciler()
	for _, ref := range []struct {
		kind dimension.Kind
		name *string
		id   *int64
	}{
		{dimension.KindJobTitle, dto.JobTitle, &emp.JobTitleID},
		{dimension.KindDepartment, dto.Department, &emp.DepartmentID},
		{dimension.KindEducationLevel, dto.EducationLevel, &emp.EducationLevelID},
	} {
		if ref.name == nil {
			continue
		}
		resolved, err := rec.Resolve(ctx, ref.kind, *ref.name)
		if err != nil {
			return nil, appErrors.ErrInvalidDimension.WithCause(err)
		}
		*ref.id = resolved
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		s.logger.Error("failed to update employee", "employee_id", id, "error", err)
		return nil, appErrors.NewInternalError("failed to update employee", err)
	}
	return s.respond(ctx, emp)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// Delete removes the employee and, best effort, its login.
func (s *Service) Delete(ctx context.Context, id int64) error {
	emp, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.NewInternalError("failed to delete employee", err)
	}
	if err := s.accounts.DeleteAccount(ctx, emp.Email); err != nil {
		s.logger.Warn("failed to delete account", "email", emp.Email, "error", err)
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.stats.Stats(ctx)
	if err != nil {
		return nil, appErrors.NewInternalError("failed to compute stats", err)
	}
	return stats, nil
}

// ProfileByEmail lets the auth domain identify the employee behind a login.
func (s *Service) ProfileByEmail(ctx context.Context, email string) (*auth.Profile, error) {
	emp, err := s.repo.GetByEmail(ctx, textnorm.Fold(email))
	if err != nil || emp == nil {
		return nil, err
	}
	return &auth.Profile{
		EmployeeID: emp.ID,
		Email:      emp.Email,
		FullName:   emp.FullName(),
		Active:     emp.Status != StatusInactive,
	}, nil
}

func (s *Service) load(ctx context.Context, id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.NewInternalError("failed to get employee", err)
	}
	if emp == nil {
		return nil, appErrors.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) respond(ctx context.Context, emp *Employee) (*EmployeeResponse, error) {
	var names DimensionNames
	var err error
	if names.JobTitle, err = s.dims.NameOf(ctx, dimension.KindJobTitle, emp.JobTitleID); err != nil {
		return nil, appErrors.NewInternalError("failed to load job title", err)
	}
	if names.Department, err = s.dims.NameOf(ctx, dimension.KindDepartment, emp.DepartmentID); err != nil {
		return nil, appErrors.NewInternalError("failed to load department", err)
	}
	if names.EducationLevel, err = s.dims.NameOf(ctx, dimension.KindEducationLevel, emp.EducationLevelID); err != nil {
		return nil, appErrors.NewInternalError("failed to load education level", err)
	}
	resp := emp.ToResponse(names)
	return &resp, nil
}
