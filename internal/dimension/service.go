package dimension

import (
	"context"
	"log/slog"
)

type RepositoryAPI interface {
	FindByName(ctx context.Context, kind Kind, name string) (*Dimension, error)
	GetByID(ctx context.Context, kind Kind, id int64) (*Dimension, error)
	Create(ctx context.Context, kind Kind, name string) (*Dimension, error)
	ListByKind(ctx context.Context, kind Kind) ([]*Dimension, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// NewReconciler returns a fresh get-or-create resolver over the same store.
func (s *Service) NewReconciler() *Reconciler {
	return NewReconciler(s.repo, s.logger)
}

func (s *Service) List(ctx context.Context, kind Kind) ([]DimensionResponse, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	dims, err := s.repo.ListByKind(ctx, kind)
	if err != nil {
		s.logger.Error("failed to list dimensions", "kind", kind, "error", err)
		return nil, err
	}

	responses := make([]DimensionResponse, 0, len(dims))
	for _, d := range dims {
		responses = append(responses, d.ToResponse())
	}
	return responses, nil
}

// Names maps ids to names for one kind, used to render employee views.
func (s *Service) Names(ctx context.Context, kind Kind) (map[int64]string, error) {
	dims, err := s.repo.ListByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(dims))
	for _, d := range dims {
		names[d.ID] = d.Name
	}
	return names, nil
}

// NameOf returns the name of a single dimension, or "" when it does not exist.
func (s *Service) NameOf(ctx context.Context, kind Kind, id int64) (string, error) {
	d, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "", nil
	}
	return d.Name, nil
}
