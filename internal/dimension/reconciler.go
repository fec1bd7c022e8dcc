package dimension

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Reconciler resolves free-text dimension names to ids with get-or-create
// semantics. It keeps an overlay of every name it has resolved, so callers
// observe their own earlier creations without re-reading the store. A
// Reconciler is meant to live for one batch; two batches running concurrently
// may still create the same new name twice.
type Reconciler struct {
	repo    RepositoryAPI
	logger  *slog.Logger
	mu      sync.Mutex
	overlay map[Kind]map[string]int64
	created int
}

func NewReconciler(repo RepositoryAPI, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		repo:    repo,
		logger:  logger,
		overlay: make(map[Kind]map[string]int64, len(Kinds)),
	}
}

// Resolve returns the id of the dimension named name, creating and persisting
// it when no case-insensitive match exists.
func (r *Reconciler) Resolve(ctx context.Context, kind Kind, name string) (int64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%s: %w", kind, ErrEmptyName)
	}
	key := Key(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.overlay[kind][key]; ok {
		return id, nil
	}

	existing, err := r.repo.FindByName(ctx, kind, name)
	if err != nil {
		return 0, fmt.Errorf("find %s %q: %w", kind, name, err)
	}
	if existing != nil {
		r.remember(kind, key, existing.ID)
		return existing.ID, nil
	}

	created, err := r.repo.Create(ctx, kind, name)
	if err != nil {
		return 0, fmt.Errorf("create %s %q: %w", kind, name, err)
	}
	r.remember(kind, key, created.ID)
	r.created++

	r.logger.Info("dimension created", "kind", kind, "name", name, "id", created.ID)
	return created.ID, nil
}

// Created reports how many dimension records this reconciler has persisted.
func (r *Reconciler) Created() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

func (r *Reconciler) remember(kind Kind, key string, id int64) {
	names, ok := r.overlay[kind]
	if !ok {
		names = make(map[string]int64)
		r.overlay[kind] = names
	}
	names[key] = id
}
