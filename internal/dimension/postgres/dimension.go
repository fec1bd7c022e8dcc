package postgres

import (
	"context"
	"errors"
	"strings"

	dimensionDatamodel "github.com/frahmantamala/talento-plus/internal/core/datamodel/dimension"
	"github.com/frahmantamala/talento-plus/internal/dimension"
	"gorm.io/gorm"
)

type DimensionRepository struct {
	db *gorm.DB
}

func NewDimensionRepository(db *gorm.DB) dimension.RepositoryAPI {
	return &DimensionRepository{db: db}
}

func (r *DimensionRepository) table(ctx context.Context, kind dimension.Kind) (*gorm.DB, error) {
	if !kind.Valid() {
		return nil, dimension.ErrUnknownKind
	}
	return r.db.WithContext(ctx).Table(kind.Table()), nil
}

// FindByName matches name case-insensitively.
func (r *DimensionRepository) FindByName(ctx context.Context, kind dimension.Kind, name string) (*dimension.Dimension, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, err
	}

	var rec dimensionDatamodel.Record
	err = q.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("id ASC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dimension.FromDataModel(kind, &rec), nil
}

func (r *DimensionRepository) GetByID(ctx context.Context, kind dimension.Kind, id int64) (*dimension.Dimension, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, err
	}

	var rec dimensionDatamodel.Record
	if err := q.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dimension.FromDataModel(kind, &rec), nil
}

// Create persists immediately, outside any caller transaction.
func (r *DimensionRepository) Create(ctx context.Context, kind dimension.Kind, name string) (*dimension.Dimension, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, err
	}

	rec := dimensionDatamodel.Record{Name: strings.TrimSpace(name)}
	if err := q.Create(&rec).Error; err != nil {
		return nil, err
	}
	return dimension.FromDataModel(kind, &rec), nil
}

func (r *DimensionRepository) ListByKind(ctx context.Context, kind dimension.Kind) ([]*dimension.Dimension, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, err
	}

	var recs []dimensionDatamodel.Record
	if err := q.Order("name ASC").Find(&recs).Error; err != nil {
		return nil, err
	}

	result := make([]*dimension.Dimension, len(recs))
	for i := range recs {
		result[i] = dimension.FromDataModel(kind, &recs[i])
	}
	return result, nil
}
