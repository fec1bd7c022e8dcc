package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/talento-plus/internal/auth"
	accountDatamodel "github.com/frahmantamala/talento-plus/internal/core/datamodel/account"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	var row accountDatamodel.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return fromDataModel(&row), nil
}

func (r *AccountRepository) Create(ctx context.Context, account *auth.Account) error {
	row := toDataModel(account)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	account.ID = row.ID
	account.CreatedAt = row.CreatedAt
	account.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *AccountRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&accountDatamodel.Account{}).Error
}

func fromDataModel(row *accountDatamodel.Account) *auth.Account {
	return &auth.Account{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toDataModel(a *auth.Account) *accountDatamodel.Account {
	return &accountDatamodel.Account{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		IsActive:     a.IsActive,
	}
}
