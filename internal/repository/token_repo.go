package repository

import (
	"go-admin-portal/internal/model"

	"gorm.io/gorm"
)

type TokenRepository interface {
	FindByName(name string) (*model.AuthToken, error)
	FindLive(name, token string) (*model.AuthToken, error)
	Upsert(name, token, providerUserID string) error
	DeleteByName(name string) error
}

type tokenRepo struct {
	db *gorm.DB
}

func NewTokenRepo(db *gorm.DB) TokenRepository {
	return &tokenRepo{db}
}

func (r *tokenRepo) FindByName(name string) (*model.AuthToken, error) {
	var t model.AuthToken
	if err := r.db.Where("name = ?", name).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindLive returns the row only when both the username and the exact token
// string match. A token that verifies cryptographically but has been
// superseded or logged out does not match.
func (r *tokenRepo) FindLive(name, token string) (*model.AuthToken, error) {
	var t model.AuthToken
	if err := r.db.Where("name = ? AND token = ?", name, token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Upsert keeps at most one row per username: re-login overwrites the token
// in place instead of creating a duplicate.
func (r *tokenRepo) Upsert(name, token, providerUserID string) error {
	var existing model.AuthToken
	err := r.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		existing.Token = token
		existing.ProviderUserID = providerUserID
		return r.db.Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(&model.AuthToken{
		Name:           name,
		Token:          token,
		ProviderUserID: providerUserID,
	}).Error
}

func (r *tokenRepo) DeleteByName(name string) error {
	return r.db.Where("name = ?", name).Delete(&model.AuthToken{}).Error
}
