package repository

import (
	"go-admin-portal/internal/model"

	"gorm.io/gorm"
)

type MenuRepository interface {
	FindAll() ([]model.Menu, error)
	FindByID(id uint) (*model.Menu, error)
	FindByPath(path string) (*model.Menu, error)
}

type menuRepo struct {
	db *gorm.DB
}

func NewMenuRepo(db *gorm.DB) MenuRepository {
	return &menuRepo{db}
}

func (r *menuRepo) FindAll() ([]model.Menu, error) {
	var menus []model.Menu
	if err := r.db.Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *menuRepo) FindByID(id uint) (*model.Menu, error) {
	var menu model.Menu
	if err := r.db.First(&menu, id).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepo) FindByPath(path string) (*model.Menu, error) {
	var menu model.Menu
	if err := r.db.Where("path = ?", path).First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}
