package repository

import (
	"go-admin-portal/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll(limit, offset int) ([]model.Role, int64, error)
	FindByID(id uint) (*model.Role, error)
	FindByIDWithGrants(id uint) (*model.Role, error)
	FindByName(name string) (*model.Role, error)
	Create(role *model.Role) error
	Update(role *model.Role) error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll(limit, offset int) ([]model.Role, int64, error) {
	var total int64
	if err := r.db.Model(&model.Role{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var roles []model.Role
	if err := r.db.Limit(limit).Offset(offset).Find(&roles).Error; err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

func (r *roleRepo) FindByID(id uint) (*model.Role, error) {
	var role model.Role
	if err := r.db.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByIDWithGrants loads the role together with its granted actions and
// their menus, for building the menu-with-action views.
func (r *roleRepo) FindByIDWithGrants(id uint) (*model.Role, error) {
	var role model.Role
	if err := r.db.Preload("Actions.Menu").First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByName(name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) Create(role *model.Role) error {
	return r.db.Create(role).Error
}

func (r *roleRepo) Update(role *model.Role) error {
	return r.db.Save(role).Error
}
