package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-admin-portal/internal/model"
	"go-admin-portal/internal/repository"
	"go-admin-portal/pkg/validator"
)

var (
	ErrRoleExists   = errors.New("role already exists")
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleInUse    = errors.New("role is assigned to users and cannot be deleted")
	ErrPresetRole   = errors.New("preset roles cannot be deleted")
)

type RoleService interface {
	GetRole(id uint) (*model.Role, error)
	GetRoles(limit, offset int) (*RoleList, error)
	CreateRole(req *RoleRequest) (*model.Role, error)
	UpdateRole(id uint, req *RoleRequest) (*model.Role, error)
	DeleteRole(id uint) error
	AssignMenus(roleID uint, grants []MenuGrant) ([]model.MenuWithAction, error)
	GetRoleMenus(roleID uint) ([]model.MenuWithAction, error)
	GetMyMenus(email string) ([]model.MenuWithAction, error)
}

type RoleRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// MenuGrant is one (menu, action) pair in a full-replace assignment.
type MenuGrant struct {
	MenuID uint                 `json:"id" validate:"required"`
	Action model.MenuActionType `json:"action" validate:"required,oneof=hide view edit"`
}

type RoleList struct {
	Total int64        `json:"total"`
	Items []model.Role `json:"items"`
}

type roleService struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
	db       *gorm.DB
}

func NewRoleService(roleRepo repository.RoleRepository, userRepo repository.UserRepository, db *gorm.DB) RoleService {
	return &roleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
		db:       db,
	}
}

func (s *roleService) GetRole(id uint) (*model.Role, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

func (s *roleService) GetRoles(limit, offset int) (*RoleList, error) {
	roles, total, err := s.roleRepo.FindAll(limit, offset)
	if err != nil {
		return nil, err
	}
	return &RoleList{Total: total, Items: roles}, nil
}

// CreateRole creates the role and grants it the default view action on every
// non-super-only menu, all in one transaction.
func (s *roleService) CreateRole(req *RoleRequest) (*model.Role, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.roleRepo.FindByName(req.Name)
	if existing != nil {
		return nil, ErrRoleExists
	}

	role := &model.Role{Name: req.Name, Description: req.Description}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}

		var defaults []model.MenuAction
		if err := tx.Model(&model.MenuAction{}).
			Joins("JOIN menus ON menus.id = menu_actions.menu_id").
			Where("menu_actions.action = ? AND menus.super_only = ?", model.ActionView, false).
			Find(&defaults).Error; err != nil {
			return err
		}
		if len(defaults) == 0 {
			return nil
		}
		return tx.Model(role).Association("Actions").Replace(defaults)
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) UpdateRole(id uint, req *RoleRequest) (*model.Role, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := s.roleRepo.Update(role); err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole removes the role and its grant links. The menus and actions
// themselves are untouched.
func (s *roleService) DeleteRole(id uint) error {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		return ErrRoleNotFound
	}

	assigned, err := s.userRepo.CountByRole(role.ID)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return ErrRoleInUse
	}
	if role.IsPreset {
		return ErrPresetRole
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(role).Association("Actions").Clear(); err != nil {
			return err
		}
		return tx.Delete(role).Error
	})
}

// AssignMenus replaces the role's grant set wholesale: existing links are
// cleared, then each pair reuses or creates its MenuAction row. Calling it
// twice with the same grants yields the same final set.
func (s *roleService) AssignMenus(roleID uint, grants []MenuGrant) ([]model.MenuWithAction, error) {
	for i := range grants {
		if errs := validator.ValidateStruct(&grants[i]); len(errs) > 0 {
			firstErr := errs[0]
			return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
		}
	}

	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(role).Association("Actions").Clear(); err != nil {
			return err
		}

		for _, grant := range grants {
			var action model.MenuAction
			err := tx.Where("menu_id = ? AND action = ?", grant.MenuID, grant.Action).First(&action).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.First(&model.Menu{}, grant.MenuID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrMenuNotFound
					}
					return err
				}
				action = model.MenuAction{MenuID: grant.MenuID, Action: grant.Action}
				if err := tx.Create(&action).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			if err := tx.Model(role).Association("Actions").Append(&action); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRoleMenus(roleID)
}

func (s *roleService) GetRoleMenus(roleID uint) ([]model.MenuWithAction, error) {
	role, err := s.roleRepo.FindByIDWithGrants(roleID)
	if err != nil {
		return nil, ErrRoleNotFound
	}
	return BuildMenuViews(role), nil
}

func (s *roleService) GetMyMenus(email string) ([]model.MenuWithAction, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.RoleID == nil {
		return nil, ErrNoRoleAssigned
	}
	return s.GetRoleMenus(*user.RoleID)
}
