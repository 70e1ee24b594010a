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
	ErrMenuNotFound = errors.New("menu not found")
	ErrMenuExists   = errors.New("menu path already exists")
)

type MenuService interface {
	GetMenus() ([]model.Menu, error)
	CreateMenu(req *MenuRequest) (*model.Menu, error)
	UpdateMenu(id uint, req *MenuRequest) (*model.Menu, error)
	DeleteMenu(id uint) error
}

type MenuRequest struct {
	Name      string `json:"name" validate:"required"`
	Path      string `json:"path" validate:"required"`
	ParentID  *uint  `json:"parent_id"`
	SuperOnly bool   `json:"super_only"`
}

type menuService struct {
	menuRepo repository.MenuRepository
	db       *gorm.DB
}

func NewMenuService(menuRepo repository.MenuRepository, db *gorm.DB) MenuService {
	return &menuService{menuRepo: menuRepo, db: db}
}

func (s *menuService) GetMenus() ([]model.Menu, error) {
	return s.menuRepo.FindAll()
}

// inheritSuperOnly applies the parent rule: a child of a super-only parent is
// always super-only, regardless of what the caller asked for. The reverse
// never happens.
func (s *menuService) inheritSuperOnly(req *MenuRequest) (bool, error) {
	if req.ParentID == nil {
		return req.SuperOnly, nil
	}
	parent, err := s.menuRepo.FindByID(*req.ParentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return req.SuperOnly, nil
	}
	if err != nil {
		return false, err
	}
	if parent.SuperOnly {
		return true, nil
	}
	return req.SuperOnly, nil
}

// CreateMenu inserts the menu, provisions all three actions, and grants each
// existing role a default action on it: edit for admin and superAdmin, view
// for everyone else. One transaction covers the whole flow.
func (s *menuService) CreateMenu(req *MenuRequest) (*model.Menu, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.menuRepo.FindByPath(req.Path); existing != nil {
		return nil, ErrMenuExists
	}

	superOnly, err := s.inheritSuperOnly(req)
	if err != nil {
		return nil, err
	}

	menu := &model.Menu{
		Name:      req.Name,
		Path:      req.Path,
		ParentID:  req.ParentID,
		SuperOnly: superOnly,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(menu).Error; err != nil {
			return err
		}

		provisioned := make(map[model.MenuActionType]*model.MenuAction, len(model.AllActions))
		for _, action := range model.AllActions {
			ma := &model.MenuAction{MenuID: menu.ID, Action: action}
			if err := tx.Create(ma).Error; err != nil {
				return err
			}
			provisioned[action] = ma
		}

		var roles []model.Role
		if err := tx.Find(&roles).Error; err != nil {
			return err
		}
		for i := range roles {
			defaultAction := model.ActionView
			if model.IsAdminRole(roles[i].Name) {
				defaultAction = model.ActionEdit
			}
			if err := tx.Model(&roles[i]).Association("Actions").Append(provisioned[defaultAction]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return menu, nil
}

// UpdateMenu applies the same parent-inheritance rule as create. Changing a
// parent's super-only flag does not cascade to existing children; children
// pick the flag up the next time they themselves are updated.
func (s *menuService) UpdateMenu(id uint, req *MenuRequest) (*model.Menu, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	menu, err := s.menuRepo.FindByID(id)
	if err != nil {
		return nil, ErrMenuNotFound
	}

	if req.Path != menu.Path {
		if existing, _ := s.menuRepo.FindByPath(req.Path); existing != nil {
			return nil, ErrMenuExists
		}
	}

	superOnly, err := s.inheritSuperOnly(req)
	if err != nil {
		return nil, err
	}

	menu.Name = req.Name
	menu.Path = req.Path
	menu.SuperOnly = superOnly
	if err := s.db.Save(menu).Error; err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteMenu removes the menu, its actions, and their role links. Deleting a
// root menu cascades to all of its children. Everything happens in a single
// transaction so a crash can never strand half the cascade.
func (s *menuService) DeleteMenu(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var menu model.Menu
		if err := tx.First(&menu, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMenuNotFound
			}
			return err
		}

		menuIDs := []uint{menu.ID}
		if menu.ParentID == nil {
			var children []model.Menu
			if err := tx.Where("parent_id = ?", menu.ID).Find(&children).Error; err != nil {
				return err
			}
			for _, child := range children {
				menuIDs = append(menuIDs, child.ID)
			}
		}

		var actionIDs []uint
		if err := tx.Model(&model.MenuAction{}).Where("menu_id IN ?", menuIDs).Pluck("id", &actionIDs).Error; err != nil {
			return err
		}
		if len(actionIDs) > 0 {
			if err := tx.Exec("DELETE FROM role_menu_actions WHERE menu_action_id IN ?", actionIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", actionIDs).Delete(&model.MenuAction{}).Error; err != nil {
				return err
			}
		}

		if menu.ParentID == nil {
			if err := tx.Where("parent_id = ?", menu.ID).Delete(&model.Menu{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Menu{}, menu.ID).Error
	})
}
