package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"

	"go-admin-portal/internal/model"
)

// MenuSeed is one node of the static menu tree definition.
type MenuSeed struct {
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	SuperOnly bool       `json:"superOnly,omitempty"`
	Children  []MenuSeed `json:"children,omitempty"`
}

// DefaultMenus is the menu tree provisioned at bootstrap.
var DefaultMenus = []MenuSeed{
	{Name: "Dashboard", Path: "/dashboard"},
	{
		Name: "Incident",
		Path: "/incident",
		Children: []MenuSeed{
			{Name: "Active Incidents", Path: "/incident/active"},
			{Name: "Incident History", Path: "/incident/history"},
		},
	},
	{Name: "Reports", Path: "/reports"},
	{Name: "Audit Logs", Path: "/audit"},
	{
		Name:      "Administration",
		Path:      "/admin",
		SuperOnly: true,
		Children: []MenuSeed{
			{Name: "User Management", Path: "/admin/users"},
			{Name: "Role Management", Path: "/admin/roles"},
			{Name: "Menu Management", Path: "/admin/menus"},
		},
	},
}

const rbacSeedName = "rbac_init"

// Init provisions the default menu tree and preset roles. It is idempotent:
// when the stored content hash matches the current seed definition the whole
// pass is skipped.
func Init(db *gorm.DB) error {
	currentHash, err := ContentHash()
	if err != nil {
		return err
	}

	var marker model.HashValidation
	err = db.Where("name = ?", rbacSeedName).First(&marker).Error
	if err == nil && marker.Hash == currentHash {
		log.Println("RBAC seed data is up to date, skipping init")
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Println("Seeding menus and preset roles")
	if err := initMenus(db); err != nil {
		return err
	}
	if err := initPresetRoles(db); err != nil {
		return err
	}

	if marker.ID != 0 {
		marker.Hash = currentHash
		return db.Save(&marker).Error
	}
	return db.Create(&model.HashValidation{
		Name: rbacSeedName,
		Type: "seed",
		Hash: currentHash,
	}).Error
}

// ContentHash is the sha256 of the canonical JSON form of the seed tree.
func ContentHash() (string, error) {
	payload, err := json.Marshal(DefaultMenus)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func initMenus(db *gorm.DB) error {
	for _, item := range DefaultMenus {
		if err := upsertMenu(db, item, nil, false); err != nil {
			return err
		}
	}
	return nil
}

// upsertMenu creates or refreshes one menu node by path, provisions its
// actions, and recurses into children. Children of a super-only parent are
// super-only regardless of their own flag.
func upsertMenu(db *gorm.DB, item MenuSeed, parentID *uint, parentSuperOnly bool) error {
	superOnly := item.SuperOnly || parentSuperOnly

	var menu model.Menu
	err := db.Where("path = ?", item.Path).First(&menu).Error
	switch {
	case err == nil:
		menu.Name = item.Name
		menu.ParentID = parentID
		menu.SuperOnly = superOnly
		if err := db.Save(&menu).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		menu = model.Menu{
			Name:      item.Name,
			Path:      item.Path,
			ParentID:  parentID,
			SuperOnly: superOnly,
		}
		if err := db.Create(&menu).Error; err != nil {
			return err
		}
	default:
		return err
	}

	for _, action := range model.AllActions {
		var existing model.MenuAction
		err := db.Where("menu_id = ? AND action = ?", menu.ID, action).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&model.MenuAction{MenuID: menu.ID, Action: action}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	for _, child := range item.Children {
		if err := upsertMenu(db, child, &menu.ID, superOnly); err != nil {
			return err
		}
	}
	return nil
}

func initPresetRoles(db *gorm.DB) error {
	for _, name := range model.PresetRoles {
		if err := upsertPresetRole(db, name); err != nil {
			return err
		}
	}
	return nil
}

// upsertPresetRole creates the preset role if missing and replaces its
// grants with the default policy: superAdmin gets edit everywhere, admin
// gets edit on non-super-only menus, guest gets view on non-super-only
// menus.
func upsertPresetRole(db *gorm.DB, name string) error {
	var role model.Role
	err := db.Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = model.Role{Name: name, IsPreset: true}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	q := db.Model(&model.MenuAction{}).
		Joins("JOIN menus ON menus.id = menu_actions.menu_id")
	switch name {
	case model.RoleSuperAdmin:
		q = q.Where("menu_actions.action = ?", model.ActionEdit)
	case model.RoleAdmin:
		q = q.Where("menu_actions.action = ? AND menus.super_only = ?", model.ActionEdit, false)
	default:
		q = q.Where("menu_actions.action = ? AND menus.super_only = ?", model.ActionView, false)
	}

	var grants []model.MenuAction
	if err := q.Find(&grants).Error; err != nil {
		return err
	}
	return db.Model(&role).Association("Actions").Replace(grants)
}
