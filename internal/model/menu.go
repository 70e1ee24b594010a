package model

// MenuActionType is the permission granularity on a menu.
type MenuActionType string

const (
	ActionView MenuActionType = "view"
	ActionEdit MenuActionType = "edit"
	ActionHide MenuActionType = "hide"
)

// AllActions lists every action provisioned for a menu.
var AllActions = []MenuActionType{ActionView, ActionEdit, ActionHide}

// Menu is a navigable feature node, optionally nested one level under a
// parent. A menu with nil ParentID is a root menu.
type Menu struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Path      string `gorm:"type:varchar(255);uniqueIndex;not null" json:"path" validate:"required"`
	ParentID  *uint  `gorm:"index" json:"parent_id"`
	SuperOnly bool   `gorm:"default:false" json:"super_only"`

	Actions []MenuAction `gorm:"foreignKey:MenuID" json:"actions,omitempty"`
}

// MenuAction is one of the fixed actions on a menu. At most one row exists
// per (menu, action) pair.
type MenuAction struct {
	ID     uint           `gorm:"primaryKey" json:"id"`
	MenuID uint           `gorm:"not null;uniqueIndex:idx_menu_action" json:"menu_id"`
	Action MenuActionType `gorm:"type:varchar(10);not null;uniqueIndex:idx_menu_action" json:"action"`

	Menu  *Menu  `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
	Roles []Role `gorm:"many2many:role_menu_actions;" json:"-"`
}

// MenuWithAction is the per-role menu view entry returned by the
// "what can I see" queries.
type MenuWithAction struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	ParentID  *uint          `json:"parent_id"`
	SuperOnly bool           `json:"super_only"`
	Action    MenuActionType `json:"action"`
}
