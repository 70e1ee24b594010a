package model

// Role is a named bundle of (menu, action) grants. Roles are flat; there is
// no inheritance between them.
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	IsPreset    bool   `gorm:"default:false" json:"is_preset"`

	Actions []MenuAction `gorm:"many2many:role_menu_actions;" json:"-"`
	Users   []User       `gorm:"foreignKey:RoleID" json:"-"`
}

// Preset role names, provisioned at bootstrap and protected from deletion.
const (
	RoleSuperAdmin = "superAdmin"
	RoleAdmin      = "admin"
	RoleGuest      = "guest"
)

// PresetRoles in seeding order.
var PresetRoles = []string{RoleSuperAdmin, RoleAdmin, RoleGuest}

// IsAdminRole reports whether the role name passes the coarse admin gate.
func IsAdminRole(name string) bool {
	return name == RoleAdmin || name == RoleSuperAdmin
}
