package model

// User is an account provisioned on first external login or by an admin.
// Each user holds exactly one role via RoleID; there is no password column,
// authentication is delegated to the external identity provider.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255)" json:"name"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
	RoleID   *uint  `gorm:"index" json:"role_id,omitempty"`
	Role     *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// UserProfile is the API shape with the role name flattened in.
type UserProfile struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
	Role     string `json:"role"`
}

// ToProfile converts a User (with Role preloaded) to its API shape.
func (u *User) ToProfile() UserProfile {
	p := UserProfile{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
	if u.Role != nil {
		p.Role = u.Role.Name
	}
	return p
}
