package model

// Product is a simple catalog entity managed by admins.
type Product struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(8);uniqueIndex;not null" json:"code" validate:"required,max=8"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
}
