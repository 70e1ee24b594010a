package model

// AuthToken is the server-side record of a live session. At most one row
// exists per username; re-login overwrites the token in place and logout
// deletes the row, which is the entire invalidation mechanism.
type AuthToken struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Token          string `gorm:"type:text;not null" json:"-"`
	ProviderUserID string `gorm:"type:varchar(255)" json:"provider_user_id"`
}

// HashValidation marks a seed source as applied. Seeding is skipped when the
// stored hash matches the current seed content hash.
type HashValidation struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Type string `gorm:"type:varchar(50)" json:"type"`
	Hash string `gorm:"type:varchar(64);not null" json:"hash"`
}
