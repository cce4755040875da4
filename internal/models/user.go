package models

import (
	"time"
)

// User is a local profile keyed by the identity provider's subject id
type User struct {
	ID        string    `gorm:"type:varchar(128);primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	AvatarURL *string   `gorm:"type:text" json:"avatar_url"`
	Bio       *string   `gorm:"type:text" json:"bio"`
	Location  *string   `gorm:"size:255" json:"location"`
	Website   *string   `gorm:"size:255" json:"website"`
	Verified  *bool     `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
