package entity

import (
	"time"
)

// User represents a registered receipt owner
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Username  string    `gorm:"size:255;unique;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Receipts []Receipt `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
