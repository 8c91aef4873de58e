package domain

import (
	"errors"
	"time"

	"alumni-reunion/internal/access"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

type User struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	Email        string      `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string      `gorm:"size:64" json:"name"`
	PasswordHash string      `gorm:"size:100;not null" json:"-"`
	Role         access.Role `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) Identity() access.Identity {
	return access.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	List(offset, limit int, q string) ([]User, int64, error)
	SetRole(id string, role access.Role) error
}
