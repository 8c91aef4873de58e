package domain

import "time"

type Event struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Title       string     `gorm:"size:191" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Location    string     `gorm:"size:255" json:"location"`
	StartsAt    *time.Time `gorm:"index" json:"startsAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (Event) TableName() string { return "events" }
