package domain

import "time"

type Hotel struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	HotelName   string    `gorm:"size:191;not null;index" json:"hotelName"`
	Description string    `gorm:"type:text" json:"description"`
	WebsiteURL  string    `gorm:"column:website_url;size:512;not null" json:"websiteUrl"`
	UserID      *string   `gorm:"size:36" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Hotel) TableName() string { return "hotels" }
