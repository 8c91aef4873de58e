package domain

import "time"

type Memory struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	ImageTitle       string     `gorm:"size:191" json:"imageTitle"`
	ImageDescription string     `gorm:"type:text" json:"imageDescription"`
	ImageDate        *time.Time `json:"imageDate"`
	UploadPhotoURL   string     `gorm:"column:upload_photo_url;size:1024" json:"uploadPhotoUrl"`
	UploadVideoURL   string     `gorm:"column:upload_video_url;size:1024" json:"uploadVideoUrl"`
	UploadedBy       string     `gorm:"size:36;index" json:"uploadedBy"`
	CreatedAt        time.Time  `gorm:"index" json:"createdAt"`
}

func (Memory) TableName() string { return "memories" }
