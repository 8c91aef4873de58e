package domain

import "time"

// AlumniProfile is owned 1:1 by a User. HotelSelectionID is a weak reference to Hotel.
type AlumniProfile struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	UserID           string    `gorm:"uniqueIndex;size:36;not null" json:"userId"`
	Email            string    `gorm:"index;size:191" json:"email"`
	FullName         string    `gorm:"size:128" json:"fullName"`
	GraduationYear   int       `json:"graduationYear"`
	Phone            string    `gorm:"size:32" json:"phone"`
	RSVPAdults       int       `gorm:"column:rsvp_adults;not null;default:0" json:"rsvpAdults"`
	RSVPKids         int       `gorm:"column:rsvp_kids;not null;default:0" json:"rsvpKids"`
	HotelSelectionID *string   `gorm:"size:36;index" json:"hotelSelectionId"`
	SpecialReqs      *string   `gorm:"type:text" json:"specialReqs"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (AlumniProfile) TableName() string { return "alumni_profiles" }

// RSVP is the full replacement written by an RSVP submission.
type RSVP struct {
	Adults      int
	Kids        int
	HotelID     *string
	SpecialReqs *string
}
