package repo

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alumni-reunion/internal/domain"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) FindByUserID(userID string) (*domain.AlumniProfile, error) {
	var p domain.AlumniProfile
	if err := r.db.First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// Upsert never touches the RSVP columns of an existing row.
func (r *ProfileRepo) Upsert(p *domain.AlumniProfile) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "graduation_year", "phone", "updated_at"}),
	}).Create(p).Error
	if err != nil {
		return translate(err)
	}
	// the conflict path keeps the stored id, not the freshly generated one
	var stored domain.AlumniProfile
	if err := r.db.First(&stored, "user_id = ?", p.UserID).Error; err != nil {
		return translate(err)
	}
	*p = stored
	return nil
}

func (r *ProfileRepo) UpdateRSVPByEmail(email string, in domain.RSVP) (bool, error) {
	res := r.db.Model(&domain.AlumniProfile{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"rsvp_adults":        in.Adults,
			"rsvp_kids":          in.Kids,
			"hotel_selection_id": in.HotelID,
			"special_reqs":       in.SpecialReqs,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ProfileRepo) ClearHotelSelection(hotelID string) (int64, error) {
	res := r.db.Model(&domain.AlumniProfile{}).
		Where("hotel_selection_id = ?", hotelID).
		Updates(map[string]any{"hotel_selection_id": gorm.Expr("NULL"), "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}
