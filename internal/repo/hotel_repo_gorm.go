package repo

import (
	"gorm.io/gorm"

	"alumni-reunion/internal/domain"
)

type HotelRepo struct{ db *gorm.DB }

func NewHotelRepo(db *gorm.DB) *HotelRepo { return &HotelRepo{db: db} }

func (r *HotelRepo) Create(h *domain.Hotel) error { return translate(r.db.Create(h).Error) }

func (r *HotelRepo) Exists(id string) (bool, error) {
	var n int64
	if err := r.db.Model(&domain.Hotel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *HotelRepo) ListByName() ([]domain.Hotel, error) {
	hotels := []domain.Hotel{}
	if err := r.db.Order("hotel_name asc").Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *HotelRepo) Delete(id string) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Hotel{})
	return res.RowsAffected, res.Error
}
