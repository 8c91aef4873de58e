package repo

import (
	"gorm.io/gorm"

	"alumni-reunion/internal/domain"
)

type EventRepo struct{ db *gorm.DB }

func NewEventRepo(db *gorm.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Create(e *domain.Event) error { return translate(r.db.Create(e).Error) }

func (r *EventRepo) List() ([]domain.Event, error) {
	events := []domain.Event{}
	if err := r.db.Order("starts_at asc").Order("created_at asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepo) Delete(id string) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Event{})
	return res.RowsAffected, res.Error
}
