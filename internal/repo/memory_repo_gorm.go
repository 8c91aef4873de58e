package repo

import (
	"gorm.io/gorm"

	"alumni-reunion/internal/domain"
)

type MemoryRepo struct{ db *gorm.DB }

func NewMemoryRepo(db *gorm.DB) *MemoryRepo { return &MemoryRepo{db: db} }

func (r *MemoryRepo) Create(m *domain.Memory) error { return translate(r.db.Create(m).Error) }

func (r *MemoryRepo) FindByID(id string) (*domain.Memory, error) {
	var m domain.Memory
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *MemoryRepo) ListNewest() ([]domain.Memory, error) {
	ms := []domain.Memory{}
	if err := r.db.Order("created_at desc").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

func (r *MemoryRepo) Delete(id string) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Memory{})
	return res.RowsAffected, res.Error
}
