package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// UsersOn returns a constructor that binds a UserRepo to a request context.
func UsersOn(db *gorm.DB) func(context.Context) domain.UserRepository {
	return func(ctx context.Context) domain.UserRepository { return NewUserRepo(db.WithContext(ctx)) }
}

func (r *UserRepo) Create(u *domain.User) error { return translate(r.db.Create(u).Error) }

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepo) List(offset, limit int, q string) ([]domain.User, int64, error) {
	scope := func() *gorm.DB {
		tx := r.db.Model(&domain.User{})
		if s := strings.TrimSpace(q); s != "" {
			like := "%" + s + "%"
			tx = tx.Where("email LIKE ? OR name LIKE ?", like, like)
		}
		return tx
	}
	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	users := []domain.User{}
	if err := scope().Order("created_at desc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) SetRole(id string, role access.Role) error {
	res := r.db.Model(&domain.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// mysql reports zero affected rows when the role is unchanged
	var n int64
	if err := r.db.Model(&domain.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isDupKey(err):
		return domain.ErrConflict
	}
	return err
}

// isDupKey catches drivers that do not translate unique violations.
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
