package repo

import (
	"gorm.io/gorm"

	"alumni-reunion/internal/domain"
)

// Models lists every table owned by this service.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.AlumniProfile{},
		&domain.Hotel{},
		&domain.Memory{},
		&domain.Event{},
	}
}

func Migrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }

var _ domain.UserRepository = (*UserRepo)(nil)
