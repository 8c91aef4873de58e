// Package bootstrap turns a Config into the dependency set both binaries serve from.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"alumni-reunion/internal/core/auth"
	"alumni-reunion/internal/core/cache"
	"alumni-reunion/internal/core/config"
	"alumni-reunion/internal/core/database"
	"alumni-reunion/internal/core/storage"
	"alumni-reunion/internal/feature/geo"
	"alumni-reunion/internal/feature/media"
	"alumni-reunion/internal/repo"
	"alumni-reunion/internal/transport/http/router"
)

// Deps opens the database, page cache and object store. The returned func releases them.
func Deps(ctx context.Context, cfg *config.Config, log *zap.Logger) (*router.Deps, func(), error) {
	db, err := OpenDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("automigrate: %w", err)
		}
		log.Info("automigrate done")
	}

	pages := cache.Disabled()
	if cfg.Cache.Enable {
		pages = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Cache.Prefix)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := pages.Ping(pctx); err != nil {
			// a cold cache only costs latency
			log.Warn("redis unreachable, page cache will miss", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancel()
	}

	store, err := storage.NewS3(ctx, storage.S3Options{
		Endpoint:       cfg.Storage.Endpoint,
		Region:         cfg.Storage.Region,
		Bucket:         cfg.Storage.Bucket,
		AccessKey:      cfg.Storage.AccessKey,
		SecretKey:      cfg.Storage.SecretKey,
		ForcePathStyle: cfg.Storage.ForcePathStyle,
		PublicBaseURL:  cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("object storage: %w", err)
	}

	dataset, err := geo.Load()
	if err != nil {
		return nil, nil, err
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	d := &router.Deps{
		Log:      log,
		DB:       db,
		JWT:      jwter,
		Resolver: &auth.Resolver{JWT: jwter, CookieName: cfg.Session.CookieName, Users: repo.UsersOn(db)},
		Pages:    pages,
		PageTTL:  time.Duration(cfg.Cache.PageTTLSec) * time.Second,
		Uploader: &media.Uploader{
			Store:  store,
			Prefix: cfg.Storage.Prefix,
			Limits: media.Limits{
				MaxImageBytes: int64(cfg.Upload.MaxImageMB) << 20,
				MaxVideoBytes: int64(cfg.Upload.MaxVideoMB) << 20,
			},
		},
		Geo:            dataset,
		Session:        cfg.Session,
		CORSOrigins:    cfg.CORS.AllowOrigins,
		BodyLimit:      16 << 20,
		UploadLimit:    cfg.UploadLimitBytes(),
		RequestTimeout: time.Duration(cfg.App.HTTP.WriteTimeoutSec) * time.Second,
	}

	cleanup := func() {
		_ = pages.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return d, cleanup, nil
}

func OpenDB(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	return database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
}
