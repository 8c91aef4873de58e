package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}
type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Rotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate Rotate
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

// Session controls the cookie that carries the signed token.
type Session struct {
	CookieName string
	Domain     string
	Secure     bool
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Cache struct {
	Enable     bool
	Prefix     string
	PageTTLSec int
}

type Storage struct {
	Endpoint       string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	ForcePathStyle bool
	PublicBaseURL  string
	Prefix         string
}

type Upload struct {
	MaxImageMB int
	MaxVideoMB int
}

type CORS struct {
	AllowOrigins []string
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	Session Session
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Cache   Cache
	Storage Storage
	Upload  Upload
	CORS    CORS `mapstructure:"cors"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("app.name", "alumni-reunion")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 15)
	v.SetDefault("app.http.writeTimeoutSec", 60)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.issuer", "alumni-reunion")
	v.SetDefault("jwt.accessTokenTTLMin", 60*24*7)
	v.SetDefault("session.cookieName", "reunion_session")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("cache.prefix", "page:")
	v.SetDefault("cache.pageTTLSec", 300)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.forcePathStyle", true)
	v.SetDefault("storage.prefix", "memories")
	v.SetDefault("upload.maxImageMB", 10)
	v.SetDefault("upload.maxVideoMB", 100)
}

// Read loads the YAML file at path with APP_* environment overrides.
func Read(path string) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}
	return &c, nil
}

func Load(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	c, err := Read(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return c
}

// UploadLimitBytes is the upload route body cap that still admits the largest allowed file.
func (c *Config) UploadLimitBytes() int64 {
	mb := max(c.Upload.MaxImageMB, c.Upload.MaxVideoMB)
	return int64(mb+1) << 20
}
