package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"construction-cms/internal/storage"
)

type App struct {
	Name string
	Env  string
}

type Log struct {
	Level string
	JSON  bool

	// File enables rotated file output alongside stdout.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Storage modes.
const (
	ModeRelational = "relational"
	ModeDocument   = "document"
)

type DB struct {
	Driver             string // postgres | mysql
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

type S3 struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // empty for AWS; set for compatible stores
	UseSSL    bool
	KeyPrefix string // object key prefix, default "data/"
	RateRPS   int    // client-side request cap, 0 disables
}

type Storage struct {
	Mode string // relational | document
	DB   DB
	S3   S3
}

type Config struct {
	App     App
	Log     Log
	Storage Storage
}

func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("storage.db.maxopenconns", 10)
	v.SetDefault("storage.db.maxidleconns", 5)
	v.SetDefault("storage.db.connmaxlifetimemin", 30)
	v.SetDefault("storage.s3.usessl", true)
	v.SetDefault("storage.s3.keyprefix", "data/")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.maxsizemb", 100)
	v.SetDefault("log.maxbackups", 3)
	v.SetDefault("log.maxagedays", 28)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate fails fast when the selected mode is missing its parameters.
// There is deliberately no fallback to the other backend.
func (s Storage) Validate() error {
	switch s.Mode {
	case ModeRelational:
		if s.DB.DSN == "" {
			return fmt.Errorf("%w: relational mode requires storage.db.dsn", storage.ErrBadConfig)
		}
		if s.DB.Driver != "postgres" && s.DB.Driver != "mysql" {
			return fmt.Errorf("%w: unsupported db driver %q", storage.ErrBadConfig, s.DB.Driver)
		}
	case ModeDocument:
		var missing []string
		if s.S3.Bucket == "" {
			missing = append(missing, "bucket")
		}
		if s.S3.Region == "" {
			missing = append(missing, "region")
		}
		if s.S3.AccessKey == "" {
			missing = append(missing, "accesskey")
		}
		if s.S3.SecretKey == "" {
			missing = append(missing, "secretkey")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: document mode requires storage.s3.%s", storage.ErrBadConfig, strings.Join(missing, ", "))
		}
	case "":
		return fmt.Errorf("%w: storage.mode not set", storage.ErrBadConfig)
	default:
		return fmt.Errorf("%w: unknown storage.mode %q", storage.ErrBadConfig, s.Mode)
	}
	return nil
}
