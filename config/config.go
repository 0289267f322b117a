package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Storage StorageConfig
	S3      S3Config
	Admin   AdminConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// StorageConfig selects the upload backend and locates the mutable
// storage-path file.
type StorageConfig struct {
	Backend    string // "local" or "s3"
	ConfigFile string // JSON file holding the current upload destination
}

type S3Config struct {
	Region        string
	Endpoint      string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PresignExpiry time.Duration
}

type AdminConfig struct {
	Email    string
	Password string
}

// ErrMissingMongoURI: a missing document-store connection string must abort
// startup, not surface later as a request failure.
var ErrMissingMongoURI = errors.New("MONGO_URI is required")

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY"))
	if err != nil {
		jwtExpiry = 24 * time.Hour
	}

	presignExpiry, err := time.ParseDuration(viper.GetString("S3_PRESIGN_EXPIRY"))
	if err != nil {
		presignExpiry = 15 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DATABASE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: jwtExpiry,
		},
		Storage: StorageConfig{
			Backend:    viper.GetString("STORAGE_BACKEND"),
			ConfigFile: viper.GetString("STORAGE_CONFIG_FILE"),
		},
		S3: S3Config{
			Region:        viper.GetString("S3_REGION"),
			Endpoint:      viper.GetString("S3_ENDPOINT"),
			Bucket:        viper.GetString("S3_BUCKET"),
			AccessKey:     viper.GetString("S3_ACCESS_KEY"),
			SecretKey:     viper.GetString("S3_SECRET_KEY"),
			PresignExpiry: presignExpiry,
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	if config.Mongo.URI == "" {
		return nil, ErrMissingMongoURI
	}
	if config.Mongo.Database == "" {
		config.Mongo.Database = "consult"
	}
	if config.Storage.Backend == "" {
		config.Storage.Backend = "local"
	}
	if config.Storage.ConfigFile == "" {
		config.Storage.ConfigFile = "storage-config.json"
	}
	if config.Admin.Email == "" {
		config.Admin.Email = "admin@consult.local"
	}

	return config, nil
}
