package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config アプリケーション設定
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Email      EmailConfig
	Storage    StorageConfig
	Cloudinary CloudinaryConfig
	AWS        AWSConfig
	Postal     PostalConfig
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port         string
	Env          string // development または production
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AppBaseURL   string // メール内のリンク生成に使うベースURL
}

// DatabaseConfig データベース設定
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

// AuthConfig セッション設定
type AuthConfig struct {
	SessionSecret string        // セッションCookieの署名鍵
	SessionExpiry time.Duration // Cookieの有効期間
}

// EmailConfig SMTP設定
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// StorageConfig 写真アップロード設定
type StorageConfig struct {
	Type          string // local, cloudinary, s3
	UploadDir     string
	BaseURL       string
	MaxUploadSize int64
}

// CloudinaryConfig Cloudinary設定
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// AWSConfig S3設定
type AWSConfig struct {
	Region string
	Bucket string
}

// PostalConfig 郵便番号検索API設定
type PostalConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Load 環境変数から設定をロード
func Load() (*Config, error) {
	// .env ファイルをロード (存在すれば)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Env:          getEnv("SERVER_ENV", "development"),
			ReadTimeout:  time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT", 10)) * time.Second,
			WriteTimeout: time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT", 10)) * time.Second,
			AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Username: getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "dancedrill"),
		},
		Auth: AuthConfig{
			SessionSecret: getEnv("SESSION_SECRET", "your-secret-key"),
			SessionExpiry: time.Duration(getEnvAsInt("SESSION_EXPIRY_HOURS", 24)) * time.Hour,
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "localhost"),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 1025),
			SMTPUsername: getEnv("SMTP_USER", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromName:     getEnv("MAIL_FROM_NAME", "ダンスドリル運営チーム"),
			FromEmail:    getEnv("MAIL_FROM_EMAIL", "noreply@dancedrill.example.com"),
		},
		Storage: StorageConfig{
			Type:          getEnv("STORAGE_TYPE", "local"),
			UploadDir:     getEnv("UPLOAD_DIR", "./public/uploads"),
			BaseURL:       getEnv("UPLOAD_BASE_URL", "/uploads"),
			MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_SIZE_MB", 5)) * 1024 * 1024,
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "dancedrill/photos"),
		},
		AWS: AWSConfig{
			Region: getEnv("AWS_REGION", "ap-northeast-1"),
			Bucket: getEnv("AWS_S3_BUCKET", ""),
		},
		Postal: PostalConfig{
			BaseURL: getEnv("POSTAL_API_URL", "https://zipcloud.ibsnet.co.jp/api/search"),
			Timeout: time.Duration(getEnvAsInt("POSTAL_API_TIMEOUT", 10)) * time.Second,
		},
	}

	return config, nil
}

// IsProduction 本番環境かどうか
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// getEnv 環境変数を取得、存在しない場合はデフォルト値を返す
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
