package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	CORSOrigins string
}

func Load() *Config {
	// .env があれば読む（無くてもエラーにしない）
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("PORT", "5000"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      getEnv("DB_USER", "root"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "product_management"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	if cfg.DBPassword == "" {
		logrus.Warn("DB_PASSWORD が未設定です。本番環境では必ず設定してください。")
	}

	return cfg
}

// DSN: MySQL 接続文字列（タイムゾーンは JST 固定）
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Asia%%2FTokyo",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// CORSOriginList: カンマ区切りの origin をトリムして返す
func (c *Config) CORSOriginList() string {
	origins := strings.Split(c.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return strings.Join(origins, ",")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
