package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBUser:     "app",
		DBPassword: "secret",
		DBHost:     "db.example.com",
		DBPort:     "3306",
		DBName:     "product_management",
	}
	assert.Equal(t,
		"app:secret@tcp(db.example.com:3306)/product_management?charset=utf8mb4&parseTime=true&loc=Asia%2FTokyo",
		cfg.DSN())
}

func TestCORSOriginList(t *testing.T) {
	cfg := &Config{CORSOrigins: "http://localhost:3000, https://example.com ,https://admin.example.com"}
	assert.Equal(t, "http://localhost:3000,https://example.com,https://admin.example.com", cfg.CORSOriginList())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_HOST", "")
	cfg := Load()
	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "product_management", cfg.DBName)
}
