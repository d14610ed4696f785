package database

import (
	"time"

	"zaiko-backend/internal/config"
	"zaiko-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init: DB に接続し、コネクションプールを設定してハンドルを返す。
// ハンドルは main から各ハンドラへ注入する（グローバル変数にはしない）。
func Init(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Supplier{},
		&models.Staff{},
		&models.Product{},
		&models.InventoryTransaction{},
	); err != nil {
		return nil, err
	}

	logrus.Info("データベース接続成功。マイグレーション完了。")
	return db, nil
}

// Close: プールを閉じる（シャットダウン時に呼ぶ）
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("DB ハンドルの取得に失敗")
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("DB クローズに失敗")
	}
}
