package database

import (
	"github.com/Nuga25/interneefy-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	return Migrate(DB)
}

// Migrate applies the schema. Tests call this against their own sqlite handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Task{},
		&models.Evaluation{},
	)
}

func GetDB() *gorm.DB {
	return DB
}
