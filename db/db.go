package db

import (
	"fmt"
	"os"

	"go_crm_backend/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate models")
	}
	log.Info().Msg("database connected")
	return conn
}

func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.Invite{},
		&models.Company{},
		&models.Contact{},
		&models.Deal{},
		&models.Activity{},
	)
}
