package db

import (
	"errors"
	"fmt"
	"strings"

	"lead-capture-backend/models"
	"lead-capture-backend/utils"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Dialector picks the gorm driver from the DSN shape.
// postgres:// and postgresql:// URLs and key=value strings go to postgres,
// sqlite:, file: and *.db paths go to sqlite.
func Dialector(dsn string) (gorm.Dialector, error) {
	switch {
	case dsn == "":
		return nil, errors.New("DB_URL is not set")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite:"), "//")), nil
	case strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"), dsn == ":memory:":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_URL %q", dsn)
	}
}

// Config is the gorm configuration shared by the server and the tests.
func Config() *gorm.Config {
	return &gorm.Config{
		Logger:                 utils.GetGormLogger(),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	}
}

// Open connects to dsn and stores the handle in DB.
func Open(dsn string) (*gorm.DB, error) {
	dialector, err := Dialector(dsn)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, Config())
	if err != nil {
		utils.LogError(err, "Error connecting to the database")
		return nil, fmt.Errorf("connect database: %w", err)
	}

	DB = conn
	utils.LogSuccess("Database connection successful")
	return conn, nil
}

// Migrate creates or updates the lead capture schema.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.Lead{},
		&models.DemoRequest{},
		&models.LeadActivity{},
		&models.LeadNote{},
		&models.ContactForm{},
	)
	if err != nil {
		utils.LogError(err, "Error migrating database")
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
