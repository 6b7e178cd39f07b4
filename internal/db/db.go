package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ledgerline/contracts/internal/models"
)

// ConnectAndMigrate opens the configured database and brings the schema up
// to date. Postgres DSNs get a retry loop (the container usually wins the
// startup race); sqlite DSNs (file: or :memory:) connect directly and are
// what local development and tests use.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	if isSQLite(dsn) {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	} else {
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			fmt.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs AutoMigrate for every model the lifecycle engine touches.
func Migrate(db *gorm.DB) error {
	toMigrate := []interface{}{
		&models.Contract{}, &models.FulfilmentTerm{},
		&models.Event{}, &models.EventParticipant{},
		&models.ProjectTemplate{}, &models.TemplateTask{},
		&models.Project{}, &models.Task{},
		&models.Quotation{}, &models.QuotationItem{},
		&models.SalesOrder{}, &models.SalesOrderItem{},
		&models.Employee{}, &models.Company{},
		&models.User{}, &models.Contact{}, &models.ContactLink{},
	}
	for _, m := range toMigrate {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

func isSQLite(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "file:") ||
		strings.Contains(lower, ":memory:") ||
		strings.HasSuffix(lower, ".db") ||
		strings.HasSuffix(lower, ".sqlite")
}
