package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/model"
)

// NewMySQL returns a connected GORM DB instance.
// Driver errors are translated so that unique-index violations surface as gorm.ErrDuplicatedKey.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Models lists every persisted model in dependency order.
// Indexes are declared on the struct tags of each model.
func Models() []interface{} {
	return []interface{}{
		&model.Account{},
		&model.AccountProfile{},
		&model.Product{},
		&model.CartLine{},
		&model.Order{},
		&model.OrderItem{},
	}
}

// Migrate creates or updates all tables and indexes. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table, children first.
func Reset(db *gorm.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
