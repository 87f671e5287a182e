package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dcallow/storefront/internal/models"
)

// OpenSQLite opens (or creates) the sqlite database at path and runs migrations.
func OpenSQLite(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// OpenPostgres connects via lib/pq and hands the connection to gorm, then runs migrations.
func OpenPostgres(host, port, name, user, password string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		host, port, name, user, password,
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm postgres: %w", err)
	}
	if err := migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// gormConfig enables error translation so unique-constraint violations surface
// as gorm.ErrDuplicatedKey regardless of backend.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

func migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&models.User{}, &models.Post{}, &models.Contact{}); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
