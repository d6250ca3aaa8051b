// db.go is the canonical place for shared DB plumbing: connection
// construction, pool sizing and schema migration. It should not contain
// business logic, which lives in ingest.go and query.go.
package store

import (
	"fmt"
	"os"
	"strconv"

	"github.com/brett-smythe/eleanor/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultPoolSize = 10

// GetDBConnection gets a connection to the database specified by env.
func GetDBConnection() (*gorm.DB, error) {
	return GetCustomizedConnection(os.Getenv("DB_NAME"))
}

// GetCustomizedConnection connects to any db on the configured host.
func GetCustomizedConnection(dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
		dbName, os.Getenv("DB_PORT"),
	)
	db, err := getDB(dsn)
	if err != nil {
		return nil, err
	}

	// A fixed-size pool bounds concurrent storage access; requests
	// beyond capacity block on acquisition.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(poolSizeFromEnv())

	return db, nil
}

func poolSizeFromEnv() int {
	size, err := strconv.Atoi(os.Getenv("DB_POOL_SIZE"))
	if err != nil || size <= 0 {
		return defaultPoolSize
	}
	return size
}

func getDB(connectionString string) (db *gorm.DB, err error) {
	return gorm.Open(postgres.Open(connectionString), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}

// DatabaseSetupAndMigration creates or updates all eleanor tables.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.TextSource{},
		&model.TwitterSource{},
		&model.TweetHashtag{},
		&model.TweetURL{},
		&model.TweetUserMention{},
		&model.PolledTimelineUser{},
	)
}
