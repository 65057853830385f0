package newsdb

import (
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/news-assignment/newsapi/pkg/newsdb/newsmodel"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSqlite = "sqlite"
	DriverMySQL  = "mysql"

	DefaultSqliteDSN  = "newsapi.db"
	SqliteInMemoryDSN = "file::memory:"
)

func MakeMySQLDSNFromEnv() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_DATABASE"))
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSqlite:
		if dsn == "" {
			dsn = DefaultSqliteDSN
		}
		return sqlite.Open(dsn), nil
	case DriverMySQL:
		if dsn == "" {
			dsn = MakeMySQLDSNFromEnv()
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unknown archive db driver '%s'", driver)
	}
}

const (
	maxDBRetries = 5
	dbRetryPause = 3 * time.Second
)

// ConnectToDB opens the archive database, retrying up to maxDBRetries times
// with a pause between attempts, and migrates the schema.
func ConnectToDB(driver, dsn string) (*gorm.DB, error) {
	d, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var db *gorm.DB
	for retryCount := 1; ; retryCount++ {
		db, err = gorm.Open(d, gormConfig)
		if err == nil {
			break
		}

		if retryCount >= maxDBRetries {
			return nil, fmt.Errorf("failed to open %s archive db: %w", driver, err)
		}

		log.Warnf("Unable to open %s archive db (attempt %d): %s", driver, retryCount, err)
		time.Sleep(dbRetryPause)
	}

	if driver == DriverSqlite {
		// sqlite allows a single writer; share one connection.
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(&newsmodel.ArchivedArticle{})
}
