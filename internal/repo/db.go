package repo

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"AuthDesk/internal/model"
)

// DefaultSQLitePath используется, когда DATABASE_URI не задан.
const DefaultSQLitePath = "authdesk.db"

// InitDB открывает БД по DSN и накатывает миграции.
// postgres:// и key=value DSN уходят в Postgres, всё остальное считается путём к SQLite (modernc).
func InitDB(dsn string) (*gorm.DB, error) {
	dial := dialectorFor(dsn)
	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(os.Stderr),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dial.Name() == "sqlite" {
		// SQLite пишет одним писателем: без этого параллельные вставки ловят SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт/обновляет схему.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// newGormLogger — предупреждения и медленные запросы. "record not found" штатен
// для проверок email/SSO перед вставкой и не логируется.
func newGormLogger(out io.Writer) logger.Interface {
	return logger.New(log.New(out, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func dialectorFor(dsn string) gorm.Dialector {
	switch {
	case isPostgresDSN(dsn):
		return postgres.Open(dsn)
	case dsn == "":
		dsn = DefaultSQLitePath
	}
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
