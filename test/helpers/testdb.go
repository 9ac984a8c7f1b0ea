package helpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fstr_backend/database"
	"fstr_backend/internal/logger"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB открывает изолированную in-memory SQLite (своя база на каждый тест)
// с внешними ключами и прогнанной схемой. Одно соединение: транзакции сериализуются.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.NewGormLogger(time.Second),
		TranslateError: true,
	})
	require.NoError(t, err, "Не удалось открыть тестовую БД")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(context.Background(), db), "Не удалось выполнить миграции")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// FailCreates заставляет каждую вставку в table падать с err.
// Так проверяется откат транзакции при сбое хранилища на середине.
func FailCreates(t *testing.T, db *gorm.DB, table string, err error) {
	t.Helper()

	name := "test:fail_create_" + table
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == table {
			_ = tx.AddError(err)
		}
	}))
}

// CountRows - число строк в таблице модели
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
