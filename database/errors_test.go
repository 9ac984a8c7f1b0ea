package database_test

import (
	"errors"
	"fmt"
	"testing"

	"fstr_backend/database"
	"fstr_backend/internal/models"
	"fstr_backend/test/helpers"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db := helpers.NewTestDB(t)

	require.NoError(t, db.Create(&models.Submitter{Email: "dup@example.com"}).Error)
	err := db.Create(&models.Submitter{Email: "dup@example.com"}).Error

	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestIsUniqueViolation_DriverErrors(t *testing.T) {
	assert.False(t, database.IsUniqueViolation(nil))
	assert.False(t, database.IsUniqueViolation(errors.New("connection refused")))

	assert.True(t, database.IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))

	assert.True(t, database.IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, database.IsUniqueViolation(&mysql.MySQLError{Number: 1452}))
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := database.Dialector(driver, "dsn")
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := database.Dialector("oracle", "dsn")
	assert.Error(t, err)
}
