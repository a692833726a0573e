package services

import (
	"testing"

	"resortbook/commands"
	"resortbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newPostgresDryRun builds statements with the postgres dialect without
// connecting. Every statement's SQL is appended to the returned slice.
func newPostgresDryRun(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=5432 user=resort dbname=resort sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	var statements []string
	record := func(tx *gorm.DB) {
		statements = append(statements, tx.Statement.SQL.String())
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:record_query", record))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:record_update", record))
	return db, &statements
}

func lastStatement(t *testing.T, statements *[]string) string {
	t.Helper()
	require.NotEmpty(t, *statements)
	return (*statements)[len(*statements)-1]
}

func TestRowLocksEmitSelectForUpdate(t *testing.T) {
	db, statements := newPostgresDryRun(t)

	_, _ = lockAccommodation(db, 7)
	sql := lastStatement(t, statements)
	assert.Contains(t, sql, `FROM "accommodations"`)
	assert.Contains(t, sql, "FOR UPDATE")

	_, _ = lockBooking(db, 9)
	sql = lastStatement(t, statements)
	assert.Contains(t, sql, `FROM "bookings"`)
	assert.Contains(t, sql, "FOR UPDATE")

	// a plain read takes no lock
	var acc models.Accommodation
	db.First(&acc, 7)
	assert.NotContains(t, lastStatement(t, statements), "FOR UPDATE")
}

func TestInventoryUpdatesAreAtomicExpressions(t *testing.T) {
	db, statements := newPostgresDryRun(t)

	// A dry run affects no rows, so the commands report not found.
	_ = commands.NewAdjustUnitsCommand(7, -2, db).Execute()
	sql := lastStatement(t, statements)
	assert.Contains(t, sql, `UPDATE "accommodations"`)
	assert.Regexp(t, `"available_units"=available_units \+ \$\d`, sql)

	_ = commands.NewAdjustUnitsCommand(7, 3, db).Execute()
	assert.Regexp(t, `"available_units"=available_units \+ \$\d`, lastStatement(t, statements))

	_ = commands.NewToggleActiveCommand(7, db).Execute()
	assert.Contains(t, lastStatement(t, statements), `"is_active"=NOT is_active`)

	// a read-then-write renders a literal, which is what the lock and the
	// expression above exist to avoid
	db.Model(&models.Accommodation{}).Where("id = ?", 7).Update("available_units", 4)
	assert.NotRegexp(t, `available_units \+`, lastStatement(t, statements))
}
