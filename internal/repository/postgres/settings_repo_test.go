package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestGetSettings_PopulatedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepo(db)

	// The query must name only the columns the model maps; the table also
	// carries an id column the struct does not.
	mock.ExpectQuery(`SELECT base_rate, tax_rate, round_increment, currency\s+FROM app_settings ORDER BY id DESC LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"base_rate", "tax_rate", "round_increment", "currency"}).
			AddRow(60.0, 0.13, 5.0, "USD"))

	settings, err := repo.GetSettings(context.Background())

	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, 60.0, *settings.BaseRate)
	assert.Equal(t, 0.13, *settings.TaxRate)
	assert.Equal(t, 5.0, *settings.RoundIncrement)
	assert.Equal(t, "USD", *settings.Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSettings_NullableColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepo(db)

	mock.ExpectQuery(`SELECT base_rate, tax_rate, round_increment, currency`).
		WillReturnRows(sqlmock.NewRows([]string{"base_rate", "tax_rate", "round_increment", "currency"}).
			AddRow(60.0, nil, nil, nil))

	settings, err := repo.GetSettings(context.Background())

	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, 60.0, *settings.BaseRate)
	assert.Nil(t, settings.TaxRate)
	assert.Nil(t, settings.Currency)
}

func TestGetSettings_EmptyTable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepo(db)

	mock.ExpectQuery(`SELECT base_rate, tax_rate, round_increment, currency`).
		WillReturnError(sql.ErrNoRows)

	settings, err := repo.GetSettings(context.Background())

	require.NoError(t, err)
	assert.Nil(t, settings)
}
