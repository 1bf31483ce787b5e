// repository/listing/listing_repository_test.go
package listing

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newTx(t *testing.T) (*sql.Tx, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	return tx, mock
}

func TestDecrementUnit_GuardedByAvailability(t *testing.T) {
	tx, mock := newTx(t)
	mock.ExpectExec(`UPDATE listings[\s\S]*available_units > 0`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := &repo{}
	aff, err := r.DecrementUnit(context.Background(), tx, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), aff)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementUnit_Exhausted(t *testing.T) {
	tx, mock := newTx(t)
	mock.ExpectExec(`UPDATE listings`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := &repo{}
	aff, err := r.DecrementUnit(context.Background(), tx, 10)
	require.NoError(t, err)
	require.Equal(t, int64(0), aff, "the last unit cannot be taken twice")
}

func TestIncrementUnit_GuardedByCapacity(t *testing.T) {
	tx, mock := newTx(t)
	mock.ExpectExec(`UPDATE listings[\s\S]*available_units < total_units`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := &repo{}
	aff, err := r.IncrementUnit(context.Background(), tx, 10)
	require.NoError(t, err)
	require.Equal(t, int64(0), aff, "a credit past total_units affects no rows")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsTx(t *testing.T) {
	tx, mock := newTx(t)
	mock.ExpectQuery(`SELECT 1 FROM listings`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`SELECT 1 FROM listings`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	r := &repo{}
	ok, err := r.ExistsTx(context.Background(), tx, 10)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.ExistsTx(context.Background(), tx, 99)
	require.NoError(t, err)
	require.False(t, ok)
}
