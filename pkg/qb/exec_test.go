package qb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedArgs(t *testing.T) {
	args := NamedArgs(map[string]any{"name": "John", "age": 34})

	require.Len(t, args, 2)
	assert.Equal(t, sql.Named("age", 34), args[0])
	assert.Equal(t, sql.Named("name", "John"), args[1])
}

func TestExec(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO t1(`age`,`name`) VALUES (:age,:name);").
		WithArgs(sql.Named("age", 34), sql.Named("name", "John")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	b, err := New("mysql")
	require.NoError(t, err)

	res, err := b.Insert(Field{"age", 34}, Field{"name", "John"}).Table("t1").Exec(context.Background(), db)
	require.NoError(t, err)

	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT `name` FROM t1 WHERE `id`=:id;").
		WithArgs(sql.Named("id", 13)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("John"))

	b, err := New("mysql")
	require.NoError(t, err)

	rows, err := b.Select("name").From("t1").Where(F("id", 13)).Query(context.Background(), db)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var name string
	require.NoError(t, rows.Scan(&name))
	assert.Equal(t, "John", name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecBuildErrorShortCircuits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	b, err := New("mysql")
	require.NoError(t, err)

	_, err = b.From("t1").Exec(context.Background(), db) // no action set
	assert.ErrorIs(t, err, ErrInvalidStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}
