package migration

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestFlags(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()
	flags := NewFlags(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM legacy_migrations WHERE user_id=\$1\)`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	done, err := flags.Done(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, done)

	mock.ExpectExec(`INSERT INTO legacy_migrations \(user_id\) VALUES \(\$1\)`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, flags.MarkDone(ctx, "user-1"))

	require.NoError(t, mock.ExpectationsWereMet())
}
