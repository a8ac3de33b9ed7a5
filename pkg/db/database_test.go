package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "coderr.db")

	gdb, err := Open(context.Background(), DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, Ping(context.Background(), gdb))

	var one int
	require.NoError(t, gdb.Raw("SELECT 1").Scan(&one).Error)
	require.Equal(t, 1, one)
}

func TestOpenRejectsBadInput(t *testing.T) {
	_, err := Open(context.Background(), DriverPostgres, "")
	require.Error(t, err)

	_, err = Open(context.Background(), "oracle", "dsn")
	require.ErrorContains(t, err, "unsupported DB_DRIVER")
}
