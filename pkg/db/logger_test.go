package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/coderr/pkg/logging"
)

type widget struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

func TestQueryLoggingGoesThroughZap(t *testing.T) {
	gdb, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "coderr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })
	require.NoError(t, gdb.AutoMigrate(&widget{}))

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logging.IntoContext(context.Background(), zap.New(core))
	q := gdb.WithContext(ctx)

	var w widget
	require.ErrorIs(t, q.First(&w, 42).Error, gorm.ErrRecordNotFound)

	require.NoError(t, q.Create(&widget{Name: "a"}).Error)
	require.ErrorIs(t, q.Create(&widget{Name: "a"}).Error, gorm.ErrDuplicatedKey)
	assert.Zero(t, logs.Len(), "expected outcomes must not be logged")

	require.Error(t, q.Exec("SELECT * FROM no_such_table").Error)
	failed := logs.FilterMessage("db_query_failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Contains(t, failed[0].ContextMap()["sql"], "no_such_table")
}

func TestZapLoggerSilent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logging.IntoContext(context.Background(), zap.New(core))

	l := newZapLogger(logger.Warn).LogMode(logger.Silent)
	l.Error(ctx, "boom %d", 1)
	assert.Zero(t, logs.Len())

	newZapLogger(logger.Info).Warn(ctx, "careful %s", "now")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "careful now", logs.All()[0].Message)
}
