package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

func newAuditDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}

func TestAuditLogListFiltersAndPages(t *testing.T) {
	db := newAuditDB(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	rows := []models.AuditLog{
		{Actor: "ana", Action: "service_created", Entity: "service", EntityID: "A", CreatedAt: base},
		{Actor: "ana", Action: "service_cancelled", Entity: "service", EntityID: "A", CreatedAt: base.Add(time.Hour)},
		{Actor: "luis", Action: "service_created", Entity: "service", EntityID: "B", CreatedAt: base.Add(2 * time.Hour)},
		{Actor: "luis", Action: "service_deleted", Entity: "service", EntityID: "B", CreatedAt: base.Add(48 * time.Hour)},
	}
	require.NoError(t, db.Create(&rows).Error)

	repo := NewAuditLogGormRepository(db)

	logs, total, err := repo.List(ctx, AuditLogQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Equal(t, "service_deleted", logs[0].Action)

	logs, total, err = repo.List(ctx, AuditLogQuery{Action: "service_created"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "B", logs[0].EntityID)

	logs, _, err = repo.List(ctx, AuditLogQuery{EntityID: "A", Actor: "ana"})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	day := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	_, total, err = repo.List(ctx, AuditLogQuery{From: day, To: day})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	logs, total, err = repo.List(ctx, AuditLogQuery{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, logs, 1)
	assert.Equal(t, "service_created", logs[0].Action)
	assert.Equal(t, "A", logs[0].EntityID)
}
