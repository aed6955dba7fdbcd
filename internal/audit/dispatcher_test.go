package audit

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}

func TestDispatcherWritesOnClose(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(New(db), zerolog.Nop())

	d.Dispatch(Event{
		Actor:    "operador",
		Action:   "service_cancelled",
		Entity:   "service",
		EntityID: "abc-123",
		Metadata: map[string]string{"previous_status": "Pendiente"},
	})
	d.Close()

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "service_cancelled", logs[0].Action)
	assert.Equal(t, "abc-123", logs[0].EntityID)
	assert.JSONEq(t, `{"previous_status":"Pendiente"}`, logs[0].Metadata)
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(New(db), zerolog.Nop())
	d.Close()
	d.Close()

	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "late"}) })
}

func TestNopDispatcher(t *testing.T) {
	d := NewNop()
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "service_created"})
		d.Close()
	})
}

func TestActorFrom(t *testing.T) {
	assert.Equal(t, "system", ActorFrom(context.Background()))
	assert.Equal(t, "ana", ActorFrom(WithActor(context.Background(), "ana")))
}
