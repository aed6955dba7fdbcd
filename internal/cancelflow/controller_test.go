package cancelflow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/pharma-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
	usecase "github.com/BruksfildServices01/pharma-scheduler/internal/usecase/appointment"
)

func maria(id, date, status string) models.Appointment {
	return models.Appointment{
		ServiceID:   id,
		PatientID:   "523456789",
		PatientName: "María López",
		Medication:  "Losartan",
		ServiceType: "Entrega Domicilio",
		Site:        "Norte",
		Date:        date,
		Time:        "10:00",
		Status:      status,
	}
}

type fixture struct {
	store *repository.AppointmentXLSXStore
	ctrl  *Controller
}

func newFixture(t *testing.T, records ...models.Appointment) fixture {
	t.Helper()
	ctx := context.Background()

	store := repository.NewAppointmentXLSXStore(filepath.Join(t.TempDir(), "agenda.xlsx"), zerolog.Nop())
	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.WriteAll(ctx, records))

	ctrl := NewController(
		usecase.NewQueryAppointments(store),
		usecase.NewHardDelete(store, audit.NewNop(), zerolog.Nop()),
		NewMemorySessionStore(10*time.Minute, nil),
		zerolog.Nop(),
	)
	return fixture{store: store, ctrl: ctrl}
}

func TestDeleteByNameSelectsOne(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		maria("A", "2025-03-10", "Pendiente"),
		maria("B", "2025-03-11", "Cancelado"),
		models.Appointment{ServiceID: "C", PatientName: "José Pérez", Date: "2025-03-10", Time: "11:00", Status: "Pendiente"},
	)

	reply, err := f.ctrl.Handle(ctx, "s1", "Eliminar entregas de maria lopez")
	require.NoError(t, err)
	assert.True(t, reply.Applicable)
	assert.Equal(t, StateAwaitingSelection, reply.State)
	require.Len(t, reply.Candidates, 2)
	assert.Equal(t, "A", reply.Candidates[0].ServiceID)
	assert.Equal(t, "B", reply.Candidates[1].ServiceID)
	assert.Contains(t, reply.Text, "Encontré 2 servicios")

	reply, err = f.ctrl.Handle(ctx, "s1", "1")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, reply.State)
	require.Len(t, reply.Deleted, 1)
	assert.Equal(t, "A", reply.Deleted[0].ServiceID)
	assert.Contains(t, reply.Text, "Eliminé **1** servicio(s)")

	left, err := f.store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, "B", left[0].ServiceID)
	assert.Equal(t, "Cancelado", left[0].Status)
	assert.Equal(t, "C", left[1].ServiceID)

	// the list was consumed
	reply, err = f.ctrl.Handle(ctx, "s1", "1")
	require.NoError(t, err)
	assert.False(t, reply.Applicable)
}

func TestDeleteByNameAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		maria("A", "2025-03-10", "Pendiente"),
		maria("B", "2025-03-11", "Entregado"),
	)

	_, err := f.ctrl.Handle(ctx, "s1", "borra los registros de María López")
	require.NoError(t, err)

	reply, err := f.ctrl.Handle(ctx, "s1", "todas")
	require.NoError(t, err)
	assert.Len(t, reply.Deleted, 2)
	assert.Empty(t, reply.Errors)

	left, err := f.store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestDeleteByNameReportsVanishedCandidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		maria("A", "2025-03-10", "Pendiente"),
		maria("B", "2025-03-11", "Pendiente"),
	)

	_, err := f.ctrl.Handle(ctx, "s1", "Eliminar entregas de María López")
	require.NoError(t, err)

	// Someone else removes A before the user answers.
	require.NoError(t, f.store.WriteAll(ctx, []models.Appointment{maria("B", "2025-03-11", "Pendiente")}))

	reply, err := f.ctrl.Handle(ctx, "s1", "1,2")
	require.NoError(t, err)
	require.Len(t, reply.Deleted, 1)
	assert.Equal(t, "B", reply.Deleted[0].ServiceID)
	require.Len(t, reply.Errors, 1)
	assert.Equal(t, "A", reply.Errors[0].ServiceID)
	assert.ErrorIs(t, reply.Errors[0].Err, domain.ErrNotFound)
	assert.Contains(t, reply.Text, "A: no se encontró el servicio")
}

func TestDeleteByNamePrompts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, maria("A", "2025-03-10", "Pendiente"))

	reply, err := f.ctrl.Handle(ctx, "s1", "¿Qué servicios hay hoy?")
	require.NoError(t, err)
	assert.False(t, reply.Applicable)

	reply, err = f.ctrl.Handle(ctx, "s1", "Eliminar entregas")
	require.NoError(t, err)
	assert.True(t, reply.Applicable)
	assert.Equal(t, StateIdle, reply.State)
	assert.Contains(t, reply.Text, "No pude identificar el nombre")

	reply, err = f.ctrl.Handle(ctx, "s1", "Eliminar entregas de Pedro Martínez")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, reply.State)
	assert.Contains(t, reply.Text, "No encontré entregas/registros para **Pedro Martínez**")
}

func TestDeleteByNameSelectionReplies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		maria("A", "2025-03-10", "Pendiente"),
		models.Appointment{ServiceID: "C", PatientName: "José Pérez", Date: "2025-03-10", Time: "11:00", Status: "Pendiente"},
	)

	_, err := f.ctrl.Handle(ctx, "s1", "Eliminar entregas de María López")
	require.NoError(t, err)

	reply, err := f.ctrl.Handle(ctx, "s1", "el de la mañana")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingSelection, reply.State)
	assert.Contains(t, reply.Text, "No entendí")

	reply, err = f.ctrl.Handle(ctx, "s1", "7")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingSelection, reply.State)

	// a new request replaces the pending list
	reply, err = f.ctrl.Handle(ctx, "s1", "mejor elimina los servicios de José Pérez")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingSelection, reply.State)
	require.Len(t, reply.Candidates, 1)
	assert.Equal(t, "C", reply.Candidates[0].ServiceID)

	reply, err = f.ctrl.Handle(ctx, "s1", "salir")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, reply.State)
	assert.Contains(t, reply.Text, "no se eliminó ningún servicio")

	left, err := f.store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, left, 2)
}

func TestDeleteByNameReportsBlankID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, maria("A", "2025-03-10", "Pendiente"))

	sessions := NewMemorySessionStore(time.Minute, nil)
	require.NoError(t, sessions.Save(ctx, "s1", &Session{
		State:       StateAwaitingSelection,
		PatientName: "maria lopez",
		Candidates: []models.Appointment{
			maria("A", "2025-03-10", "Pendiente"),
			maria("  ", "2025-03-11", "Pendiente"),
		},
	}))
	deleter := usecase.NewHardDelete(f.store, audit.NewNop(), zerolog.Nop())
	ctrl := NewController(usecase.NewQueryAppointments(f.store), deleter, sessions, zerolog.Nop())

	reply, err := ctrl.Handle(ctx, "s1", "todas")
	require.NoError(t, err)

	require.Len(t, reply.Deleted, 1)
	assert.Equal(t, "A", reply.Deleted[0].ServiceID)
	require.Len(t, reply.Errors, 1)
	assert.Equal(t, "", reply.Errors[0].ServiceID)
	assert.Contains(t, reply.Text, "(sin ID): ID vacío")

	res := deleter.Batch(ctx, []string{"", "missing"})
	assert.Equal(t, 2, res.Requested)
	assert.Len(t, res.Errors, 2)
}

func TestDeleteByNameEmptySession(t *testing.T) {
	ctx := context.Background()
	sessions := NewMemorySessionStore(time.Minute, nil)
	require.NoError(t, sessions.Save(ctx, "s1", &Session{State: StateAwaitingSelection}))

	ctrl := NewController(nil, nil, sessions, zerolog.Nop())

	reply, err := ctrl.Handle(ctx, "s1", "1")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, reply.State)
	assert.Contains(t, reply.Text, "No hay una lista activa")

	got, err := sessions.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

type failingSearch struct{ err error }

func (f failingSearch) SearchByNameAllStatuses(context.Context, string) ([]models.Appointment, error) {
	return nil, f.err
}

func TestDeleteByNameSearchFailure(t *testing.T) {
	ctrl := NewController(
		failingSearch{err: domain.ErrStoreLocked},
		nil,
		NewMemorySessionStore(time.Minute, nil),
		zerolog.Nop(),
	)

	_, err := ctrl.Handle(context.Background(), "s1", "Eliminar entregas de María López")
	assert.True(t, errors.Is(err, domain.ErrStoreLocked))
}
