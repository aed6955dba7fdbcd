package messages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

func sample(id, med string) models.Appointment {
	return models.Appointment{
		ServiceID:   id,
		PatientID:   "CC12345",
		PatientName: "María López",
		Medication:  med,
		ServiceType: "Entrega Domicilio",
		Site:        "Sede Norte",
		Date:        "2025-03-10",
		Time:        "10:00",
		Status:      "Pendiente",
	}
}

func TestCreatedAddsAdvisoryOnlyForHighCost(t *testing.T) {
	ap := sample("id-1", "Insulina Glargina")

	assert.NotContains(t, Created(ap, false), HighCostAdvisory)

	msg := Created(ap, true)
	assert.Contains(t, msg, "ID_Servicio: id-1")
	assert.True(t, strings.HasSuffix(msg, HighCostAdvisory))
}

func TestCandidatesAreNumberedFromOne(t *testing.T) {
	msg := Candidates("maria lopez", []models.Appointment{
		sample("id-a", "Losartán"),
		sample("id-b", "Metformina"),
	})

	assert.Contains(t, msg, "Encontré 2 servicios registrados para **maria lopez**")
	assert.NotContains(t, msg, "activos")
	assert.Contains(t, msg, "1. **Losartán**")
	assert.Contains(t, msg, "2. **Metformina**")
	assert.Contains(t, msg, "`id-b`")
	assert.NotContains(t, msg, "3. **")
}

func TestDeletedListsErrors(t *testing.T) {
	ok := Deleted(2, nil)
	assert.Contains(t, ok, "**2**")
	assert.NotContains(t, ok, "⚠️")

	partial := Deleted(1, []string{"id-x: no se encontró el servicio"})
	assert.Contains(t, partial, "**1**")
	assert.Contains(t, partial, "- id-x: no se encontró el servicio")
}

func TestAvailability(t *testing.T) {
	assert.Equal(t, "No hay horarios disponibles para el 2025-03-09.", Availability("2025-03-09", nil))
	assert.Equal(t,
		"Horarios disponibles para el 2025-03-08: 08:00, 08:30.",
		Availability("2025-03-08", []string{"08:00", "08:30"}),
	)
}
