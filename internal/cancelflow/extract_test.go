package cancelflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCancelIntent(t *testing.T) {
	assert.True(t, IsCancelIntent("Eliminar entregas de Jorge Ramírez"))
	assert.True(t, IsCancelIntent("por favor BORRA los registros de Ana"))
	assert.True(t, IsCancelIntent("cancel appointments for John"))
	assert.False(t, IsCancelIntent("¿Qué servicios hay mañana?"))
	assert.False(t, IsCancelIntent("Registrar entrega para Ana"))
}

func TestExtractPatientName(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Eliminar entregas de Jorge Ramírez", "Jorge Ramírez"},
		{"Borrar registros de María", "María"},
		{"Cancelar servicios de Juan Pérez por favor", "Juan Pérez"},
		{"Cancelar servicios de María López, gracias", "María López"},
		{`Elimina "Ana María Gómez"`, "Ana María Gómez"},
		{"borra a Jorge, por favor", "Jorge"},
		{"elimina las entregas del señor Castro", "Castro"},
		{"borrar las entregas del paciente Juan", "Juan"},
		{"cancelar citas de la paciente Sra. Rosa Díaz", "Rosa Díaz"},
		{"delete records for patient Mary Jones", "Mary Jones"},
		{"cancela la cita Pedro Martínez", "Pedro Martínez"},
		{"delete appointments for John Smith", "John Smith"},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractPatientName(tc.text))
		})
	}
}

func TestExtractPatientNameGivesUpWithoutName(t *testing.T) {
	for _, text := range []string{
		"Eliminar entregas",
		"borrar los registros de hoy",
		"cancela todas",
		"elimina 3",
	} {
		assert.Empty(t, ExtractPatientName(text), text)
	}
}
