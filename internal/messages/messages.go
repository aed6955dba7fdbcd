// Package messages renders the Spanish text shown to pharmacy staff. It only
// formats; every decision is taken by the callers.
package messages

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

const HighCostAdvisory = "⚠️ IMPORTANTE: Este es un medicamento de alto costo. Asegúrate de tener la fórmula médica original."

// -----------------------------------------------------
// Create
// -----------------------------------------------------

func Created(ap models.Appointment, highCost bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Servicio agregado exitosamente para %s el %s a las %s. ID_Servicio: %s",
		ap.PatientName, ap.Date, ap.Time, ap.ServiceID)
	if highCost {
		b.WriteString("\n")
		b.WriteString(HighCostAdvisory)
	}
	return b.String()
}

func Rejected(reason string) string {
	return "❌ Error: " + reason
}

// -----------------------------------------------------
// Queries
// -----------------------------------------------------

func writeRecord(b *strings.Builder, i int, ap models.Appointment, withDate bool) {
	fmt.Fprintf(b, "%d. %s (ID: %s)\n", i, ap.PatientName, ap.PatientID)
	fmt.Fprintf(b, "   Medicamento: %s\n", ap.Medication)
	fmt.Fprintf(b, "   Tipo: %s\n", ap.ServiceType)
	fmt.Fprintf(b, "   Sede: %s\n", ap.Site)
	if withDate {
		fmt.Fprintf(b, "   Fecha: %s\n", ap.Date)
	}
	fmt.Fprintf(b, "   Hora: %s\n", ap.Time)
	fmt.Fprintf(b, "   Estado: %s\n\n", ap.Status)
}

func listing(title string, records []models.Appointment, withDate bool) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	for i, ap := range records {
		writeRecord(&b, i+1, ap, withDate)
	}
	return strings.TrimRight(b.String(), "\n")
}

func ByDate(date string, records []models.Appointment) string {
	if len(records) == 0 {
		return fmt.Sprintf("No hay servicios programados para el %s.", date)
	}
	return listing(fmt.Sprintf("Servicios programados para el %s:", date), records, false)
}

func ByDateTime(date, hm string, records []models.Appointment) string {
	if len(records) == 0 {
		return fmt.Sprintf("No hay servicios programados para el %s a las %s.", date, hm)
	}
	return listing(fmt.Sprintf("Servicios programados para el %s a las %s:", date, hm), records, true)
}

func ByDateRange(from, to string, records []models.Appointment) string {
	if len(records) == 0 {
		return fmt.Sprintf("No hay servicios programados entre el %s y el %s.", from, to)
	}
	return listing(fmt.Sprintf("Servicios programados del %s al %s:", from, to), records, true)
}

func ByPatient(patientID, name string, records []models.Appointment) string {
	who := fmt.Sprintf("ID %s", patientID)
	if patientID == "" {
		who = fmt.Sprintf("nombre '%s'", name)
	}
	if len(records) == 0 {
		return fmt.Sprintf("No se encontraron servicios activos para el paciente con %s.", who)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Servicios del paciente (%s):\n\n", who)
	for i, ap := range records {
		fmt.Fprintf(&b, "%d. Fecha: %s - Hora: %s\n", i+1, ap.Date, ap.Time)
		fmt.Fprintf(&b, "   Nombre: %s\n", ap.PatientName)
		fmt.Fprintf(&b, "   ID: %s\n", ap.PatientID)
		fmt.Fprintf(&b, "   Medicamento: %s\n", ap.Medication)
		fmt.Fprintf(&b, "   Tipo: %s\n", ap.ServiceType)
		fmt.Fprintf(&b, "   Sede: %s\n", ap.Site)
		fmt.Fprintf(&b, "   Estado: %s\n", ap.Status)
		fmt.Fprintf(&b, "   ID_Servicio: %s\n\n", ap.ServiceID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// -----------------------------------------------------
// Search for cancellation
// -----------------------------------------------------

// Criterion is one "label: value" pair of a search.
type Criterion struct {
	Label string
	Value string
}

func detail(b *strings.Builder, ap models.Appointment, indent string) {
	fmt.Fprintf(b, "%s**Paciente:** %s (ID: %s)\n", indent, ap.PatientName, ap.PatientID)
	fmt.Fprintf(b, "%s**Medicamento:** %s\n", indent, ap.Medication)
	fmt.Fprintf(b, "%s**Tipo:** %s\n", indent, ap.ServiceType)
	fmt.Fprintf(b, "%s**Sede:** %s\n", indent, ap.Site)
	fmt.Fprintf(b, "%s**Fecha:** %s\n", indent, ap.Date)
	fmt.Fprintf(b, "%s**Hora:** %s\n", indent, ap.Time)
	fmt.Fprintf(b, "%s**Estado:** %s\n", indent, ap.Status)
}

func SearchResult(criteria []Criterion, records []models.Appointment) string {
	switch len(records) {
	case 0:
		parts := make([]string, 0, len(criteria))
		for _, c := range criteria {
			if c.Value != "" {
				parts = append(parts, c.Label+": "+c.Value)
			}
		}
		return fmt.Sprintf("No se encontraron servicios activos con los criterios: %s.", strings.Join(parts, ", "))

	case 1:
		ap := records[0]
		var b strings.Builder
		b.WriteString("Se encontró 1 servicio:\n\n")
		fmt.Fprintf(&b, "**ID_Servicio:** %s\n", ap.ServiceID)
		detail(&b, ap, "")
		fmt.Fprintf(&b, "\nUsa el ID_Servicio %s para cancelar este servicio.", ap.ServiceID)
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ Se encontraron %d servicios que coinciden con los criterios:\n\n", len(records))
	for i, ap := range records {
		fmt.Fprintf(&b, "%d. **ID_Servicio:** %s\n", i+1, ap.ServiceID)
		detail(&b, ap, "   ")
		b.WriteString("\n")
	}
	b.WriteString("Por favor, especifica el ID_Servicio del servicio que deseas cancelar, o proporciona más criterios (fecha, hora, medicamento) para reducir los resultados.")
	return b.String()
}

// Ambiguous lists the records sharing a patient, date and time key.
func Ambiguous(records []models.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ Se encontraron %d servicios con ese paciente, fecha y hora:\n\n", len(records))
	for i, ap := range records {
		fmt.Fprintf(&b, "%d. ID_Servicio: %s\n", i+1, ap.ServiceID)
		fmt.Fprintf(&b, "   Medicamento: %s, Sede: %s, Estado: %s\n\n", ap.Medication, ap.Site, ap.Status)
	}
	b.WriteString("Indica el ID_Servicio del servicio que deseas actualizar.")
	return b.String()
}

func StatusUpdated(ap models.Appointment) string {
	return fmt.Sprintf("Estado actualizado a '%s'", ap.Status)
}

func SoftCancelled(prior models.Appointment) string {
	var b strings.Builder
	b.WriteString("✅ Servicio cancelado exitosamente\n\n")
	b.WriteString("**Servicio cancelado:**\n")
	fmt.Fprintf(&b, "- Paciente: %s (ID: %s)\n", prior.PatientName, prior.PatientID)
	fmt.Fprintf(&b, "- Medicamento: %s\n", prior.Medication)
	fmt.Fprintf(&b, "- Fecha: %s a las %s\n", prior.Date, prior.Time)
	b.WriteString("- El registro se mantiene en el sistema con estado 'Cancelado' para auditoría.")
	return b.String()
}

// -----------------------------------------------------
// Deletion by name
// -----------------------------------------------------

func AskForName() string {
	return "No pude identificar el nombre del paciente. Por favor, menciona el nombre. Ejemplos:\n" +
		"- `Eliminar entregas de Jorge Ramírez`\n" +
		"- `Borrar registros de María`\n" +
		"- `Cancelar servicios de Juan Pérez`"
}

func NoCandidates(name string) string {
	return fmt.Sprintf("No encontré entregas/registros para **%s**.", name)
}

func Candidates(name string, records []models.Appointment) string {
	lines := []string{fmt.Sprintf("Encontré %d servicios registrados para **%s**:", len(records), name), ""}
	for i, ap := range records {
		lines = append(lines, fmt.Sprintf(
			"%d. **%s** — %s %s — %s  \n   ID_Servicio: `%s`",
			i+1, ap.Medication, ap.Date, ap.Time, ap.Site, ap.ServiceID,
		))
	}
	lines = append(lines, "", "Responde con el número a cancelar (ej: `1`) o varios (ej: `1,3`). También puedes escribir `todas`.")
	return strings.Join(lines, "\n")
}

func InvalidSelection() string {
	return "No entendí qué servicio cancelar. Responde con un número (ej: `1`) o varios (ej: `1,3`). " +
		"Escribe `salir` para no eliminar nada."
}

func NoActiveList() string {
	return "No hay una lista activa de servicios para cancelar. Escribe: `Cancelar servicios de <nombre>`."
}

func Aborted() string {
	return "De acuerdo, no se eliminó ningún servicio."
}

// Deleted summarizes a batch deletion. errs holds one line per failed id.
func Deleted(deleted int, errs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Eliminé **%d** servicio(s) del Excel.", deleted)
	if len(errs) > 0 {
		b.WriteString("\n\n⚠️ Algunos no se pudieron cancelar:\n- ")
		b.WriteString(strings.Join(errs, "\n- "))
	}
	b.WriteString("\n\nSi quieres eliminar más, escribe: `Eliminar servicios de <nombre>`.")
	return b.String()
}

// -----------------------------------------------------
// Errors
// -----------------------------------------------------

const (
	StoreLocked = "El archivo de agenda está bloqueado. Cierra el archivo en otros programas y vuelve a intentar."
	StoreFailed = "No se pudo acceder al archivo de agenda."
	Conflict    = "La agenda fue modificada por otro programa mientras se guardaba. Vuelve a intentar."
)

// -----------------------------------------------------
// Availability
// -----------------------------------------------------

func Availability(date string, starts []string) string {
	if len(starts) == 0 {
		return fmt.Sprintf("No hay horarios disponibles para el %s.", date)
	}
	return fmt.Sprintf("Horarios disponibles para el %s: %s.", date, strings.Join(starts, ", "))
}
