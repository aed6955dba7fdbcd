package models

// Column headers of the agenda table, in canonical order.
const (
	ColServiceID   = "ID_Servicio"
	ColPatientID   = "Paciente_ID"
	ColPatientName = "Nombre_Paciente"
	ColMedication  = "Medicamento"
	ColServiceType = "Tipo_Servicio"
	ColSite        = "Sede"
	ColDate        = "Fecha"
	ColTime        = "Hora"
	ColStatus      = "Estado"
)

var Columns = []string{
	ColServiceID,
	ColPatientID,
	ColPatientName,
	ColMedication,
	ColServiceType,
	ColSite,
	ColDate,
	ColTime,
	ColStatus,
}

// Appointment is one row of the agenda. Date and Time keep the stored text
// (YYYY-MM-DD and HH:MM) so rows written by hand survive a round trip.
type Appointment struct {
	ServiceID   string `json:"service_id"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Medication  string `json:"medication"`
	ServiceType string `json:"service_type"`
	Site        string `json:"site"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
}

// Field returns the value stored under the given column header.
func (a *Appointment) Field(col string) string {
	switch col {
	case ColServiceID:
		return a.ServiceID
	case ColPatientID:
		return a.PatientID
	case ColPatientName:
		return a.PatientName
	case ColMedication:
		return a.Medication
	case ColServiceType:
		return a.ServiceType
	case ColSite:
		return a.Site
	case ColDate:
		return a.Date
	case ColTime:
		return a.Time
	case ColStatus:
		return a.Status
	}
	return ""
}

// SetField assigns v to the given column. Unknown columns are ignored.
func (a *Appointment) SetField(col, v string) {
	switch col {
	case ColServiceID:
		a.ServiceID = v
	case ColPatientID:
		a.PatientID = v
	case ColPatientName:
		a.PatientName = v
	case ColMedication:
		a.Medication = v
	case ColServiceType:
		a.ServiceType = v
	case ColSite:
		a.Site = v
	case ColDate:
		a.Date = v
	case ColTime:
		a.Time = v
	case ColStatus:
		a.Status = v
	}
}

// Row returns the record values in Columns order.
func (a *Appointment) Row() []string {
	row := make([]string, len(Columns))
	for i, col := range Columns {
		row[i] = a.Field(col)
	}
	return row
}
