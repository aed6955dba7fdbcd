package appointment

import (
	"strings"

	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "Pendiente"
	StatusDelivered Status = "Entregado"
	StatusCancelled Status = "Cancelado"
)

var statuses = []Status{StatusPending, StatusDelivered, StatusCancelled}

// ParseStatus accepts the stored values case-insensitively.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", httperr.Invalid("status", "el estado debe ser Pendiente, Entregado o Cancelado")
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Service Type
// ===============================

type ServiceType string

const (
	ServiceHomeDelivery  ServiceType = "Entrega Domicilio"
	ServiceInPersonVisit ServiceType = "Cita Presencial"
)

var serviceTypeSynonyms = map[string]ServiceType{
	"domicilio":           ServiceHomeDelivery,
	"entrega domicilio":   ServiceHomeDelivery,
	"entrega a domicilio": ServiceHomeDelivery,
	"home delivery":       ServiceHomeDelivery,
	"delivery":            ServiceHomeDelivery,
	"presencial":          ServiceInPersonVisit,
	"cita presencial":     ServiceInPersonVisit,
	"cita":                ServiceInPersonVisit,
	"in person":           ServiceInPersonVisit,
	"visit":               ServiceInPersonVisit,
}

// NormalizeServiceType maps free-text synonyms onto one of the two service types.
func NormalizeServiceType(s string) (ServiceType, error) {
	key := strings.Join(strings.Fields(NormalizeName(s)), " ")
	if st, ok := serviceTypeSynonyms[key]; ok {
		return st, nil
	}
	return "", httperr.Invalid("service_type", "el tipo de servicio debe ser 'Entrega Domicilio' o 'Cita Presencial'")
}
