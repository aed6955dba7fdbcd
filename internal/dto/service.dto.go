package dto

import (
	"time"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

// --------- Requests ---------

type CreateServiceRequest struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Medication  string `json:"medication"`
	ServiceType string `json:"service_type"`
	Site        string `json:"site"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
}

func (r CreateServiceRequest) ToDomain() domain.NewAppointment {
	return domain.NewAppointment{
		PatientID:   r.PatientID,
		PatientName: r.PatientName,
		Medication:  r.Medication,
		ServiceType: r.ServiceType,
		Site:        r.Site,
		Date:        r.Date,
		Time:        r.Time,
		Status:      r.Status,
	}
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type StatusByKeyRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

type LoginRequest struct {
	Operator string `json:"operator" binding:"required"`
	Key      string `json:"key" binding:"required"`
}

// --------- Responses ---------

type ServiceDTO struct {
	Message string             `json:"message"`
	Service models.Appointment `json:"service"`
}

type LoginDTO struct {
	Token     string    `json:"token"`
	Operator  string    `json:"operator"`
	ExpiresAt time.Time `json:"expires_at"`
}
