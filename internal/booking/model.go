package booking

import (
	"strings"
	"time"

	"github.com/mediscribe/platform/internal/calendar"
)

// StatusConfirmed is the only status a persisted booking ever carries;
// records are append-only and never mutated.
const StatusConfirmed = "Confirmed"

// Request is the booking form submission. It is transient; only the derived
// Record is persisted.
type Request struct {
	PatientEmail string `json:"patient_email"`
	DoctorName   string `json:"doctor_name"`
	Date         string `json:"date"` // 2006-01-02
	Time         string `json:"time"` // 15:04
}

// Validate checks the form. Email and doctor name are required; the slot
// must parse in the clinic timezone.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.PatientEmail) == "" {
		return ErrMissingPatientEmail
	}
	if strings.TrimSpace(r.DoctorName) == "" {
		return ErrMissingDoctorName
	}
	if _, err := r.SlotStart(); err != nil {
		return ErrInvalidSlot
	}
	return nil
}

// SlotStart parses the requested slot start in the clinic timezone.
func (r *Request) SlotStart() (time.Time, error) {
	return calendar.ParseSlotStart(r.Date, r.Time)
}

// Record is the durable appointment row appended to the appointments
// collection on every successful booking.
type Record struct {
	ID           string    `json:"id" dynamodbav:"id"`
	PatientEmail string    `json:"patient_email" dynamodbav:"patientEmail"`
	Specialist   string    `json:"specialist" dynamodbav:"specialist"`
	DoctorName   string    `json:"doctor_name" dynamodbav:"doctorName"`
	Status       string    `json:"status" dynamodbav:"status"`
	Timestamp    time.Time `json:"timestamp" dynamodbav:"timestamp"`
}
