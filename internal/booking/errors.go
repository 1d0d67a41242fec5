package booking

import "errors"

var (
	// ErrMissingPatientEmail is returned when the booking form has no email.
	ErrMissingPatientEmail = errors.New("patient email is required")

	// ErrMissingDoctorName is returned when the booking form has no doctor.
	ErrMissingDoctorName = errors.New("doctor name is required")

	// ErrInvalidSlot is returned when the date/time pair cannot be parsed.
	ErrInvalidSlot = errors.New("appointment date and time must be valid")

	// ErrAnalysisRequired is returned when booking is attempted before a
	// report has been analyzed in the session.
	ErrAnalysisRequired = errors.New("analyze a report before booking")
)
