package notify

import "fmt"

// BookingConfirmation builds the confirmation email for a persisted booking.
// The calendar link is the patient's credential-free add-to-calendar URL.
func BookingConfirmation(patientEmail, doctorName, date, clock, calendarLink string) EmailMessage {
	body := fmt.Sprintf(
		"Your appointment is confirmed.\n\nDoctor: %s\nDate: %s\nTime: %s\n\nAdd it to your calendar:\n%s\n",
		doctorName, date, clock, calendarLink,
	)
	return EmailMessage{
		To:      patientEmail,
		Subject: fmt.Sprintf("Appointment confirmed with %s", doctorName),
		Body:    body,
	}
}
