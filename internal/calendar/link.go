package calendar

import (
	"fmt"
	"net/url"
	"time"
)

const linkTimeFormat = "20060102T150400"

// RenderLink produces the credential-free "add to your calendar" URL for the
// patient's own account: a pre-filled calendar-entry creation page covering
// the same 30-minute slot. Pure string work, no network access, never fails.
func RenderLink(patientEmail, doctorName string, start time.Time) string {
	end := start.Add(SlotDuration)

	title := url.QueryEscape(fmt.Sprintf("Doctor Appointment: %s", doctorName))
	details := url.QueryEscape(fmt.Sprintf("Confirmed.\nDoctor: %s\nEmail: %s", doctorName, patientEmail))
	location := url.QueryEscape("Medi-Scribe Medical Center")
	dates := start.Format(linkTimeFormat) + "/" + end.Format(linkTimeFormat)

	return fmt.Sprintf(
		"https://calendar.google.com/calendar/render?action=TEMPLATE&text=%s&details=%s&dates=%s&location=%s",
		title, details, dates, location,
	)
}
