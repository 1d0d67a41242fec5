package notify

import (
	"strings"
	"testing"
)

func TestBookingConfirmation(t *testing.T) {
	msg := BookingConfirmation(
		"pat@example.com",
		"Dr. Rao",
		"2025-06-01",
		"10:00",
		"https://calendar.google.com/calendar/render?action=TEMPLATE",
	)

	if msg.To != "pat@example.com" {
		t.Errorf("unexpected recipient %q", msg.To)
	}
	if !strings.Contains(msg.Subject, "Dr. Rao") {
		t.Errorf("subject should name the doctor: %q", msg.Subject)
	}
	for _, want := range []string{"Dr. Rao", "2025-06-01", "10:00", "calendar.google.com"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q: %s", want, msg.Body)
		}
	}
}
