package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/mediscribe/platform/internal/observability/metrics"
	"github.com/mediscribe/platform/pkg/logging"
)

// Appointment slots are fixed-length and anchored to the clinic timezone.
const (
	SlotDuration = 30 * time.Minute
	clinicTZName = "Asia/Kolkata"
)

// clinicTZ falls back to a fixed IST offset when the tzdata lookup fails.
var clinicTZ = loadClinicTZ()

func loadClinicTZ() *time.Location {
	loc, err := time.LoadLocation(clinicTZName)
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

// Slot describes one requested appointment window.
type Slot struct {
	PatientName string
	DoctorName  string
	Start       time.Time
}

// ParseSlotStart combines the booking form's date and time values into the
// slot start in the clinic timezone.
func ParseSlotStart(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(date)+" "+strings.TrimSpace(clock), clinicTZ)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: parse slot %q %q: %w", date, clock, err)
	}
	return t, nil
}

// EventInserter is the slice of the Google Calendar API the integrator
// needs; tests substitute a fake.
type EventInserter interface {
	Insert(ctx context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error)
}

// GoogleInserter adapts *gcal.Service to EventInserter.
type GoogleInserter struct {
	svc *gcal.Service
}

// NewGoogleInserter wraps a calendar service.
func NewGoogleInserter(svc *gcal.Service) *GoogleInserter {
	return &GoogleInserter{svc: svc}
}

// Insert writes the event to the given calendar.
func (g *GoogleInserter) Insert(ctx context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error) {
	return g.svc.Events.Insert(calendarID, event).Context(ctx).Do()
}

// Integrator blocks slots on the shared hospital calendar using clinic-held
// credentials. The patient side never goes through here; it gets the
// credential-free link from RenderLink.
type Integrator struct {
	inserter   EventInserter
	calendarID string
	location   string
	metrics    *metrics.KioskMetrics
	logger     *logging.Logger
}

// NewIntegrator builds the hospital-side integrator. An empty calendarID
// (vault fetch failed) leaves the integrator degraded: every block attempt
// reports failure without calling the API.
func NewIntegrator(inserter EventInserter, calendarID, location string, m *metrics.KioskMetrics, logger *logging.Logger) *Integrator {
	if logger == nil {
		logger = logging.Default()
	}
	if location == "" {
		location = "Medi-Scribe Medical Center"
	}
	return &Integrator{
		inserter:   inserter,
		calendarID: calendarID,
		location:   location,
		metrics:    m,
		logger:     logger.Named("calendar"),
	}
}

// BlockHospitalSlot inserts the blocking event on the master calendar.
// It never returns an error to the caller: the result is (true, eventLink)
// or (false, errorText) so the booking flow can continue either way.
func (i *Integrator) BlockHospitalSlot(ctx context.Context, slot Slot) (bool, string) {
	if i.inserter == nil || i.calendarID == "" {
		i.metrics.ObserveCalendarWrite("skipped")
		i.logger.Warn("hospital calendar not configured, slot not blocked",
			"doctor", slot.DoctorName,
		)
		return false, "hospital calendar unavailable"
	}

	start := slot.Start.In(clinicTZ)
	end := start.Add(SlotDuration)

	event := &gcal.Event{
		Summary:     fmt.Sprintf("BOOKED: %s (Pt: %s)", slot.DoctorName, slot.PatientName),
		Location:    i.location,
		Description: fmt.Sprintf("Official Appointment.\n\nDoctor: %s\nPatient: %s", slot.DoctorName, slot.PatientName),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: clinicTZName},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: clinicTZName},
		Attendees:   []*gcal.EventAttendee{{Email: i.calendarID}},
	}

	created, err := i.inserter.Insert(ctx, i.calendarID, event)
	if err != nil {
		i.metrics.ObserveCalendarWrite("error")
		i.logger.Error("hospital calendar insert failed", "error", err, "doctor", slot.DoctorName)
		return false, err.Error()
	}

	i.metrics.ObserveCalendarWrite("ok")
	i.logger.Info("hospital slot blocked",
		"doctor", slot.DoctorName,
		"start", start.Format(time.RFC3339),
		"event_link", created.HtmlLink,
	)
	return true, created.HtmlLink
}
