package booking

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mediscribe/platform/internal/calendar"
	"github.com/mediscribe/platform/internal/notify"
	"github.com/mediscribe/platform/internal/observability/metrics"
	"github.com/mediscribe/platform/internal/report"
	"github.com/mediscribe/platform/internal/session"
	"github.com/mediscribe/platform/pkg/logging"
)

var bookingTracer = otel.Tracer("mediscribe.internal.booking")

// Confirmation is the outcome of one booking submission. CalendarBlocked
// reports the hospital-side write separately because a calendar failure does
// not undo the booking.
type Confirmation struct {
	Record           *Record          `json:"record"`
	CalendarBlocked  bool             `json:"calendar_blocked"`
	CalendarDetail   string           `json:"calendar_detail,omitempty"`
	AddToCalendarURL string           `json:"add_to_calendar_url"`
	Artifact         *report.Artifact `json:"report,omitempty"`
}

// Service drives the confirm transition of the kiosk flow: block the
// hospital calendar, render the patient's calendar link, persist the
// booking record, compose the booking pass, send the confirmation email.
type Service struct {
	integrator *calendar.Integrator
	repo       Repository
	composer   *report.Composer
	reports    report.Repository
	email      notify.EmailSender
	metrics    *metrics.KioskMetrics
	logger     *logging.Logger
}

// NewService constructs a booking service.
func NewService(integrator *calendar.Integrator, repo Repository, composer *report.Composer, reports report.Repository, email notify.EmailSender, m *metrics.KioskMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("booking: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		integrator: integrator,
		repo:       repo,
		composer:   composer,
		reports:    reports,
		email:      email,
		metrics:    m,
		logger:     logger.Named("booking"),
	}
}

// Confirm processes one booking submission for the given session. Validation
// failures and a missing analysis reject the request with no side effects.
// After that the flow is deliberately non-atomic: a failed hospital-calendar
// write is surfaced in the Confirmation but the record is still persisted
// and the booking pass still offered.
func (s *Service) Confirm(ctx context.Context, sess *session.Session, req Request) (*Confirmation, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.confirm")
	defer span.End()

	if !sess.CanBook() {
		s.metrics.ObserveBooking("rejected")
		return nil, ErrAnalysisRequired
	}
	if err := req.Validate(); err != nil {
		s.metrics.ObserveBooking("invalid")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("mediscribe.session_id", sess.ID),
		attribute.String("mediscribe.doctor", req.DoctorName),
	)

	start, err := req.SlotStart()
	if err != nil {
		s.metrics.ObserveBooking("invalid")
		return nil, ErrInvalidSlot
	}

	blocked, detail := s.integrator.BlockHospitalSlot(ctx, calendar.Slot{
		PatientName: req.PatientEmail,
		DoctorName:  req.DoctorName,
		Start:       start,
	})

	addLink := calendar.RenderLink(req.PatientEmail, req.DoctorName, start)

	rec := &Record{
		PatientEmail: req.PatientEmail,
		Specialist:   sess.Analysis.Specialist,
		DoctorName:   req.DoctorName,
		Status:       StatusConfirmed,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("error")
		return nil, fmt.Errorf("booking: persist record: %w", err)
	}

	sess.MarkConfirmed()
	s.metrics.ObserveBooking("confirmed")
	s.logger.Info("booking confirmed",
		"session_id", sess.ID,
		"doctor", req.DoctorName,
		"calendar_blocked", blocked,
	)

	conf := &Confirmation{
		Record:           rec,
		CalendarBlocked:  blocked,
		CalendarDetail:   detail,
		AddToCalendarURL: addLink,
	}

	if s.composer != nil {
		apptInfo := fmt.Sprintf("Email: %s\nDoc: %s\nDate: %s %s\nStatus: %s",
			req.PatientEmail, req.DoctorName, req.Date, req.Time, StatusConfirmed)
		artifact, err := s.composer.Compose(ctx, report.Input{
			Summary:  sess.Analysis.Summary,
			Doctors:  apptInfo,
			ApptInfo: apptInfo,
			Sources:  sess.Analysis.Sources,
		})
		if err != nil {
			// The booking pass is a convenience; the booking itself stands.
			s.metrics.ObserveReport(report.KindBooking, "error")
			s.logger.Error("booking pass generation failed", "error", err)
		} else {
			s.metrics.ObserveReport(report.KindBooking, "ok")
			conf.Artifact = artifact
			if s.reports != nil {
				repRec := &report.Record{
					Specialist: sess.Analysis.Specialist,
					StorageURI: artifact.StorageURI,
					Kind:       report.KindBooking,
				}
				if err := s.reports.Append(ctx, repRec); err != nil {
					s.logger.Error("failed to record booking pass", "error", err)
				}
			}
		}
	}

	if s.email != nil {
		msg := notify.BookingConfirmation(req.PatientEmail, req.DoctorName, req.Date, req.Time, addLink)
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("confirmation email failed", "error", err, "to", req.PatientEmail)
		}
	}

	return conf, nil
}

// List returns every persisted booking record.
func (s *Service) List(ctx context.Context) ([]*Record, error) {
	return s.repo.List(ctx)
}
