package session

import (
	"time"

	"github.com/mediscribe/platform/internal/analysis"
)

// State tracks where a patient visit is in the kiosk flow.
type State string

const (
	// StateIdle is a fresh session with no analysis yet.
	StateIdle State = "idle"
	// StateAnalyzed means an AnalysisResult is held and booking is allowed.
	StateAnalyzed State = "analyzed"
	// StateConfirmed means a booking record has been persisted.
	StateConfirmed State = "confirmed"
)

// Session is the per-visit context object. It owns the analysis result and
// booking progress exclusively; sessions are never shared between patients.
type Session struct {
	ID        string           `json:"id"`
	State     State            `json:"state"`
	Analysis  *analysis.Result `json:"analysis,omitempty"`
	City      string           `json:"city,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ApplyAnalysis stores a fresh analysis result and resets any prior booking
// progress: a new analysis restarts the cycle.
func (s *Session) ApplyAnalysis(res *analysis.Result, city string) {
	s.Analysis = res
	s.City = city
	s.State = StateAnalyzed
	s.UpdatedAt = time.Now().UTC()
}

// MarkConfirmed records that a booking was persisted for this visit.
func (s *Session) MarkConfirmed() {
	s.State = StateConfirmed
	s.UpdatedAt = time.Now().UTC()
}

// CanBook reports whether the booking transition is allowed. An appointment
// requires a held analysis result first.
func (s *Session) CanBook() bool {
	return s != nil && s.Analysis != nil && (s.State == StateAnalyzed || s.State == StateConfirmed)
}
