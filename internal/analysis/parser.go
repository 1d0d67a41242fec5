package analysis

import "strings"

// Defaults returned whenever the model output does not satisfy the marker
// protocol. Downstream copy depends on these exact strings.
const (
	DefaultSummary    = "Report Analyzed."
	DefaultSpecialist = "General Physician"
	DefaultAdvice     = "Consultation recommended."
)

const (
	markerSummary    = "SUMMARY:"
	markerSpecialist = "SPECIALIST:"
	markerAdvice     = "ADVICE:"
)

// Outcome tags which portion of the marker protocol the model output
// satisfied, so callers and tests can assert on the kind, not just values.
type Outcome string

const (
	// OutcomeDefaulted means no SUMMARY: marker was found at all.
	OutcomeDefaulted Outcome = "defaulted"
	// OutcomeSummaryOnly means SUMMARY: was present but SPECIALIST: was not.
	OutcomeSummaryOnly Outcome = "summary_only"
	// OutcomePartialAdvice means SUMMARY: and SPECIALIST: were present but
	// ADVICE: was not.
	OutcomePartialAdvice Outcome = "partial_advice"
	// OutcomeFull means all three markers were present in order.
	OutcomeFull Outcome = "full"
)

// ParseModelOutput extracts (summary, specialist, advice) from the model's
// free text. The protocol expects the literal markers SUMMARY:, SPECIALIST:
// and ADVICE: in that order, each introducing the text up to the next marker.
// Partial matches degrade field by field to the defaults.
func ParseModelOutput(text string) (summary, specialist, advice string, outcome Outcome) {
	summary, specialist, advice = DefaultSummary, DefaultSpecialist, DefaultAdvice

	_, afterSummary, found := strings.Cut(text, markerSummary)
	if !found {
		return summary, specialist, advice, OutcomeDefaulted
	}

	summaryPart, afterSpecialist, found := strings.Cut(afterSummary, markerSpecialist)
	if !found {
		summary = strings.TrimSpace(afterSummary)
		return summary, specialist, advice, OutcomeSummaryOnly
	}
	summary = strings.TrimSpace(summaryPart)

	specialistPart, advicePart, found := strings.Cut(afterSpecialist, markerAdvice)
	if !found {
		specialist = NormalizeSpecialist(afterSpecialist)
		return summary, specialist, advice, OutcomePartialAdvice
	}

	specialist = NormalizeSpecialist(specialistPart)
	advice = strings.TrimSpace(advicePart)
	return summary, specialist, advice, OutcomeFull
}

// NormalizeSpecialist trims surrounding whitespace, keeps only the first
// line, and strips literal markdown emphasis markers. Idempotent.
func NormalizeSpecialist(raw string) string {
	s := strings.TrimSpace(raw)
	if line, _, found := strings.Cut(s, "\n"); found {
		s = line
	}
	s = strings.ReplaceAll(s, "*", "")
	return strings.TrimSpace(s)
}
