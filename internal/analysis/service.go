package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mediscribe/platform/internal/observability/metrics"
	"github.com/mediscribe/platform/internal/report"
	"github.com/mediscribe/platform/pkg/logging"
)

// analysisPrompt is the fixed instruction sent alongside every report image.
// The marker protocol here is what ParseModelOutput expects back.
const analysisPrompt = `You are a Medical AI.
1. ANALYZE image. 2. SUMMARIZE findings.
3. RECOMMEND specialist type.
4. RETURN: SUMMARY: [text] SPECIALIST: [type] ADVICE: [text]`

// Analysis is the full outcome of processing one uploaded report.
type Analysis struct {
	Result   Result           `json:"result"`
	Outcome  Outcome          `json:"outcome"`
	Links    DirectoryLinks   `json:"links"`
	Artifact *report.Artifact `json:"report,omitempty"`
}

// Service runs the analyze step of the kiosk flow: prompt the model with the
// uploaded image, parse its output, format grounding sources, compose the
// analysis PDF and record the processed report.
type Service struct {
	model    ModelClient
	composer *report.Composer
	reports  report.Repository
	metrics  *metrics.KioskMetrics
	logger   *logging.Logger
}

// NewService constructs an analysis service.
func NewService(model ModelClient, composer *report.Composer, reports report.Repository, m *metrics.KioskMetrics, logger *logging.Logger) *Service {
	if model == nil {
		panic("analysis: model client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		model:    model,
		composer: composer,
		reports:  reports,
		metrics:  m,
		logger:   logger.Named("analysis"),
	}
}

// Analyze processes one uploaded report image. A model failure is returned
// to the caller with nothing recorded; everything after a successful model
// call degrades per feature.
func (s *Service) Analyze(ctx context.Context, image []byte, mimeType, city string) (*Analysis, error) {
	if len(image) == 0 {
		return nil, errors.New("analysis: image is required")
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "image/png"
	}

	start := time.Now()
	out, err := s.model.Analyze(ctx, image, mimeType, analysisPrompt)
	s.metrics.ObserveModelLatency(time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveAnalysis("error", "")
		return nil, fmt.Errorf("analysis: model call failed: %w", err)
	}

	summary, specialist, advice, outcome := ParseModelOutput(out.Text)
	result := Result{
		Summary:    summary,
		Specialist: specialist,
		Advice:     advice,
		Sources:    FormatSources(out.Citations),
	}

	s.metrics.ObserveAnalysis("ok", string(outcome))
	s.logger.Info("report analyzed",
		"outcome", outcome,
		"specialist", result.Specialist,
		"citations", len(out.Citations),
	)

	a := &Analysis{
		Result:  result,
		Outcome: outcome,
		Links:   BuildDirectoryLinks(result.Specialist, city),
	}

	if s.composer != nil {
		artifact, err := s.composer.Compose(ctx, report.Input{
			Summary: result.Summary,
			Doctors: result.Advice,
			Sources: result.Sources,
		})
		if err != nil {
			// No report just means no download; the analysis stands.
			s.metrics.ObserveReport(report.KindAnalysis, "error")
			s.logger.Error("analysis report generation failed", "error", err)
		} else {
			s.metrics.ObserveReport(report.KindAnalysis, "ok")
			a.Artifact = artifact
		}
	}

	if s.reports != nil {
		rec := &report.Record{Specialist: result.Specialist, Kind: report.KindAnalysis}
		if a.Artifact != nil {
			rec.StorageURI = a.Artifact.StorageURI
		}
		if err := s.reports.Append(ctx, rec); err != nil {
			s.logger.Error("failed to record processed report", "error", err)
		}
	}

	return a, nil
}
