package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/mediscribe/platform/internal/report"
	"github.com/mediscribe/platform/pkg/logging"
)

type fakeModel struct {
	output *ModelOutput
	err    error
	calls  int
}

func (f *fakeModel) Analyze(ctx context.Context, image []byte, mimeType, prompt string) (*ModelOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func TestServiceAnalyze(t *testing.T) {
	model := &fakeModel{output: &ModelOutput{
		Text: "SUMMARY: Mild fracture SPECIALIST: Orthopedist ADVICE: See a doctor",
		Citations: []Citation{
			{Title: "mayoclinic.org", URI: "https://mayoclinic.org/fractures"},
		},
	}}
	reports := report.NewInMemoryRepository()
	composer := report.NewComposer(t.TempDir(), nil, logging.Default())
	svc := NewService(model, composer, reports, nil, logging.Default())

	got, err := svc.Analyze(context.Background(), []byte("img"), "image/png", "Hyderabad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Result.Summary != "Mild fracture" {
		t.Errorf("unexpected summary %q", got.Result.Summary)
	}
	if got.Result.Specialist != "Orthopedist" {
		t.Errorf("unexpected specialist %q", got.Result.Specialist)
	}
	if got.Result.Advice != "See a doctor" {
		t.Errorf("unexpected advice %q", got.Result.Advice)
	}
	if got.Result.Sources != "1. mayoclinic.org: https://mayoclinic.org/fractures\n" {
		t.Errorf("unexpected sources %q", got.Result.Sources)
	}
	if got.Outcome != OutcomeFull {
		t.Errorf("expected full outcome, got %s", got.Outcome)
	}
	if got.Artifact == nil || got.Artifact.LocalPath == "" {
		t.Error("expected analysis report artifact")
	}

	records, err := reports.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one report record, got %d", len(records))
	}
	if records[0].Specialist != "Orthopedist" || records[0].Kind != report.KindAnalysis {
		t.Errorf("unexpected report record %+v", records[0])
	}
}

func TestServiceAnalyzeGroundingFallback(t *testing.T) {
	model := &fakeModel{output: &ModelOutput{Text: "SUMMARY: ok SPECIALIST: x ADVICE: y"}}
	svc := NewService(model, nil, nil, nil, logging.Default())

	got, err := svc.Analyze(context.Background(), []byte("img"), "image/jpeg", "Pune")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Result.Sources != FallbackSources {
		t.Errorf("expected fallback sources, got %q", got.Result.Sources)
	}
}

func TestServiceAnalyzeModelError(t *testing.T) {
	model := &fakeModel{err: errors.New("quota exceeded")}
	reports := report.NewInMemoryRepository()
	svc := NewService(model, nil, reports, nil, logging.Default())

	if _, err := svc.Analyze(context.Background(), []byte("img"), "image/png", "Pune"); err == nil {
		t.Fatal("expected model error to surface")
	}

	records, _ := reports.List(context.Background())
	if len(records) != 0 {
		t.Errorf("model failure must not record a processed report, got %d", len(records))
	}
}

func TestServiceAnalyzeEmptyImage(t *testing.T) {
	model := &fakeModel{output: &ModelOutput{Text: "anything"}}
	svc := NewService(model, nil, nil, nil, logging.Default())

	if _, err := svc.Analyze(context.Background(), nil, "image/png", "Pune"); err == nil {
		t.Fatal("expected error for missing image")
	}
	if model.calls != 0 {
		t.Error("model must not be called without an image")
	}
}
