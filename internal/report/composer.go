package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/mediscribe/platform/pkg/logging"
)

// Input holds the labeled text sections of a patient report document.
// ApptInfo is empty for the analysis report and set for the booking pass.
type Input struct {
	Summary  string
	Doctors  string
	ApptInfo string
	Sources  string
}

// Artifact is the produced document: a transient local copy plus the
// durable storage reference.
type Artifact struct {
	LocalPath  string `json:"local_path"`
	StorageURI string `json:"storage_uri,omitempty"`
}

// Composer lays out patient report PDFs and hands them to the uploader.
type Composer struct {
	scratchDir string
	uploader   *Uploader
	logger     *logging.Logger
	now        func() time.Time
}

// NewComposer creates a Composer writing to scratchDir. A nil uploader means
// documents stay local only.
func NewComposer(scratchDir string, uploader *Uploader, logger *logging.Logger) *Composer {
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Composer{
		scratchDir: scratchDir,
		uploader:   uploader,
		logger:     logger.Named("report"),
		now:        time.Now,
	}
}

// Compose builds the titled, sectioned PDF, writes it to the scratch
// location, and uploads it under the same filename. Any failure returns a
// nil artifact; callers treat a missing report as non-fatal.
func (c *Composer) Compose(ctx context.Context, in Input) (*Artifact, error) {
	now := c.now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Medi-Scribe Patient Report", "", 1, "C", false, 0, "")
	pdf.Line(10, 25, 200, 25)
	pdf.Ln(15)

	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 10, fmt.Sprintf("Generated: %s", now.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	sections := []struct {
		title   string
		content string
	}{
		{"Medical Analysis", in.Summary},
		{"Recommended Specialists", in.Doctors},
	}
	for _, section := range sections {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(0, 10, "  "+section.title, "", 1, "L", true, 0, "")
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, tr(sanitizeText(section.content)), "", "L", false)
		pdf.Ln(8)
	}

	if in.ApptInfo != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 100, 0)
		pdf.CellFormat(0, 10, "  Appointment Status", "", 1, "L", true, 0, "")
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 6, tr(sanitizeText(in.ApptInfo)), "", "L", false)
		pdf.Ln(8)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "  Verified Sources", "", 1, "L", true, 0, "")
	pdf.Ln(5)
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(50, 50, 150)
	pdf.MultiCell(0, 6, tr(sanitizeText(in.Sources)), "", "L", false)

	filename := fmt.Sprintf("Report_%d.pdf", now.Unix())
	localPath := filepath.Join(c.scratchDir, filename)

	if err := pdf.OutputFileAndClose(localPath); err != nil {
		return nil, fmt.Errorf("report: write pdf: %w", err)
	}

	artifact := &Artifact{LocalPath: localPath}

	if c.uploader.Enabled() {
		uri, err := c.uploader.Upload(ctx, filename, localPath)
		if err != nil {
			return nil, fmt.Errorf("report: upload pdf: %w", err)
		}
		artifact.StorageURI = uri
	} else {
		c.logger.Warn("report bucket not configured, document kept local only", "path", localPath)
	}

	c.logger.Info("report composed", "path", localPath, "storage_uri", artifact.StorageURI)
	return artifact, nil
}

// sanitizeText replaces characters outside the PDF core font's latin-1
// range so exotic model output degrades instead of failing the document.
func sanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || (r >= 0x20 && r <= 0xFF) {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
