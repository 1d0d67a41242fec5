package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mediscribe/platform/internal/analysis"
	"github.com/mediscribe/platform/internal/booking"
	"github.com/mediscribe/platform/internal/session"
	"github.com/mediscribe/platform/pkg/logging"
)

// Uploaded report images are small scans; 10 MiB is generous.
const maxUploadBytes = 10 << 20

const defaultCity = "Hyderabad"

// KioskHandler exposes the patient kiosk flow: create a session, analyze an
// uploaded report, book an appointment, download the produced documents.
type KioskHandler struct {
	sessions   session.Store
	analyzer   *analysis.Service
	bookings   *booking.Service
	scratchDir string
	logger     *logging.Logger
}

// NewKioskHandler creates a kiosk handler.
func NewKioskHandler(sessions session.Store, analyzer *analysis.Service, bookings *booking.Service, scratchDir string, logger *logging.Logger) *KioskHandler {
	if sessions == nil {
		panic("handlers: session store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &KioskHandler{
		sessions:   sessions,
		analyzer:   analyzer,
		bookings:   bookings,
		scratchDir: scratchDir,
		logger:     logger.Named("kiosk"),
	}
}

// CreateSession handles POST /kiosk/sessions.
func (h *KioskHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Create(r.Context())
	if err != nil {
		h.logger.Error("failed to create session", "error", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// GetSession handles GET /kiosk/sessions/{sessionID}.
func (h *KioskHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// analyzeResponse is the payload returned after a successful analysis.
type analyzeResponse struct {
	SessionID string             `json:"session_id"`
	State     session.State      `json:"state"`
	Analysis  *analysis.Analysis `json:"analysis"`
}

// Analyze handles POST /kiosk/sessions/{sessionID}/analyze. The request is
// multipart: a "report" image plus a "city" field.
func (h *KioskHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("report")
	if err != nil {
		http.Error(w, "report image is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		http.Error(w, "failed to read report image", http.StatusBadRequest)
		return
	}

	city := strings.TrimSpace(r.FormValue("city"))
	if city == "" {
		city = defaultCity
	}

	result, err := h.analyzer.Analyze(r.Context(), image, header.Header.Get("Content-Type"), city)
	if err != nil {
		// Surfaced to the patient; the session keeps its prior state so a
		// retry starts clean.
		h.logger.Error("analysis failed", "error", err, "session_id", sess.ID)
		http.Error(w, "analysis failed, please retry", http.StatusBadGateway)
		return
	}

	sess.ApplyAnalysis(&result.Result, city)
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to save session", "error", err, "session_id", sess.ID)
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		SessionID: sess.ID,
		State:     sess.State,
		Analysis:  result,
	})
}

// Book handles POST /kiosk/sessions/{sessionID}/booking.
func (h *KioskHandler) Book(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	var req booking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	conf, err := h.bookings.Confirm(r.Context(), sess, req)
	switch {
	case errors.Is(err, booking.ErrAnalysisRequired):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, booking.ErrMissingPatientEmail),
		errors.Is(err, booking.ErrMissingDoctorName),
		errors.Is(err, booking.ErrInvalidSlot):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("booking failed", "error", err, "session_id", sess.ID)
		http.Error(w, "booking failed", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to save session", "error", err, "session_id", sess.ID)
	}

	writeJSON(w, http.StatusOK, conf)
}

// DownloadReport handles GET /kiosk/reports/{filename}, serving the local
// copy of a composed document.
func (h *KioskHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || filename != filepath.Base(filename) || !strings.HasSuffix(filename, ".pdf") {
		http.Error(w, "invalid report name", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, filepath.Join(h.scratchDir, filename))
}

func (h *KioskHandler) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, err := h.sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to load session", "error", err, "session_id", id)
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return nil, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
