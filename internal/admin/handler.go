package admin

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mediscribe/platform/internal/report"
	"github.com/mediscribe/platform/pkg/logging"
)

// Handler serves the password-gated admin dashboard: login/logout plus the
// aggregate view over the persisted report collection.
type Handler struct {
	adminPassword string
	jwtSecret     string
	tokenTTL      time.Duration
	reports       report.Repository
	logger        *logging.Logger
	now           func() time.Time
}

// NewHandler creates an admin handler. An empty adminPassword (vault fetch
// failed) leaves the dashboard locked: every login attempt fails with 503.
func NewHandler(adminPassword, jwtSecret string, tokenTTL time.Duration, reports report.Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &Handler{
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		reports:       reports,
		logger:        logger.Named("admin"),
		now:           time.Now,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.adminPassword == "" || h.jwtSecret == "" {
		http.Error(w, "admin portal unavailable", http.StatusServiceUnavailable)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		h.logger.Warn("admin login denied", "remote_ip", r.RemoteAddr)
		http.Error(w, "access denied", http.StatusUnauthorized)
		return
	}

	now := h.now().UTC()
	expiresAt := now.Add(h.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		h.logger.Error("failed to sign admin token", "error", err)
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	h.logger.Info("admin logged in", "remote_ip", r.RemoteAddr)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

// Logout handles POST /admin/logout. Tokens are stateless; logout is the
// client discarding its token, acknowledged here for UI symmetry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type reportsResponse struct {
	Count   int              `json:"count"`
	Reports []*report.Record `json:"reports"`
}

// Reports handles GET /admin/reports, the aggregate over the persisted
// report collection.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		http.Error(w, "report collection unavailable", http.StatusServiceUnavailable)
		return
	}

	records, err := h.reports.List(r.Context())
	if err != nil {
		h.logger.Error("failed to read report collection", "error", err)
		http.Error(w, "failed to read reports", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, reportsResponse{Count: len(records), Reports: records})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
