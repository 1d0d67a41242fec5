package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mediscribe/platform/internal/report"
	"github.com/mediscribe/platform/pkg/logging"
)

type failingReports struct{}

func (failingReports) Append(ctx context.Context, rec *report.Record) error {
	return errors.New("table offline")
}

func (failingReports) List(ctx context.Context) ([]*report.Record, error) {
	return nil, errors.New("table offline")
}

func newHandler(password string, reports report.Repository) *Handler {
	return NewHandler(password, "test-jwt-secret", time.Hour, reports, logging.Default())
}

func TestLogin(t *testing.T) {
	h := newHandler("s3cret", report.NewInMemoryRepository())

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"s3cret"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp loginResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("response missing token")
	}

	token, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte("test-jwt-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims := token.Claims.(*jwt.RegisteredClaims)
	if claims.Subject != "admin" {
		t.Errorf("unexpected subject %q", claims.Subject)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHandler("s3cret", report.NewInMemoryRepository())

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"guess"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestLoginBadBody(t *testing.T) {
	h := newHandler("s3cret", report.NewInMemoryRepository())

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestLoginLockedWithoutPassword(t *testing.T) {
	h := newHandler("", report.NewInMemoryRepository())

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":""}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the vault holds no password, got %d", rr.Code)
	}
}

func TestLogout(t *testing.T) {
	h := newHandler("s3cret", report.NewInMemoryRepository())

	rr := httptest.NewRecorder()
	h.Logout(rr, httptest.NewRequest(http.MethodPost, "/admin/logout", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}

func TestReports(t *testing.T) {
	repo := report.NewInMemoryRepository()
	ctx := context.Background()
	for _, spec := range []string{"Cardiologist", "Dermatologist"} {
		if err := repo.Append(ctx, &report.Record{Specialist: spec, Kind: report.KindAnalysis}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	h := newHandler("s3cret", repo)
	rr := httptest.NewRecorder()
	h.Reports(rr, httptest.NewRequest(http.MethodGet, "/admin/reports", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp reportsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Reports) != 2 {
		t.Errorf("expected 2 reports, got %+v", resp)
	}
}

func TestReportsRepositoryFailure(t *testing.T) {
	h := newHandler("s3cret", failingReports{})

	rr := httptest.NewRecorder()
	h.Reports(rr, httptest.NewRequest(http.MethodGet, "/admin/reports", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
