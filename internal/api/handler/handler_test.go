package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/service"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/jwt"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.LoginResponse
	loginErr         error
	refreshResult    *dto.RefreshTokenResponse
	refreshErr       error
	logoutErr        error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
	changePassErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ReportService ──

type mockReportService struct {
	clientResult   *dto.ClientReportResponse
	clientErr      error
	eventResult    *dto.EventReportResponse
	eventErr       error
	dutyResult     *dto.DutyReportResponse
	dutyErr        error
	companyResult  *dto.CompanyReportResponse
	companyErr     error
	employeeResult *dto.EmployeeReportResponse
	employeeErr    error
}

func (m *mockReportService) ClientReport(_ context.Context, _ dto.ReportQuery) (*dto.ClientReportResponse, error) {
	return m.clientResult, m.clientErr
}
func (m *mockReportService) EventReport(_ context.Context, _ dto.ReportQuery) (*dto.EventReportResponse, error) {
	return m.eventResult, m.eventErr
}
func (m *mockReportService) DutyReport(_ context.Context, _ dto.ReportQuery) (*dto.DutyReportResponse, error) {
	return m.dutyResult, m.dutyErr
}
func (m *mockReportService) CompanyReport(_ context.Context, _ dto.ReportQuery) (*dto.CompanyReportResponse, error) {
	return m.companyResult, m.companyErr
}
func (m *mockReportService) EmployeeReport(_ context.Context, _ dto.ReportQuery) (*dto.EmployeeReportResponse, error) {
	return m.employeeResult, m.employeeErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportReport(_ context.Context, _ string, _ dto.ReportQuery) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock DocumentService ──

type mockDocumentService struct {
	templateResult  *dto.TemplateResponse
	templateErr     error
	documentResult  *dto.DocumentResponse
	documentErr     error
	signatureResult *dto.DocumentResponse
	signatureErr    error
}

func (m *mockDocumentService) CreateTemplate(_ context.Context, _ string, _ dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	return m.templateResult, m.templateErr
}
func (m *mockDocumentService) GetTemplate(_ context.Context, _ string) (*dto.TemplateResponse, error) {
	return m.templateResult, m.templateErr
}
func (m *mockDocumentService) ListTemplates(_ context.Context) ([]dto.TemplateResponse, error) {
	return nil, m.templateErr
}
func (m *mockDocumentService) UpdateTemplate(_ context.Context, _, _ string, _ dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	return m.templateResult, m.templateErr
}
func (m *mockDocumentService) DeleteTemplate(_ context.Context, _, _ string) error {
	return m.templateErr
}
func (m *mockDocumentService) CreateDocument(_ context.Context, _ string, _ dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	return m.documentResult, m.documentErr
}
func (m *mockDocumentService) GetDocument(_ context.Context, _ string) (*dto.DocumentResponse, error) {
	return m.documentResult, m.documentErr
}
func (m *mockDocumentService) ListDocuments(_ context.Context, _, _ int) ([]dto.DocumentResponse, int64, error) {
	return nil, 0, m.documentErr
}
func (m *mockDocumentService) SubmitSignature(_ context.Context, _, _, _ string, _ dto.SubmitSignatureRequest) (*dto.DocumentResponse, error) {
	return m.signatureResult, m.signatureErr
}

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	assignmentResult *dto.AssignmentResponse
	assignmentErr    error
	entryResult      *dto.TimeEntryResponse
	entryErr         error
}

func (m *mockAssignmentService) Create(_ context.Context, _, _ string, _ dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	return m.assignmentResult, m.assignmentErr
}
func (m *mockAssignmentService) GetByID(_ context.Context, _ string) (*dto.AssignmentResponse, error) {
	return m.assignmentResult, m.assignmentErr
}
func (m *mockAssignmentService) ListByWorkday(_ context.Context, _ string) ([]dto.AssignmentResponse, error) {
	return nil, m.assignmentErr
}
func (m *mockAssignmentService) Update(_ context.Context, _, _ string, _ dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	return m.assignmentResult, m.assignmentErr
}
func (m *mockAssignmentService) Delete(_ context.Context, _, _ string) error {
	return m.assignmentErr
}
func (m *mockAssignmentService) SubmitTimeEntry(_ context.Context, _ *service.Operator, _ string, _ dto.SubmitTimeEntryRequest) (*dto.TimeEntryResponse, error) {
	return m.entryResult, m.entryErr
}
func (m *mockAssignmentService) ListTimeEntries(_ context.Context, _ string) ([]dto.TimeEntryResponse, error) {
	return nil, m.entryErr
}
func (m *mockAssignmentService) DeleteTimeEntry(_ context.Context, _ *service.Operator, _ string) error {
	return m.entryErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
	c.Set("claims", &jwt.Claims{UserID: "test-user-id", Role: "admin", TokenType: "access"})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

const reportRange = "start_date=2026-07-01&end_date=2026-07-31"

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.LoginResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "anna@teatriapuani.it",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "anna@teatriapuani.it",
		Password: "wrongpass123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.GetCurrentUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_ClientReport_Success(t *testing.T) {
	mock := &mockReportService{
		clientResult: &dto.ClientReportResponse{ClientID: "c1", ClientName: "Teatro Lirico"},
	}
	h := NewReportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/cliente?client_id=0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d&"+reportRange, nil)

	r := gin.New()
	r.GET("/reports/cliente", h.ClientReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestReportHandler_MissingDateRange(t *testing.T) {
	h := NewReportHandler(&mockReportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/cliente?client_id=0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d", nil)

	r := gin.New()
	r.GET("/reports/cliente", h.ClientReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("缺少日期区间应返回 400，实际 %d", w.Code)
	}
}

func TestReportHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"ClientIDRequired", service.ErrReportClientIDRequired, 400, 26001},
		{"DateRangeInvalid", service.ErrReportDateRangeInvalid, 400, 26004},
		{"RangeTooWide", service.ErrReportRangeTooWide, 400, 26005},
		{"ClientNotFound", service.ErrReportClientNotFound, 404, 26006},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReportHandler(&mockReportService{clientErr: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/reports/cliente?client_id=0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d&"+reportRange, nil)

			r := gin.New()
			r.GET("/reports/cliente", h.ClientReport)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestReportHandler_EventNotFound(t *testing.T) {
	h := NewReportHandler(&mockReportService{eventErr: service.ErrReportEventNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/evento?event_id=7e8f9a0b-1c2d-4e3f-8a4b-5c6d7e8f9a0b&"+reportRange, nil)

	r := gin.New()
	r.GET("/reports/evento", h.EventReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "report_cliente_Teatro_Lirico_2026-07-01_2026-07-31.xlsx",
	}
	h := NewExportHandler(mock, NewReportHandler(&mockReportService{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/reports/cliente?client_id=0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d&"+reportRange, nil)

	r := gin.New()
	r.GET("/export/reports/:type", h.ExportReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_UnknownType(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportUnknownType}
	h := NewExportHandler(mock, NewReportHandler(&mockReportService{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/reports/settimanale?"+reportRange, nil)

	r := gin.New()
	r.GET("/export/reports/:type", h.ExportReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ReportErrorPassthrough(t *testing.T) {
	mock := &mockExportService{err: service.ErrReportClientNotFound}
	h := NewExportHandler(mock, NewReportHandler(&mockReportService{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/reports/cliente?client_id=0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d&"+reportRange, nil)

	r := gin.New()
	r.GET("/export/reports/:type", h.ExportReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DocumentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDocumentHandler_SubmitSignature_Anonymous(t *testing.T) {
	mock := &mockDocumentService{
		signatureResult: &dto.DocumentResponse{DocumentID: "doc1", Status: "DRAFT"},
	}
	h := NewDocumentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/public/documents/doc1/signatures", jsonBody(dto.SubmitSignatureRequest{
		SignerName: "Anna Bianchi",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/public/documents/:id/signatures", h.SubmitSignature)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestDocumentHandler_SubmitSignature_AlreadySigned(t *testing.T) {
	h := NewDocumentHandler(&mockDocumentService{signatureErr: service.ErrDocumentAlreadyDone})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/documents/doc1/signatures", jsonBody(dto.SubmitSignatureRequest{
		SignerName: "Anna Bianchi",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/documents/:id/signatures", h.SubmitSignature)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 29003 {
		t.Errorf("expected code 29003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_SubmitTimeEntry_Forbidden(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{entryErr: service.ErrTimeEntryNotOwn})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments/a1/time-entries", jsonBody(dto.SubmitTimeEntryRequest{
		UserID:      "3f8b4f10-9a1e-4c2b-8d7e-1a2b3c4d5e6f",
		HoursWorked: 8,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/:id/time-entries", func(c *gin.Context) {
		setAuth(c)
		h.SubmitTimeEntry(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAssignmentHandler_SubmitTimeEntry_Duplicate(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{entryErr: service.ErrTimeEntryDuplicate})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments/a1/time-entries", jsonBody(dto.SubmitTimeEntryRequest{
		UserID:      "5c6d7e8f-0a1b-4c2d-9e3f-aabbccddeeff",
		HoursWorked: 8,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/:id/time-entries", func(c *gin.Context) {
		setAuth(c)
		h.SubmitTimeEntry(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 25005 {
		t.Errorf("expected code 25005, got %d", resp.Code)
	}
}
