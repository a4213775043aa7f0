package payroll_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-rrhh/internal/domain"
	"go-rrhh/internal/payroll"
	payrollerrors "go-rrhh/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	UploadFn        func(ctx context.Context, actor domain.Identity, req payroll.UploadPayrollRequest, filename string, data []byte) (payroll.PayrollResponse, error)
	GetByEmployeeFn func(ctx context.Context, employeeID string) ([]payroll.PayrollResponse, error)
	OpenFn          func(ctx context.Context, id string) (payroll.Document, error)
}

func (f *fakePayrollService) Upload(ctx context.Context, actor domain.Identity, req payroll.UploadPayrollRequest, filename string, data []byte) (payroll.PayrollResponse, error) {
	return f.UploadFn(ctx, actor, req, filename, data)
}
func (f *fakePayrollService) GetByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollResponse, error) {
	return f.GetByEmployeeFn(ctx, employeeID)
}
func (f *fakePayrollService) Open(ctx context.Context, id string) (payroll.Document, error) {
	return f.OpenFn(ctx, id)
}

func setupRouter(h *payroll.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payrolls", h.Upload)
	r.GET("/payrolls/by-employee/:employeeId", h.GetByEmployee)
	r.GET("/payrolls/:id/download", h.Download)
	return r
}

func multipartUpload(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if content != nil {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/payrolls", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_Upload(t *testing.T) {
	empID := uuid.NewString()
	svc := &fakePayrollService{
		UploadFn: func(_ context.Context, _ domain.Identity, req payroll.UploadPayrollRequest, filename string, data []byte) (payroll.PayrollResponse, error) {
			assert.Equal(t, empID, req.EmployeeID)
			assert.Equal(t, "2026-03", req.Period)
			assert.Equal(t, "marzo.pdf", filename)
			assert.Equal(t, samplePDF, data)
			return payroll.PayrollResponse{ID: uuid.NewString(), Period: "2026-03"}, nil
		},
	}

	w := httptest.NewRecorder()
	setupRouter(payroll.NewHandler(svc)).ServeHTTP(w, multipartUpload(t, map[string]string{
		"employee_id": empID,
		"period":      "2026-03",
	}, "marzo.pdf", samplePDF))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_Upload_Rejections(t *testing.T) {
	fields := map[string]string{"employee_id": uuid.NewString(), "period": "2026-03"}

	tests := []struct {
		name    string
		fields  map[string]string
		content []byte
		code    string
	}{
		{"not a pdf", fields, []byte("PK\x03\x04 spreadsheet"), "file must be a PDF document"},
		{"missing file", fields, nil, "file is required"},
		{"missing period", map[string]string{"employee_id": uuid.NewString()}, samplePDF, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			setupRouter(payroll.NewHandler(&fakePayrollService{})).ServeHTTP(w, multipartUpload(t, tt.fields, "x.pdf", tt.content))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestHandler_Download(t *testing.T) {
	svc := &fakePayrollService{
		OpenFn: func(_ context.Context, id string) (payroll.Document, error) {
			if id == "gone" {
				return payroll.Document{}, payrollerrors.ErrPayrollNotFound
			}
			return payroll.Document{Filename: "recibo.pdf", Body: io.NopCloser(bytes.NewReader(samplePDF))}, nil
		},
	}
	r := setupRouter(payroll.NewHandler(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls/abc/download", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="recibo.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, samplePDF, w.Body.Bytes())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls/gone/download", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
