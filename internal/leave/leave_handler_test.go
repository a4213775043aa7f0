package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-rrhh/internal/domain"
	"go-rrhh/internal/leave"
	leaveerrors "go-rrhh/internal/leave/errors"
	"go-rrhh/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveService struct {
	SubmitFn        func(ctx context.Context, actor domain.Identity, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	ResolveFn       func(ctx context.Context, actor domain.Identity, id string, req leave.ResolveLeaveRequest) (leave.LeaveResponse, error)
	GetPendingFn    func(ctx context.Context) ([]leave.LeaveResponse, error)
	GetByEmployeeFn func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	GetHistoryFn    func(ctx context.Context, q leave.HistoryQuery) ([]leave.LeaveResponse, int64, error)
	GetBalanceFn    func(ctx context.Context, employeeID string) (leave.BalanceResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, actor domain.Identity, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	return f.SubmitFn(ctx, actor, req)
}
func (f *fakeLeaveService) Resolve(ctx context.Context, actor domain.Identity, id string, req leave.ResolveLeaveRequest) (leave.LeaveResponse, error) {
	return f.ResolveFn(ctx, actor, id, req)
}
func (f *fakeLeaveService) GetPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.GetPendingFn(ctx)
}
func (f *fakeLeaveService) GetByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.GetByEmployeeFn(ctx, employeeID)
}
func (f *fakeLeaveService) GetHistory(ctx context.Context, q leave.HistoryQuery) ([]leave.LeaveResponse, int64, error) {
	return f.GetHistoryFn(ctx, q)
}
func (f *fakeLeaveService) GetBalance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	return f.GetBalanceFn(ctx, employeeID)
}

type memoryStore struct {
	files   map[string][]byte
	deleted []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: map[string][]byte{}}
}

func (m *memoryStore) Save(_ context.Context, key string, data []byte, _ string) (string, error) {
	m.files[key] = data
	return key, nil
}

func (m *memoryStore) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.files[ref])), nil
}

func (m *memoryStore) Delete(_ context.Context, ref string) error {
	delete(m.files, ref)
	m.deleted = append(m.deleted, ref)
	return nil
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withIdentity(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(contextutil.WithIdentity(c.Request.Context(), domain.Identity{Username: username}))
		c.Next()
	}
}

func certificateForm(t *testing.T, fields map[string]string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if content != nil {
		part, err := w.CreateFormFile("certificate", "certificado.pdf")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

var illnessFields = map[string]string{
	"employee_id":        "0b6f8c3e-4b0a-4d2e-9a57-8f3f1f1c2d11",
	"leave_type":         "ILLNESS",
	"start_date":         "2026-03-02",
	"end_date":           "2026-03-04",
	"reinstatement_date": "2026-03-05",
	"diagnosis_code":     "J11",
}

func TestLeaveHandler_Submit(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		id := uuid.NewString()
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, actor domain.Identity, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "jefe.rrhh", actor.Username)
				assert.Equal(t, "VACATION", req.LeaveType)
				return leave.LeaveResponse{ID: id, Status: leave.StatusPending}, nil
			},
		}
		r := setupRouter()
		r.POST("/leaves", withIdentity("jefe.rrhh"), leave.NewHandler(svc, newMemoryStore()).Submit)

		body := `{"employee_id":"x","leave_type":"VACATION","start_date":"2026-04-06","end_date":"2026-04-10","reinstatement_date":"2026-04-13"}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), id)
	})

	t.Run("multipart stores certificate", func(t *testing.T) {
		store := newMemoryStore()
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, actor domain.Identity, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				require.NotNil(t, req.CertificateRef)
				assert.True(t, strings.HasPrefix(*req.CertificateRef, "certificates/"))
				assert.Equal(t, "J11", *req.DiagnosisCode)
				return leave.LeaveResponse{ID: uuid.NewString(), CertificateRef: req.CertificateRef}, nil
			},
		}
		r := setupRouter()
		r.POST("/leaves", leave.NewHandler(svc, store).Submit)

		body, ct := certificateForm(t, illnessFields, []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF"))
		req := httptest.NewRequest(http.MethodPost, "/leaves", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, store.files, 1)
	})

	t.Run("non pdf certificate is rejected", func(t *testing.T) {
		store := newMemoryStore()
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, actor domain.Identity, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called")
				return leave.LeaveResponse{}, nil
			},
		}
		r := setupRouter()
		r.POST("/leaves", leave.NewHandler(svc, store).Submit)

		body, ct := certificateForm(t, illnessFields, []byte("just some text, not a document"))
		req := httptest.NewRequest(http.MethodPost, "/leaves", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), leaveerrors.ErrCertificateNotPDF.Message)
		assert.Empty(t, store.files)
	})

	t.Run("stored certificate removed when submit fails", func(t *testing.T) {
		store := newMemoryStore()
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, actor domain.Identity, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
			},
		}
		r := setupRouter()
		r.POST("/leaves", leave.NewHandler(svc, store).Submit)

		body, ct := certificateForm(t, illnessFields, []byte("%PDF-1.7\n%%EOF"))
		req := httptest.NewRequest(http.MethodPost, "/leaves", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, store.files)
		assert.Len(t, store.deleted, 1)
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, actor domain.Identity, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.CapacityExceeded(3)
			},
		}
		r := setupRouter()
		r.POST("/leaves", leave.NewHandler(svc, newMemoryStore()).Submit)

		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{"leave_type":"VACATION"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CAPACITY_EXCEEDED")
		assert.Contains(t, w.Body.String(), "at most 3 days")
	})
}

func TestLeaveHandler_Resolve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			ResolveFn: func(ctx context.Context, actor domain.Identity, id string, req leave.ResolveLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "abc", id)
				assert.Equal(t, leave.StatusApproved, req.Outcome)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		r := setupRouter()
		r.PUT("/leaves/:id/resolve", leave.NewHandler(svc, nil).Resolve)

		req := httptest.NewRequest(http.MethodPut, "/leaves/abc/resolve", strings.NewReader(`{"outcome":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown outcome", func(t *testing.T) {
		r := setupRouter()
		r.PUT("/leaves/:id/resolve", leave.NewHandler(&fakeLeaveService{}, nil).Resolve)

		req := httptest.NewRequest(http.MethodPut, "/leaves/abc/resolve", strings.NewReader(`{"outcome":"MAYBE"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already resolved", func(t *testing.T) {
		svc := &fakeLeaveService{
			ResolveFn: func(ctx context.Context, actor domain.Identity, id string, req leave.ResolveLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}
		r := setupRouter()
		r.PUT("/leaves/:id/resolve", leave.NewHandler(svc, nil).Resolve)

		req := httptest.NewRequest(http.MethodPut, "/leaves/abc/resolve", strings.NewReader(`{"outcome":"REJECTED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})
}

func TestLeaveHandler_GetHistory(t *testing.T) {
	svc := &fakeLeaveService{
		GetHistoryFn: func(ctx context.Context, q leave.HistoryQuery) ([]leave.LeaveResponse, int64, error) {
			assert.Equal(t, "APPROVED", q.Status)
			assert.Equal(t, 2, q.Page)
			return []leave.LeaveResponse{{ID: "1"}}, 11, nil
		},
	}
	r := setupRouter()
	r.GET("/leaves", leave.NewHandler(svc, nil).GetHistory)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves?status=APPROVED&page=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Ok   bool `json:"ok"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
			Page       int   `json:"page"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	assert.Equal(t, int64(11), body.Meta.Total)
	assert.Equal(t, 2, body.Meta.TotalPages)
	assert.Equal(t, 2, body.Meta.Page)
}

func TestLeaveHandler_GetBalance(t *testing.T) {
	svc := &fakeLeaveService{
		GetBalanceFn: func(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
			if employeeID == "missing" {
				return leave.BalanceResponse{}, leaveerrors.ErrEmployeeNotFound
			}
			return leave.BalanceResponse{EmployeeID: employeeID, Entitlement: 21, Consumed: 5, Available: 16}, nil
		},
	}
	r := setupRouter()
	r.GET("/leaves/balance/:employeeId", leave.NewHandler(svc, nil).GetBalance)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves/balance/e1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":16`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves/balance/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
