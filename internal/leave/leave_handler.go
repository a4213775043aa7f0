package leave

import (
	"errors"
	"net/http"
	"strings"

	leaveerrors "go-rrhh/internal/leave/errors"
	"go-rrhh/internal/shared/apperror"
	"go-rrhh/internal/shared/contextutil"
	"go-rrhh/internal/shared/response"
	"go-rrhh/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const certificateField = "certificate"

type Handler struct {
	service Service
	files   storage.FileStore
	logger  *zap.Logger
}

func NewHandler(service Service, files storage.FileStore, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, files: files, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("request_id", contextutil.GetRequestID(c.Request.Context())),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Submit accepts JSON, or multipart form fields with an optional PDF in the
// "certificate" part. A stored certificate is removed again when the
// request itself is rejected.
func (h *Handler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req SubmitLeaveRequest
	storedRef := ""

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}

		fh, err := c.FormFile(certificateField)
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			h.writeServiceError(c, apperror.InvalidField(certificateField))
			return
		default:
			data, err := storage.ReadPDF(fh)
			if err != nil {
				h.writeServiceError(c, mapUploadError(err))
				return
			}
			ref, err := h.files.Save(ctx, "certificates/"+uuid.NewString()+".pdf", data, storage.PDFContentType)
			if err != nil {
				h.writeServiceError(c, err)
				return
			}
			storedRef = ref
			req.CertificateRef = &storedRef
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(ctx, contextutil.GetIdentity(ctx), req)
	if err != nil {
		if storedRef != "" {
			if delErr := h.files.Delete(ctx, storedRef); delErr != nil {
				h.logger.Warn("failed to remove orphaned certificate", zap.String("ref", storedRef), zap.Error(delErr))
			}
		}
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.Resolve(ctx, contextutil.GetIdentity(ctx), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPending(c *gin.Context) {
	resp, err := h.service.GetPending(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	resp, err := h.service.GetByEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, total, err := h.service.GetHistory(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, size := normalizePage(q.Page, q.PageSize)
	meta := response.NewPaginationMeta(total, page, size)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetBalance(c *gin.Context) {
	resp, err := h.service.GetBalance(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func mapUploadError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotPDF):
		return leaveerrors.ErrCertificateNotPDF
	case errors.Is(err, storage.ErrFileTooLarge):
		return leaveerrors.ErrCertificateTooLarge
	default:
		return apperror.InvalidField(certificateField)
	}
}
