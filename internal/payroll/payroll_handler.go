package payroll

import (
	"errors"
	"fmt"
	"net/http"

	payrollerrors "go-rrhh/internal/payroll/errors"
	"go-rrhh/internal/shared/apperror"
	"go-rrhh/internal/shared/contextutil"
	"go-rrhh/internal/shared/response"
	"go-rrhh/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const fileField = "file"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("request_id", contextutil.GetRequestID(c.Request.Context())),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upload(c *gin.Context) {
	var req UploadPayrollRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	fh, err := c.FormFile(fileField)
	if err != nil {
		h.writeServiceError(c, payrollerrors.ErrFileRequired)
		return
	}
	data, err := storage.ReadPDF(fh)
	switch {
	case errors.Is(err, storage.ErrNotPDF):
		h.writeServiceError(c, payrollerrors.ErrFileNotPDF)
		return
	case errors.Is(err, storage.ErrFileTooLarge):
		h.writeServiceError(c, payrollerrors.ErrFileTooLarge)
		return
	case err != nil:
		h.writeServiceError(c, apperror.InvalidField(fileField))
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.Upload(ctx, contextutil.GetIdentity(ctx), req, fh.Filename, data)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	resp, err := h.service.GetByEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Download(c *gin.Context) {
	doc, err := h.service.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer doc.Body.Close()

	c.DataFromReader(http.StatusOK, -1, storage.PDFContentType, doc.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.Filename),
	})
}
