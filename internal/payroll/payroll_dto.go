package payroll

import "io"

type UploadPayrollRequest struct {
	EmployeeID string `form:"employee_id" binding:"required,uuid"`
	Period     string `form:"period" binding:"required"`
}

type PayrollResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Period           string  `json:"period"`
	OriginalFilename string  `json:"original_filename"`
	UploadedBy       *string `json:"uploaded_by,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// Document is an opened payroll file. The caller closes Body.
type Document struct {
	Filename string
	Body     io.ReadCloser
}
