package leave

// SubmitLeaveRequest is accepted as JSON or as multipart form fields. For a
// multipart illness request the handler fills CertificateRef after storing
// the uploaded file.
type SubmitLeaveRequest struct {
	EmployeeID           string  `json:"employee_id" form:"employee_id"`
	LeaveType            string  `json:"leave_type" form:"leave_type"`
	StartDate            string  `json:"start_date" form:"start_date"`
	EndDate              string  `json:"end_date" form:"end_date"`
	ReinstatementDate    string  `json:"reinstatement_date" form:"reinstatement_date"`
	DiagnosisCode        *string `json:"diagnosis_code" form:"diagnosis_code"`
	DiagnosisDescription *string `json:"diagnosis_description" form:"diagnosis_description"`
	CertificateRef       *string `json:"certificate_ref" form:"certificate_ref"`
	Observations         *string `json:"observations" form:"observations"`
}

type ResolveLeaveRequest struct {
	Outcome         string  `json:"outcome" binding:"required,oneof=APPROVED REJECTED"`
	RejectionReason *string `json:"rejection_reason"`
}

type HistoryQuery struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
	LeaveType  string `form:"leave_type"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type LeaveResponse struct {
	ID                   string  `json:"id"`
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         string  `json:"employee_name,omitempty"`
	DocumentNumber       string  `json:"document_number,omitempty"`
	LeaveType            string  `json:"leave_type"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	ReinstatementDate    string  `json:"reinstatement_date"`
	TotalDays            int     `json:"total_days"`
	Status               string  `json:"status"`
	RequestedDays        *int    `json:"requested_days,omitempty"`
	RemainingBalance     *int    `json:"remaining_balance,omitempty"`
	DiagnosisCode        *string `json:"diagnosis_code,omitempty"`
	DiagnosisDescription *string `json:"diagnosis_description,omitempty"`
	CertificateRef       *string `json:"certificate_ref,omitempty"`
	Observations         *string `json:"observations,omitempty"`
	RejectionReason      *string `json:"rejection_reason,omitempty"`
	CreatedBy            *string `json:"created_by,omitempty"`
	ResolvedBy           *string `json:"resolved_by,omitempty"`
	ResolvedAt           *string `json:"resolved_at,omitempty"`
	CreatedAt            string  `json:"created_at"`
}

type BalanceResponse struct {
	EmployeeID  string `json:"employee_id"`
	Year        int    `json:"year"`
	Entitlement int    `json:"entitlement"`
	Consumed    int    `json:"consumed"`
	Available   int    `json:"available"`
}
