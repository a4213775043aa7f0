package employee

type CreateEmployeeRequest struct {
	DocumentNumber string  `json:"document_number" binding:"required,max=20"`
	FullName       string  `json:"full_name" binding:"required,max=150"`
	Email          string  `json:"email" binding:"omitempty,email"`
	Username       *string `json:"username"`
	HireDate       string  `json:"hire_date"`
	CategoryID     string  `json:"category_id" binding:"omitempty,uuid"`
	UnionID        *int64  `json:"union_id"`
	InsurerID      *int64  `json:"insurer_id"`
	AgreementID    *int64  `json:"agreement_id"`
}

type UpdateEmployeeRequest struct {
	DocumentNumber string  `json:"document_number" binding:"required,max=20"`
	FullName       string  `json:"full_name" binding:"required,max=150"`
	Email          string  `json:"email" binding:"omitempty,email"`
	Username       *string `json:"username"`
	HireDate       string  `json:"hire_date"`
	CategoryID     string  `json:"category_id" binding:"omitempty,uuid"`
	UnionID        *int64  `json:"union_id"`
	InsurerID      *int64  `json:"insurer_id"`
	AgreementID    *int64  `json:"agreement_id"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	DocumentNumber string  `json:"document_number"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email,omitempty"`
	Username       *string `json:"username,omitempty"`
	HireDate       string  `json:"hire_date,omitempty"`
	CategoryID     string  `json:"category_id,omitempty"`
	UnionID        *int64  `json:"union_id,omitempty"`
	InsurerID      *int64  `json:"insurer_id,omitempty"`
	AgreementID    *int64  `json:"agreement_id,omitempty"`
	Active         bool    `json:"active"`
}

// EmployeeOption is the slim shape used by selectors in the UI.
type EmployeeOption struct {
	ID             string `json:"id"`
	DocumentNumber string `json:"document_number"`
	FullName       string `json:"full_name"`
}
