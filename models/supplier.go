package models

// SupplierProfile is the supplier account returned by GET /suppliers/me
type SupplierProfile struct {
	ID          int64     `json:"id"`
	CompanyName string    `json:"company_name"`
	Description *string   `json:"description,omitempty"`
	CompanyLogo *string   `json:"company_logo,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   Timestamp `json:"created_at"`
}

// SupplierProfileUpdate is the body of PUT /suppliers/me
type SupplierProfileUpdate struct {
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	CompanyLogo *string `json:"company_logo,omitempty" validate:"omitempty,url"`
}
