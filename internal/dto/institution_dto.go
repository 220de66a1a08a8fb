package dto

// InstitutionUpdateRequest replaces the whole institution profile.
type InstitutionUpdateRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
}

// LogoUploadResponse returns the hosted URL of a freshly uploaded logo.
type LogoUploadResponse struct {
	LogoURL string `json:"logoUrl"`
}
