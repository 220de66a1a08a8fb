package models

// Institution is the single profile record used for report card branding.
type Institution struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	LogoURL string `json:"logoUrl"`
}

// DefaultInstitution is returned whenever no profile has been saved yet. The
// placeholders are intentionally non-empty so report rendering never deals
// with blank branding fields.
func DefaultInstitution() Institution {
	return Institution{
		Name:    "EduResult Academy",
		Address: "123 Education Lane, Knowledge City",
		Email:   "office@eduresult.example",
		Phone:   "+1 555 0100",
		LogoURL: "https://placehold.co/96x96",
	}
}
