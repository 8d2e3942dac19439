package leads

// CaptureLeadRequest is the direct capture body. ProfileID must be a
// well-formed identifier before any lookup happens.
type CaptureLeadRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	Phone     string `json:"phone" validate:"required,min=10,max=32"`
	Interest  string `json:"interest" validate:"max=255"`
	ProfileID string `json:"profileId" validate:"required,uuid4"`
}

// LeadFormRequest is the body of the slug-scoped form post; the profile
// is implied by the resolved slug.
type LeadFormRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Phone    string `json:"phone" validate:"required,min=10,max=32"`
	Interest string `json:"interest" validate:"max=255"`
}

type CaptureResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}
