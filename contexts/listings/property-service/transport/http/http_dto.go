package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PropertyFieldsRequest is the JSON body of create and edit calls. Absent fields are left untouched on edit.
type PropertyFieldsRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Size        *float64 `json:"size,omitempty"`
	SizeUnit    *string  `json:"sizeUnit,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type OwnerContactDTO struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type PropertyDTO struct {
	PropertyID   string           `json:"id"`
	OwnerID      string           `json:"owner"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Type         string           `json:"type"`
	Price        float64          `json:"price"`
	Location     string           `json:"location"`
	Size         float64          `json:"size"`
	SizeUnit     string           `json:"sizeUnit"`
	Bedrooms     *int             `json:"bedrooms,omitempty"`
	Amenities    []string         `json:"amenities"`
	Images       []string         `json:"images"`
	Status       string           `json:"status"`
	CreatedAt    string           `json:"createdAt"`
	UpdatedAt    string           `json:"updatedAt"`
	OwnerContact *OwnerContactDTO `json:"ownerContact,omitempty"`
}

type PropertyResponse struct {
	Property PropertyDTO `json:"property"`
}

type ListPropertiesResponse struct {
	Items []PropertyDTO `json:"items"`
}

type SummaryResponse struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Active  int `json:"active"`
	Sold    int `json:"sold"`
	Rented  int `json:"rented"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
