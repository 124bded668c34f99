package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactDTO struct {
	ContactID string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

type ContactResponse struct {
	Contact ContactDTO `json:"contact"`
}

type ListContactsResponse struct {
	Items []ContactDTO `json:"items"`
}
