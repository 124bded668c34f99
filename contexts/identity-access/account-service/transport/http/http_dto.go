package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SignUpRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	// UserType is the legacy name of Role.
	UserType string `json:"userType,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Role      string `json:"role"`
	UserID    string `json:"id"`
}

type UserDTO struct {
	UserID    string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type UserResponse struct {
	User UserDTO `json:"user"`
}

type ListUsersResponse struct {
	Items []UserDTO `json:"items"`
}

type UpdateProfileRequest struct {
	FullName        *string `json:"fullName,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	CurrentPassword string  `json:"currentPassword,omitempty"`
	NewPassword     string  `json:"newPassword,omitempty"`
}

type AdminUpdateRequest struct {
	FullName    *string `json:"fullName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Role        *string `json:"role,omitempty"`
	NewPassword string  `json:"newPassword,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
