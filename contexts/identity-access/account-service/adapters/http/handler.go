package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"estatehub/contexts/identity-access/account-service/application/commands"
	"estatehub/contexts/identity-access/account-service/application/queries"
	"estatehub/contexts/identity-access/account-service/domain/entities"
	httptransport "estatehub/contexts/identity-access/account-service/transport/http"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
)

type Handler struct {
	SignUp     commands.SignUpUseCase
	Login      commands.LoginUseCase
	UpdateUser commands.UpdateUserUseCase
	DeleteUser commands.DeleteUserUseCase
	Queries    queries.QueryUseCase
	Logger     *slog.Logger
}

// SignUpHandler godoc
// @Summary Register an account
// @Description Creates a buyer or seller account. The admin role cannot be self-assigned.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body httptransport.SignUpRequest true "Sign-up payload"
// @Success 201 {object} httptransport.UserResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /auth/signup [post]
func (h Handler) SignUpHandler(ctx context.Context, req httptransport.SignUpRequest) (httptransport.UserResponse, error) {
	role := req.Role
	if strings.TrimSpace(role) == "" {
		role = req.UserType
	}
	user, err := h.SignUp.Execute(ctx, commands.SignUpCommand{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{User: mapUser(user)}, nil
}

// LoginHandler godoc
// @Summary Log in and receive a bearer token
// @Description Issues a bearer token and sets the session cookie.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body httptransport.LoginRequest true "Credentials"
// @Success 200 {object} httptransport.LoginResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /auth/login [post]
func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	session, err := h.Login.Execute(ctx, commands.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
		Role:      session.User.Role.String(),
		UserID:    session.User.UserID,
	}, nil
}

// MeHandler godoc
// @Summary Current account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.UserResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /auth/me [get]
// @Router /users/me [get]
func (h Handler) MeHandler(ctx context.Context, principal policyentities.Principal) (httptransport.UserResponse, error) {
	user, err := h.Queries.Me(ctx, principal)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{User: mapUser(user)}, nil
}

// UpdateProfileHandler godoc
// @Summary Update own profile
// @Description Changing the password requires the current one.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User id"
// @Param request body httptransport.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} httptransport.UserResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /users/{user_id}/profile [put]
func (h Handler) UpdateProfileHandler(
	ctx context.Context,
	principal policyentities.Principal,
	userID string,
	req httptransport.UpdateProfileRequest,
) (httptransport.UserResponse, error) {
	user, err := h.UpdateUser.UpdateProfile(ctx, commands.UpdateProfileCommand{
		Principal:       principal,
		UserID:          userID,
		FullName:        req.FullName,
		Phone:           req.Phone,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{User: mapUser(user)}, nil
}

// AdminUpdateHandler godoc
// @Summary Admin edit of an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User id"
// @Param request body httptransport.AdminUpdateRequest true "Account fields"
// @Success 200 {object} httptransport.UserResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /users/{user_id} [put]
func (h Handler) AdminUpdateHandler(
	ctx context.Context,
	principal policyentities.Principal,
	userID string,
	req httptransport.AdminUpdateRequest,
) (httptransport.UserResponse, error) {
	user, err := h.UpdateUser.AdminUpdate(ctx, commands.AdminUpdateCommand{
		Principal:   principal,
		UserID:      userID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        req.Role,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{User: mapUser(user)}, nil
}

// DeleteUserHandler godoc
// @Summary Delete an account and its listings (admin)
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User id"
// @Success 200 {object} httptransport.MessageResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /users/{user_id} [delete]
func (h Handler) DeleteUserHandler(ctx context.Context, principal policyentities.Principal, userID string) (httptransport.MessageResponse, error) {
	if err := h.DeleteUser.Execute(ctx, commands.DeleteUserCommand{
		Principal: principal,
		UserID:    userID,
	}); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "User and associated properties deleted successfully"}, nil
}

// ListUsersHandler godoc
// @Summary List accounts (admin)
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.ListUsersResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /users [get]
func (h Handler) ListUsersHandler(ctx context.Context, principal policyentities.Principal) (httptransport.ListUsersResponse, error) {
	users, err := h.Queries.List(ctx, principal)
	if err != nil {
		return httptransport.ListUsersResponse{}, err
	}
	items := make([]httptransport.UserDTO, 0, len(users))
	for _, user := range users {
		items = append(items, mapUser(user))
	}
	return httptransport.ListUsersResponse{Items: items}, nil
}

// ResolvePrincipal is used by the HTTP server on every request.
func (h Handler) ResolvePrincipal(ctx context.Context, token string) policyentities.Principal {
	return h.Queries.ResolvePrincipal(ctx, token)
}

func mapUser(user entities.User) httptransport.UserDTO {
	return httptransport.UserDTO{
		UserID:    user.UserID,
		FullName:  user.FullName,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role.String(),
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
