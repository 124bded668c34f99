package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"estatehub/contexts/engagement/contact-service/application/commands"
	"estatehub/contexts/engagement/contact-service/application/queries"
	"estatehub/contexts/engagement/contact-service/domain/entities"
	httptransport "estatehub/contexts/engagement/contact-service/transport/http"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
)

type Handler struct {
	SubmitContact commands.SubmitContactUseCase
	Queries       queries.QueryUseCase
	Logger        *slog.Logger
}

// SubmitContactHandler godoc
// @Summary Submit the contact form
// @Description Open to anonymous callers. Every admin is notified.
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body httptransport.SubmitContactRequest true "Contact message"
// @Success 201 {object} httptransport.ContactResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /contacts [post]
func (h Handler) SubmitContactHandler(ctx context.Context, req httptransport.SubmitContactRequest) (httptransport.ContactResponse, error) {
	contact, err := h.SubmitContact.Execute(ctx, commands.SubmitContactCommand{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return httptransport.ContactResponse{}, err
	}
	return httptransport.ContactResponse{Contact: mapContact(contact)}, nil
}

// ListContactsHandler godoc
// @Summary List contact submissions (admin)
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.ListContactsResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /contacts [get]
func (h Handler) ListContactsHandler(ctx context.Context, principal policyentities.Principal) (httptransport.ListContactsResponse, error) {
	items, err := h.Queries.List(ctx, principal)
	if err != nil {
		return httptransport.ListContactsResponse{}, err
	}
	resp := httptransport.ListContactsResponse{Items: make([]httptransport.ContactDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapContact(item))
	}
	return resp, nil
}

func mapContact(item entities.Contact) httptransport.ContactDTO {
	return httptransport.ContactDTO{
		ContactID: item.ContactID,
		Name:      item.Name,
		Email:     item.Email,
		Message:   item.Message,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
