package httpadapter

import (
	"context"
	"log/slog"
	"time"

	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	"estatehub/contexts/listings/property-service/application/commands"
	"estatehub/contexts/listings/property-service/application/queries"
	"estatehub/contexts/listings/property-service/domain/entities"
	"estatehub/contexts/listings/property-service/domain/services"
	httptransport "estatehub/contexts/listings/property-service/transport/http"
)

type Handler struct {
	SubmitProperty commands.SubmitPropertyUseCase
	EditProperty   commands.EditPropertyUseCase
	SetStatus      commands.SetStatusUseCase
	DeleteProperty commands.DeletePropertyUseCase
	Queries        queries.QueryUseCase
	Logger         *slog.Logger
}

// CreatePropertyHandler godoc
// @Summary Submit a listing (JSON or multipart with images)
// @Description Creates a listing. Non-admin submissions start Pending and every admin is notified.
// @Tags listings
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.PropertyFieldsRequest true "Property fields"
// @Success 201 {object} httptransport.PropertyResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /properties [post]
func (h Handler) CreatePropertyHandler(
	ctx context.Context,
	principal policyentities.Principal,
	req httptransport.PropertyFieldsRequest,
	uploads []httptransport.ImageUpload,
) (httptransport.PropertyResponse, error) {
	item, err := h.SubmitProperty.Execute(ctx, commands.SubmitPropertyCommand{
		Principal: principal,
		Fields:    mapFields(req),
		Uploads:   mapUploads(uploads),
	})
	if err != nil {
		return httptransport.PropertyResponse{}, err
	}
	return httptransport.PropertyResponse{Property: mapProperty(item)}, nil
}

// UpdatePropertyHandler godoc
// @Summary Edit a listing
// @Description Owners edit their own listing fields. Admins may also change status, which notifies the owner on activation.
// @Tags listings
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param property_id path string true "Property id"
// @Param request body httptransport.PropertyFieldsRequest true "Fields to change"
// @Success 200 {object} httptransport.PropertyResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /properties/{property_id} [put]
func (h Handler) UpdatePropertyHandler(
	ctx context.Context,
	principal policyentities.Principal,
	propertyID string,
	req httptransport.PropertyFieldsRequest,
	uploads []httptransport.ImageUpload,
) (httptransport.PropertyResponse, error) {
	item, err := h.EditProperty.Execute(ctx, commands.EditPropertyCommand{
		Principal:  principal,
		PropertyID: propertyID,
		Fields:     mapFields(req),
		Uploads:    mapUploads(uploads),
	})
	if err != nil {
		return httptransport.PropertyResponse{}, err
	}
	return httptransport.PropertyResponse{Property: mapProperty(item)}, nil
}

// SetStatusHandler godoc
// @Summary Toggle Pending/Active (admin)
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param property_id path string true "Property id"
// @Param request body httptransport.SetStatusRequest true "Target status"
// @Success 200 {object} httptransport.PropertyResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /properties/{property_id}/status [patch]
func (h Handler) SetStatusHandler(
	ctx context.Context,
	principal policyentities.Principal,
	propertyID string,
	req httptransport.SetStatusRequest,
) (httptransport.PropertyResponse, error) {
	item, err := h.SetStatus.Execute(ctx, commands.SetStatusCommand{
		Principal:  principal,
		PropertyID: propertyID,
		Status:     req.Status,
	})
	if err != nil {
		return httptransport.PropertyResponse{}, err
	}
	return httptransport.PropertyResponse{Property: mapProperty(item)}, nil
}

// DeletePropertyHandler godoc
// @Summary Delete a listing (admin)
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param property_id path string true "Property id"
// @Success 200 {object} httptransport.MessageResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /properties/{property_id} [delete]
func (h Handler) DeletePropertyHandler(
	ctx context.Context,
	principal policyentities.Principal,
	propertyID string,
) (httptransport.MessageResponse, error) {
	if err := h.DeleteProperty.Execute(ctx, commands.DeletePropertyCommand{
		Principal:  principal,
		PropertyID: propertyID,
	}); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "Property deleted successfully"}, nil
}

// ListScopedHandler godoc
// @Summary List listings visible to the caller
// @Description Admins see every listing and sellers see their own. Buyers are refused.
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.ListPropertiesResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /properties [get]
func (h Handler) ListScopedHandler(ctx context.Context, principal policyentities.Principal) (httptransport.ListPropertiesResponse, error) {
	items, err := h.Queries.ListScoped(ctx, principal)
	if err != nil {
		return httptransport.ListPropertiesResponse{}, err
	}
	return mapList(items), nil
}

// ListActiveHandler godoc
// @Summary List active listings
// @Tags listings
// @Produce json
// @Success 200 {object} httptransport.ListPropertiesResponse
// @Router /properties/public [get]
func (h Handler) ListActiveHandler(ctx context.Context) (httptransport.ListPropertiesResponse, error) {
	items, err := h.Queries.ListActive(ctx)
	if err != nil {
		return httptransport.ListPropertiesResponse{}, err
	}
	return mapList(items), nil
}

// ListLatestActiveHandler godoc
// @Summary Newest active listings
// @Tags listings
// @Produce json
// @Param limit query int false "Maximum items (default 6)"
// @Success 200 {object} httptransport.ListPropertiesResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /properties/public/latest [get]
func (h Handler) ListLatestActiveHandler(ctx context.Context, limit int) (httptransport.ListPropertiesResponse, error) {
	items, err := h.Queries.ListLatestActive(ctx, limit)
	if err != nil {
		return httptransport.ListPropertiesResponse{}, err
	}
	return mapList(items), nil
}

// GetPropertyHandler godoc
// @Summary Get a listing with owner contact
// @Tags listings
// @Produce json
// @Param property_id path string true "Property id"
// @Success 200 {object} httptransport.PropertyResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /properties/{property_id} [get]
func (h Handler) GetPropertyHandler(ctx context.Context, propertyID string) (httptransport.PropertyResponse, error) {
	detail, err := h.Queries.Get(ctx, propertyID)
	if err != nil {
		return httptransport.PropertyResponse{}, err
	}
	dto := mapProperty(detail.Property)
	if detail.Owner != nil {
		dto.OwnerContact = &httptransport.OwnerContactDTO{
			FullName: detail.Owner.FullName,
			Email:    detail.Owner.Email,
			Phone:    detail.Owner.Phone,
		}
	}
	return httptransport.PropertyResponse{Property: dto}, nil
}

// SummaryHandler godoc
// @Summary Status counts of the caller's listings
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.SummaryResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /properties/summary [get]
func (h Handler) SummaryHandler(ctx context.Context, principal policyentities.Principal) (httptransport.SummaryResponse, error) {
	summary, err := h.Queries.Summary(ctx, principal)
	if err != nil {
		return httptransport.SummaryResponse{}, err
	}
	return httptransport.SummaryResponse{
		Total:   summary.Total,
		Pending: summary.Pending,
		Active:  summary.Active,
		Sold:    summary.Sold,
		Rented:  summary.Rented,
	}, nil
}

// ImageHandler godoc
// @Summary Download a listing image
// @Tags listings
// @Produce octet-stream
// @Param image_id path string true "Image reference"
// @Success 200 {file} binary
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /properties/images/{image_id} [get]
func (h Handler) ImageHandler(ctx context.Context, ref string) (httptransport.ImageUpload, error) {
	image, err := h.Queries.Image(ctx, ref)
	if err != nil {
		return httptransport.ImageUpload{}, err
	}
	return httptransport.ImageUpload{
		Filename:    image.Filename,
		ContentType: image.ContentType,
		Data:        image.Data,
	}, nil
}

func mapFields(req httptransport.PropertyFieldsRequest) services.Fields {
	return services.Fields{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Price:       req.Price,
		Location:    req.Location,
		Size:        req.Size,
		SizeUnit:    req.SizeUnit,
		Bedrooms:    req.Bedrooms,
		Amenities:   req.Amenities,
		Status:      req.Status,
	}
}

func mapUploads(uploads []httptransport.ImageUpload) []entities.Image {
	images := make([]entities.Image, 0, len(uploads))
	for _, upload := range uploads {
		images = append(images, entities.Image{
			Filename:    upload.Filename,
			ContentType: upload.ContentType,
			Data:        upload.Data,
		})
	}
	return images
}

func mapList(items []entities.Property) httptransport.ListPropertiesResponse {
	result := make([]httptransport.PropertyDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapProperty(item))
	}
	return httptransport.ListPropertiesResponse{Items: result}
}

func mapProperty(item entities.Property) httptransport.PropertyDTO {
	amenities := item.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := item.Images
	if images == nil {
		images = []string{}
	}
	return httptransport.PropertyDTO{
		PropertyID:  item.PropertyID,
		OwnerID:     item.OwnerID,
		Title:       item.Title,
		Description: item.Description,
		Type:        string(item.Type),
		Price:       item.Price,
		Location:    item.Location,
		Size:        item.Size,
		SizeUnit:    string(item.SizeUnit),
		Bedrooms:    item.Bedrooms,
		Amenities:   amenities,
		Images:      images,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}
