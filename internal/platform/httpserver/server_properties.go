package httpserver

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	propertydomainerrors "estatehub/contexts/listings/property-service/domain/errors"
	propertyhttp "estatehub/contexts/listings/property-service/transport/http"
)

const maxPropertyImages = 5

var errInvalidForm = errors.New("invalid form")

func (s *Server) registerPropertyRoutes() {
	s.mux.HandleFunc("GET /properties/public", s.handleListActiveProperties)
	s.mux.HandleFunc("GET /properties/public/latest", s.handleListLatestProperties)
	s.mux.HandleFunc("GET /properties/images/{image_id}", s.handleGetPropertyImage)
	s.mux.HandleFunc("GET /properties/summary", s.handlePropertySummary)
	s.mux.HandleFunc("GET /properties", s.handleListScopedProperties)
	s.mux.HandleFunc("POST /properties", s.handleCreateProperty)
	s.mux.HandleFunc("GET /properties/{property_id}", s.handleGetProperty)
	s.mux.HandleFunc("PUT /properties/{property_id}", s.handleUpdateProperty)
	s.mux.HandleFunc("PATCH /properties/{property_id}/status", s.handleSetPropertyStatus)
	s.mux.HandleFunc("DELETE /properties/{property_id}", s.handleDeleteProperty)
}

func (s *Server) handleListActiveProperties(w http.ResponseWriter, r *http.Request) {
	resp, err := s.properties.Handler.ListActiveHandler(r.Context())
	if err != nil {
		s.writePropertyDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListLatestProperties(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = value
	}
	resp, err := s.properties.Handler.ListLatestActiveHandler(r.Context(), limit)
	if err != nil {
		s.writePropertyDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListScopedProperties(w http.ResponseWriter, r *http.Request) {
	resp, err := s.properties.Handler.ListScopedHandler(r.Context(), s.principal(r))
	if err != nil {
		s.writePropertyDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePropertySummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.properties.Handler.SummaryHandler(r.Context(), s.principal(r))
	if err != nil {
		s.writePropertyDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	resp, err := s.properties.Handler.GetPropertyHandler(r.Context(), r.PathValue("property_id"))
	if err != nil {
		s.writePropertyDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPropertyImage(w http.ResponseWriter, r *http.Request) {
	image, err := s.properties.Handler.ImageHandler(r.Context(), r.PathValue("image_id"))
	if err != nil {
		s.writePropertyDomainError(w, r, err)
		return
	}
	contentType := image.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(image.Data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image.Data)
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	req, uploads, err := s.readPropertyRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	resp, err := s.properties.Handler.CreatePropertyHandler(r.Context(), s.principal(r), req, uploads)
	if err != nil {
		s.writePropertyDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	req, uploads, err := s.readPropertyRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	resp, err := s.properties.Handler.UpdatePropertyHandler(r.Context(), s.principal(r), r.PathValue("property_id"), req, uploads)
	if err != nil {
		s.writePropertyDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetPropertyStatus(w http.ResponseWriter, r *http.Request) {
	var req propertyhttp.SetStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.properties.Handler.SetStatusHandler(r.Context(), s.principal(r), r.PathValue("property_id"), req)
	if err != nil {
		s.writePropertyDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	resp, err := s.properties.Handler.DeletePropertyHandler(r.Context(), s.principal(r), r.PathValue("property_id"))
	if err != nil {
		s.writePropertyDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// readPropertyRequest accepts either a JSON body or a multipart form whose
// "images" parts are the uploads.
func (s *Server) readPropertyRequest(w http.ResponseWriter, r *http.Request) (propertyhttp.PropertyFieldsRequest, []propertyhttp.ImageUpload, error) {
	var req propertyhttp.PropertyFieldsRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := decodeJSON(r, &req); err != nil {
			return req, nil, errors.New("request body must be valid JSON")
		}
		return req, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.options.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.options.MaxUploadBytes); err != nil {
		return req, nil, fmt.Errorf("%w: %v", errInvalidForm, err)
	}
	form := r.MultipartForm
	defer func() { _ = form.RemoveAll() }()

	req.Title = formString(form, "title")
	req.Description = formString(form, "description")
	req.Type = formString(form, "type")
	req.Location = formString(form, "location")
	req.SizeUnit = formString(form, "sizeUnit")
	req.Status = formString(form, "status")
	req.Amenities = form.Value["amenities"]

	var err error
	if req.Price, err = formFloat(form, "price"); err != nil {
		return req, nil, err
	}
	if req.Size, err = formFloat(form, "size"); err != nil {
		return req, nil, err
	}
	if raw := formString(form, "bedrooms"); raw != nil {
		value, err := strconv.Atoi(*raw)
		if err != nil {
			return req, nil, fmt.Errorf("%w: bedrooms must be an integer", errInvalidForm)
		}
		req.Bedrooms = &value
	}

	files := form.File["images"]
	if len(files) > maxPropertyImages {
		return req, nil, fmt.Errorf("%w: at most %d images are allowed", errInvalidForm, maxPropertyImages)
	}
	uploads := make([]propertyhttp.ImageUpload, 0, len(files))
	for _, header := range files {
		upload, err := readUpload(header)
		if err != nil {
			return req, nil, err
		}
		uploads = append(uploads, upload)
	}
	return req, uploads, nil
}

func readUpload(header *multipart.FileHeader) (propertyhttp.ImageUpload, error) {
	file, err := header.Open()
	if err != nil {
		return propertyhttp.ImageUpload{}, fmt.Errorf("%w: open %s: %v", errInvalidForm, header.Filename, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return propertyhttp.ImageUpload{}, fmt.Errorf("%w: read %s: %v", errInvalidForm, header.Filename, err)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return propertyhttp.ImageUpload{}, fmt.Errorf("%w: %s is not an image", errInvalidForm, header.Filename)
	}
	return propertyhttp.ImageUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func formString(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

func formFloat(form *multipart.Form, key string) (*float64, error) {
	raw := formString(form, key)
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", errInvalidForm, key)
	}
	return &value, nil
}

func (s *Server) writePropertyDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, propertydomainerrors.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, propertydomainerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, propertydomainerrors.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, "property_not_found", err.Error())
	case errors.Is(err, propertydomainerrors.ErrImageNotFound):
		writeError(w, http.StatusNotFound, "image_not_found", err.Error())
	case errors.Is(err, propertydomainerrors.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, propertydomainerrors.ErrInvalidProperty):
		writeError(w, http.StatusUnprocessableEntity, "invalid_property", err.Error())
	default:
		s.logInternal(r, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
