package handler

import (
	"errors"
	"net/http"

	"product-api/internal/database"
	"product-api/internal/model"
	"product-api/internal/service"
	"product-api/internal/validation"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service   service.ProductService
	sessions  database.SessionProvider
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(
	service service.ProductService,
	sessions database.SessionProvider,
	validator *validation.Validator,
	logger zerolog.Logger,
) *ProductHandler {
	return &ProductHandler{
		service:   service,
		sessions:  sessions,
		validator: validator,
		logger:    logger.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /products/ requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.ProductCreate
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	sess, ok := h.acquire(w, r)
	if !ok {
		return
	}
	defer sess.Release()

	product, err := h.service.Create(r.Context(), sess, &in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// List handles GET /products/ requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.acquire(w, r)
	if !ok {
		return
	}
	defer sess.Release()

	products, err := h.service.List(r.Context(), sess)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, products, h.logger)
}

// Get handles GET /products/{id} requests.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	sess, ok := h.acquire(w, r)
	if !ok {
		return
	}
	defer sess.Release()

	product, err := h.service.GetByID(r.Context(), sess, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// Update handles PUT /products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var in model.ProductUpdate
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	sess, ok := h.acquire(w, r)
	if !ok {
		return
	}
	defer sess.Release()

	product, err := h.service.Update(r.Context(), sess, id, &in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// Delete handles DELETE /products/{id} requests and returns the removed product.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	sess, ok := h.acquire(w, r)
	if !ok {
		return
	}
	defer sess.Release()

	product, err := h.service.Delete(r.Context(), sess, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

func (h *ProductHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := parseID(r)
	if !ok {
		writeValidationError(w, validation.NewError("id", "must be an integer"), h.logger)
		return 0, false
	}
	return id, true
}

// decodeAndValidate writes a 422 response and returns false when the body
// cannot be decoded into payload or breaks one of its rules.
func (h *ProductHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, payload any) bool {
	err := decodeJSON(r, payload)
	if err == nil {
		err = h.validator.Struct(payload)
	}
	if err == nil {
		return true
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		writeValidationError(w, verrs, h.logger)
		return false
	}

	h.logger.Error().Err(err).Msg("failed to validate request body")
	writeError(w, http.StatusInternalServerError, msgInternalError, h.logger)
	return false
}

func (h *ProductHandler) acquire(w http.ResponseWriter, r *http.Request) (database.Session, bool) {
	sess, err := h.sessions.Acquire(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to acquire session")
		writeError(w, http.StatusInternalServerError, msgInternalError, h.logger)
		return nil, false
	}
	return sess, true
}

func (h *ProductHandler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, msgProductNotFound, h.logger)
		return
	}

	h.logger.Error().Err(err).Msg("product service failed")
	writeError(w, http.StatusInternalServerError, msgInternalError, h.logger)
}
