package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"terreins-inventory-api/internal/model"
	"terreins-inventory-api/internal/service"
	"terreins-inventory-api/pkg/apierror"
	"terreins-inventory-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// PartHandler handles part catalogue HTTP requests.
type PartHandler struct {
	inventory *service.InventoryService
}

// NewPartHandler creates a new part handler.
func NewPartHandler(inventory *service.InventoryService) *PartHandler {
	return &PartHandler{inventory: inventory}
}

// ListParts handles GET /api/v1/parts?q=&category=
// The snapshot keeps the canonical order; the search and category filters
// only narrow it.
func (h *PartHandler) ListParts(w http.ResponseWriter, r *http.Request) {
	parts, err := h.inventory.List(r.Context())
	if err != nil {
		response.Error(w, apierror.InternalError("failed to load parts"))
		return
	}

	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	response.OK(w, service.FilterParts(parts, q, category))
}

// GetPart handles GET /api/v1/parts/{id}
// The stock history is sorted newest-first for display; storage order
// stays append-only.
func (h *PartHandler) GetPart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	part, err := h.inventory.Get(r.Context(), id)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to load part"))
		return
	}
	if part == nil {
		response.Error(w, apierror.NotFound("part not found"))
		return
	}

	part.StockHistory = part.SortedStockHistory()
	response.OK(w, part)
}

// CreatePart handles POST /api/v1/parts
func (h *PartHandler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var draft model.PartDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	part, err := h.inventory.Create(r.Context(), draft)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, part)
}

// UpdatePart handles PUT /api/v1/parts/{id}
// Updating an unknown id stores the payload as a new part.
func (h *PartHandler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var part model.Part
	if err := json.NewDecoder(r.Body).Decode(&part); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	part.ID = id

	updated, err := h.inventory.Update(r.Context(), part)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, updated)
}

// DeletePart handles DELETE /api/v1/parts/{id}
// Deleting an absent part is a no-op, not an error.
func (h *PartHandler) DeletePart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.inventory.Delete(r.Context(), id); err != nil {
		response.Error(w, apierror.InternalError("failed to delete part"))
		return
	}
	response.NoContent(w)
}

// SaleInput is the request body for recording a dispatch.
type SaleInput struct {
	Quantity int        `json:"quantity"`
	Date     *time.Time `json:"date,omitempty"`
}

// RecordSale handles POST /api/v1/parts/{id}/sales
func (h *PartHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input SaleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	at := time.Time{}
	if input.Date != nil {
		at = *input.Date
	}

	part, err := h.inventory.RecordSale(r.Context(), id, input.Quantity, at)
	if err != nil {
		response.Error(w, err)
		return
	}
	if part == nil {
		response.Error(w, apierror.NotFound("part not found"))
		return
	}
	response.OK(w, part)
}

// AdjustmentInput is the request body for a relative stock adjustment.
type AdjustmentInput struct {
	Delta int `json:"delta"`
}

// AdjustStock handles POST /api/v1/parts/{id}/stock-adjustments
func (h *PartHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input AdjustmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	part, err := h.inventory.AdjustStock(r.Context(), id, input.Delta)
	if err != nil {
		response.Error(w, err)
		return
	}
	if part == nil {
		response.Error(w, apierror.NotFound("part not found"))
		return
	}
	response.OK(w, part)
}

// ListCategories handles GET /api/v1/categories
// Returns the closed category set in display-menu order.
func (h *PartHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	response.OK(w, model.Categories())
}
