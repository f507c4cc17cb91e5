package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"terreins-inventory-api/internal/ai"
	"terreins-inventory-api/internal/model"
	"terreins-inventory-api/pkg/apierror"
	"terreins-inventory-api/pkg/response"
)

// AIHandler handles the AI assist HTTP requests. The service is optional;
// without a configured API key every endpoint answers 503.
type AIHandler struct {
	ai *ai.Service
}

// NewAIHandler creates a new AI handler. ai may be nil.
func NewAIHandler(service *ai.Service) *AIHandler {
	return &AIHandler{ai: service}
}

// DescriptionInput is the request body for description generation.
type DescriptionInput struct {
	Name     string             `json:"name"`
	Category model.PartCategory `json:"category"`
}

// GenerateDescription handles POST /api/v1/ai/description
func (h *AIHandler) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		response.Error(w, apierror.ServiceUnavailable("AI assist is not configured"))
		return
	}

	var input DescriptionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	if input.Name == "" || !input.Category.Valid() {
		response.Error(w, apierror.ValidationError("invalid request",
			apierror.FieldError{Field: "name", Message: "name and a known category are required"}))
		return
	}

	text, err := h.ai.GenerateDescription(r.Context(), input.Name, input.Category)
	if err != nil {
		log.Printf("[AIHandler] description generation failed: %v", err)
		response.Error(w, apierror.ServiceUnavailable("could not generate description"))
		return
	}

	response.OK(w, map[string]interface{}{
		"description": text,
	})
}

// ReorderInput is the request body for reorder quantity suggestions.
type ReorderInput struct {
	Name         string             `json:"name"`
	Category     model.PartCategory `json:"category"`
	CurrentStock int                `json:"current_stock"`
}

// SuggestReorder handles POST /api/v1/ai/reorder-suggestion
func (h *AIHandler) SuggestReorder(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		response.Error(w, apierror.ServiceUnavailable("AI assist is not configured"))
		return
	}

	var input ReorderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	if input.Name == "" || !input.Category.Valid() {
		response.Error(w, apierror.ValidationError("invalid request",
			apierror.FieldError{Field: "name", Message: "name and a known category are required"}))
		return
	}
	if input.CurrentStock < 0 {
		response.Error(w, apierror.ValidationError("invalid request",
			apierror.FieldError{Field: "current_stock", Message: "must not be negative"}))
		return
	}

	qty, err := h.ai.SuggestReorderQuantity(r.Context(), input.Name, input.Category, input.CurrentStock)
	if err != nil {
		log.Printf("[AIHandler] reorder suggestion failed: %v", err)
		response.Error(w, apierror.ServiceUnavailable("could not suggest a reorder quantity"))
		return
	}

	response.OK(w, map[string]interface{}{
		"quantity": qty,
	})
}
