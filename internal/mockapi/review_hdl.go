package mockapi

import (
	"encoding/json"
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	backend *Backend
	log     *zap.Logger
}

func NewReviewHandler(backend *Backend, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		backend: backend,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var draft request.ReviewDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	draft = draft.Clean()
	if validationErrors := draft.Validate(); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(validationErrors), validationErrors)
		return
	}

	review, err := h.backend.CreateReview(caller, draft)
	if err != nil {
		writeServiceError(w, h.log, err, "create review")
		return
	}
	utils.ResponseCreated(w, review)
}

// UpdateReview handles PUT /api/reviews/{id} (owner only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var patch request.ReviewPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	patch = patch.Clean()
	if validationErrors := patch.Validate(); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(validationErrors), validationErrors)
		return
	}

	review, err := h.backend.UpdateReview(caller, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, h.log, err, "update review")
		return
	}
	utils.ResponseSuccess(w, review)
}

// DeleteReview handles DELETE /api/reviews/{id} (owner only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.backend.DeleteReview(caller, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete review")
		return
	}
	utils.ResponseSuccess(w, messageDoc{Message: "Review deleted successfully"})
}
