package mockapi

import (
	"encoding/json"
	"net/http"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReferenceHandler serves a named reference family: directors, actors or
// languages.
type ReferenceHandler[E entity.Entity] struct {
	table *table[E]
	kind  string
	build func(id, name string) E
	log   *zap.Logger
}

func NewReferenceHandler[E entity.Entity](t *table[E], kind string, build func(id, name string) E, log *zap.Logger) *ReferenceHandler[E] {
	return &ReferenceHandler[E]{
		table: t,
		kind:  kind,
		build: build,
		log:   log.With(zap.String("handler", kind)),
	}
}

// List handles GET /api/{kind}s
func (h *ReferenceHandler[E]) List(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, h.table.list())
}

// Get handles GET /api/{kind}s/{id}
func (h *ReferenceHandler[E]) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.table.get(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseNotFound(w, h.notFound())
		return
	}
	utils.ResponseSuccess(w, item)
}

// Create handles POST /api/{kind}s (admin)
func (h *ReferenceHandler[E]) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decode(w, r)
	if !ok {
		return
	}

	item := h.build(newID(), draft.Name)
	h.table.insert(item)
	h.log.Info("Created", zap.String("id", item.EntityID()), zap.String("name", draft.Name))
	utils.ResponseCreated(w, item)
}

// Update handles PUT /api/{kind}s/{id} (admin)
func (h *ReferenceHandler[E]) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.table.get(id); !ok {
		utils.ResponseNotFound(w, h.notFound())
		return
	}

	draft, ok := h.decode(w, r)
	if !ok {
		return
	}

	item := h.build(id, draft.Name)
	if !h.table.replace(item) {
		utils.ResponseNotFound(w, h.notFound())
		return
	}
	utils.ResponseSuccess(w, item)
}

// Delete handles DELETE /api/{kind}s/{id} (admin). Movies referencing the
// entry are left untouched.
func (h *ReferenceHandler[E]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.table.remove(id) {
		utils.ResponseNotFound(w, h.notFound())
		return
	}
	h.log.Info("Deleted", zap.String("id", id))
	utils.ResponseSuccess(w, messageDoc{Message: h.kind + " deleted successfully"})
}

func (h *ReferenceHandler[E]) decode(w http.ResponseWriter, r *http.Request) (request.ReferenceDraft, bool) {
	var draft request.ReferenceDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return draft, false
	}

	draft = draft.Clean()
	if validationErrors := draft.Validate(); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(validationErrors), validationErrors)
		return draft, false
	}
	return draft, true
}

func (h *ReferenceHandler[E]) notFound() string {
	return h.kind + " not found"
}
