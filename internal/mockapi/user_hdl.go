package mockapi

import (
	"net/http"

	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	backend *Backend
	log     *zap.Logger
}

func NewUserHandler(backend *Backend, log *zap.Logger) *UserHandler {
	return &UserHandler{
		backend: backend,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetAllUsers handles the admin user listing. The list is wrapped in a
// "users" object.
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, usersDoc{Users: h.backend.ListUsers()})
}

// DeleteUser handles the admin user deletion.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	if err := h.backend.DeleteUser(userID); err != nil {
		writeServiceError(w, h.log, err, "delete user")
		return
	}
	utils.ResponseSuccess(w, messageDoc{Message: "User deleted successfully"})
}
