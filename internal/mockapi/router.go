package mockapi

import (
	"net/http"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes configures the admin user endpoints, which differ between
// deployments of the catalog API.
type Routes struct {
	UsersList   string
	UsersDelete string
}

// NewRouter mounts the REST contract under /api and the poster files under
// /uploads.
func NewRouter(backend *Backend, routes Routes, log *zap.Logger) *chi.Mux {
	handler := NewHandler(backend, log)

	r := chi.NewRouter()
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recover(log))

	auth := middleware.Auth(backend, log)
	admin := middleware.Admin(log)

	r.Route("/api", func(r chi.Router) {
		wireMovies(r, handler.Movie, auth, admin)
		wireReference(r, "/directors", handler.Director, auth, admin)
		wireReference(r, "/actors", handler.Actor, auth, admin)
		wireReference(r, "/languages", handler.Language, auth, admin)
		wireReviews(r, handler.Review, auth)
		wireUsers(r, handler.User, routes, auth, admin)
	})

	r.Get("/uploads/{name}", handler.Upload.Serve)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

type middlewareFunc = func(http.Handler) http.Handler

func wireMovies(r chi.Router, h *MovieHandler, auth, admin middlewareFunc) {
	r.Get("/movies", h.GetMovies)
	r.Get("/movies/{id}", h.GetMovieByID)

	r.Group(func(r chi.Router) {
		r.Use(auth, admin)
		r.Post("/movies", h.CreateMovie)
		r.Put("/movies/{id}", h.UpdateMovie)
		r.Delete("/movies/{id}", h.DeleteMovie)
	})
}

func wireReference[E entity.Entity](r chi.Router, path string, h *ReferenceHandler[E], auth, admin middlewareFunc) {
	r.Get(path, h.List)
	r.Get(path+"/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(auth, admin)
		r.Post(path, h.Create)
		r.Put(path+"/{id}", h.Update)
		r.Delete(path+"/{id}", h.Delete)
	})
}

func wireReviews(r chi.Router, h *ReviewHandler, auth middlewareFunc) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/reviews", h.CreateReview)
		r.Put("/reviews/{id}", h.UpdateReview)
		r.Delete("/reviews/{id}", h.DeleteReview)
	})
}

func wireUsers(r chi.Router, h *UserHandler, routes Routes, auth, admin middlewareFunc) {
	r.Group(func(r chi.Router) {
		r.Use(auth, admin)
		r.Get(routes.UsersList, h.GetAllUsers)
		r.Delete(routes.UsersDelete+"/{id}", h.DeleteUser)
	})
}
