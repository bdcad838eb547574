// internal/wire/wire.go
package wire

import (
	"fmt"
	"time"

	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/mockapi"
	"movie-catalog/internal/session"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/httpclient"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired client core
type App struct {
	Config  *utils.Config
	Session *session.Session
	Client  *httpclient.Client
	Repo    *repository.Repository
	Service *usecase.Service
}

// Wiring builds config -> session -> http client -> repositories -> stores
func Wiring(config *utils.Config, logger *zap.Logger, opts ...httpclient.Option) (*App, error) {
	sess := session.New()

	client, err := httpclient.New(
		config.API.BaseURL,
		time.Duration(config.API.TimeoutSecs)*time.Second,
		sess,
		logger,
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("init http client: %w", err)
	}

	repo := repository.NewRepository(client, repository.Paths{
		UsersList:   config.API.UsersListPath,
		UsersDelete: config.API.UsersDeletePath,
	}, logger)

	return &App{
		Config:  config,
		Session: sess,
		Client:  client,
		Repo:    repo,
		Service: usecase.NewService(repo, sess, config, logger),
	}, nil
}

// MockAPI wires the in-memory catalog API onto a chi router
func MockAPI(config *utils.Config, logger *zap.Logger) (*chi.Mux, *mockapi.Backend) {
	backend := mockapi.NewBackend(logger)
	router := mockapi.NewRouter(backend, mockapi.Routes{
		UsersList:   config.API.UsersListPath,
		UsersDelete: config.API.UsersDeletePath,
	}, logger)
	return router, backend
}
