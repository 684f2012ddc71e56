// Copyright (c) 2026 ScoreHub. All rights reserved.

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scorehub/scorehub/internal/platform/middleware"
	requestutil "github.com/scorehub/scorehub/internal/platform/request"
	"github.com/scorehub/scorehub/internal/platform/respond"
	"github.com/scorehub/scorehub/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Reads are public; writes require an admin-tier actor.
	router.Use(middleware.AdminOrReadOnly)

	router.Get("/", handler.listGenres)
	router.Post("/", handler.createGenre)
	router.Delete("/{slug}", handler.deleteGenre)
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("search"),
	}

	genres, total, err := handler.service.ListGenres(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input Genre
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateGenre(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	slugValue := requestutil.Param(request, "slug")

	if err := handler.service.DeleteGenre(request.Context(), slugValue); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
