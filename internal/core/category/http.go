// Copyright (c) 2026 ScoreHub. All rights reserved.

package category

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

	router.Get("/", handler.listCategories)
	router.Post("/", handler.createCategory)
	router.Delete("/{slug}", handler.deleteCategory)
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("search"),
	}

	categories, total, err := handler.service.ListCategories(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCategory(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	slugValue := requestutil.Param(request, "slug")

	if err := handler.service.DeleteCategory(request.Context(), slugValue); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
