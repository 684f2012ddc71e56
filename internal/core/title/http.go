// Copyright (c) 2026 ScoreHub. All rights reserved.

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scorehub/scorehub/internal/platform/middleware"
	requestutil "github.com/scorehub/scorehub/internal/platform/request"
	"github.com/scorehub/scorehub/internal/platform/respond"
	"github.com/scorehub/scorehub/pkg/convert"
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

	router.Get("/", handler.listTitles)
	router.Post("/", handler.createTitle)
	router.Get("/{titleID}", handler.getTitle)
	router.Patch("/{titleID}", handler.updateTitle)
	router.Delete("/{titleID}", handler.deleteTitle)
}

func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Genre:    request.URL.Query().Get("genre"),
		Category: request.URL.Query().Get("category"),
		Name:     request.URL.Query().Get("name"),
	}
	if year := convert.ToInt(request.URL.Query().Get("year")); year != 0 {
		filter.Year = &year
	}

	titles, total, err := handler.service.ListTitles(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.GetTitle(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.CreateTitle(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, title)
}

func (handler *Handler) updateTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.UpdateTitle(request.Context(), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) deleteTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTitle(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
