// Copyright (c) 2026 ScoreHub. All rights reserved.

package review

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

// RegisterRoutes mounts the review endpoints. The router is expected to be
// nested under /titles/{titleID}.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Reads are public; writes require authentication. Ownership is
	// checked in the service layer where the target row is loaded.
	router.Use(middleware.AuthenticatedAny)

	router.Get("/", handler.listReviews)
	router.Post("/", handler.createReview)
	router.Get("/{reviewID}", handler.getReview)
	router.Patch("/{reviewID}", handler.updateReview)
	router.Delete("/{reviewID}", handler.deleteReview)
}

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), titleID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), actor, titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, review)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), actor, titleID, reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), actor, titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
