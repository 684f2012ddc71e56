// Copyright (c) 2026 ScoreHub. All rights reserved.

package comment

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

// RegisterRoutes mounts the comment endpoints. The router is expected to be
// nested under /titles/{titleID}/reviews/{reviewID}.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.AuthenticatedAny)

	router.Get("/", handler.listComments)
	router.Post("/", handler.createComment)
	router.Get("/{commentID}", handler.getComment)
	router.Patch("/{commentID}", handler.updateComment)
	router.Delete("/{commentID}", handler.deleteComment)
}

// pathIDs pulls the nested title and review IDs out of the URL.
func pathIDs(request *http.Request) (titleID, reviewID int64, err error) {
	titleID, err = requestutil.IntParam(request, "titleID")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = requestutil.IntParam(request, "reviewID")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), titleID, reviewID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
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

	comment, err := handler.service.CreateComment(request.Context(), actor, titleID, reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.IntParam(request, "commentID")
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

	comment, err := handler.service.UpdateComment(request.Context(), actor, titleID, reviewID, commentID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), actor, titleID, reviewID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
