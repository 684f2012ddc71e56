// Copyright (c) 2026 ScoreHub. All rights reserved.

package account

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
	// Self service, any authenticated user. The static /me segment wins
	// over the {username} wildcard.
	router.Group(func(selfRoute chi.Router) {
		selfRoute.Use(middleware.RequireAuth)

		selfRoute.Get("/me", handler.getMe)
		selfRoute.Patch("/me", handler.updateMe)
	})

	// Administration
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.AdminOnly)

		adminRoute.Get("/", handler.listAccounts)
		adminRoute.Post("/", handler.createAccount)
		adminRoute.Get("/{username}", handler.getAccount)
		adminRoute.Patch("/{username}", handler.updateAccount)
		adminRoute.Delete("/{username}", handler.deleteAccount)
	})
}

func (handler *Handler) listAccounts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	accounts, total, err := handler.service.ListAccounts(request.Context(), search, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, accounts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	account, err := handler.service.GetAccount(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

func (handler *Handler) createAccount(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.CreateAccount(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, account)
}

func (handler *Handler) updateAccount(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.UpdateAccount(request.Context(), username, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.service.DeleteAccount(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.GetMe(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
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

	account, err := handler.service.UpdateMe(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}
