// Copyright (c) 2026 ScoreHub. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/scorehub/scorehub/internal/platform/request"
	"github.com/scorehub/scorehub/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public auth endpoints. None of them require an
// authenticated actor.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.issueTokens)
	router.Post("/token/refresh", handler.refreshTokens)
}

// signup handles POST /auth/signup.
// 201 for a new account, 202 when the code was re-sent to an existing one.
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload := SignupInput{Username: input.Username, Email: input.Email}
	if created {
		respond.Created(writer, payload)
		return
	}
	respond.Accepted(writer, payload)
}

// issueTokens handles POST /auth/token.
//
// The token pair is written without the response envelope: its flat
// {"refresh", "access"} shape is a client compatibility contract.
func (handler *Handler) issueTokens(writer http.ResponseWriter, request *http.Request) {
	var input TokenInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.service.IssueTokens(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, pair)
}

// refreshTokens handles POST /auth/token/refresh with rotation.
func (handler *Handler) refreshTokens(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Refresh string `json:"refresh"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.service.RefreshTokens(request.Context(), input.Refresh)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, pair)
}
