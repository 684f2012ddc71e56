// Copyright (c) 2026 ScoreHub. All rights reserved.

package account

import (
	"context"
	"log/slog"

	"github.com/scorehub/scorehub/internal/platform/sec"
	"github.com/scorehub/scorehub/internal/platform/validate"
	"github.com/scorehub/scorehub/pkg/pointer"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListAccounts(context context.Context, search string, limit, offset int) ([]*Account, int, error) {
	return service.repo.ListAccounts(context, search, limit, offset)
}

func (service *Service) GetAccount(context context.Context, username string) (*Account, error) {
	return service.repo.GetByUsername(context, username)
}

// CreateAccount enrolls a user through the admin API. Unlike signup, the role
// is assignable here.
func (service *Service) CreateAccount(context context.Context, input Input) (*Account, error) {
	account := &Account{Role: sec.RoleUser}
	applyInput(account, input, true)

	if err := validateAccount(account); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, account); err != nil {
		return nil, err
	}

	service.logger.Info("account_created",
		slog.Int64("account_id", account.ID),
		slog.String("username", account.Username),
		slog.String("role", string(account.Role)),
	)
	return account, nil
}

// UpdateAccount applies a partial admin edit to the named account.
func (service *Service) UpdateAccount(context context.Context, username string, input Input) (*Account, error) {
	account, err := service.repo.GetByUsername(context, username)
	if err != nil {
		return nil, err
	}

	applyInput(account, input, true)

	if err := validateAccount(account); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, account); err != nil {
		return nil, err
	}

	service.logger.Info("account_updated", slog.Int64("account_id", account.ID))
	return account, nil
}

func (service *Service) DeleteAccount(context context.Context, username string) error {
	if err := service.repo.DeleteByUsername(context, username); err != nil {
		return err
	}

	service.logger.Warn("account_deleted", slog.String("username", username))
	return nil
}

// # Self Service

func (service *Service) GetMe(context context.Context, actor *sec.Actor) (*Account, error) {
	return service.repo.GetByID(context, actor.ID)
}

// UpdateMe applies a partial self edit. Actors below the admin tier cannot
// change their own role; the field is silently pinned to its current value.
func (service *Service) UpdateMe(context context.Context, actor *sec.Actor, input Input) (*Account, error) {
	account, err := service.repo.GetByID(context, actor.ID)
	if err != nil {
		return nil, err
	}

	applyInput(account, input, actor.IsAdminTier())

	if err := validateAccount(account); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, account); err != nil {
		return nil, err
	}

	service.logger.Info("profile_updated", slog.Int64("account_id", account.ID))
	return account, nil
}

// applyInput overlays the provided fields onto the account. Role changes are
// dropped unless roleMutable is set.
func applyInput(account *Account, input Input, roleMutable bool) {
	account.Username = pointer.Fallback(input.Username, account.Username)
	account.Email = pointer.Fallback(input.Email, account.Email)
	account.FirstName = pointer.Fallback(input.FirstName, account.FirstName)
	account.LastName = pointer.Fallback(input.LastName, account.LastName)
	account.Bio = pointer.Fallback(input.Bio, account.Bio)

	if input.Role != nil && roleMutable {
		account.Role = sec.Role(*input.Role)
	}
}

func validateAccount(account *Account) error {
	validator := &validate.Validator{}

	validator.Required(FieldUsername, account.Username).Username(FieldUsername, account.Username)
	validator.Required(FieldEmail, account.Email).Email(FieldEmail, account.Email)
	validator.MaxLen(FieldFirstName, account.FirstName, 150)
	validator.MaxLen(FieldLastName, account.LastName, 150)
	validator.Custom(FieldRole, !account.Role.Valid(), "Unknown role")

	return validator.Err()
}
