package service

import (
	"context"
	"errors"

	"go-hospital-encounter/internal/repository"
	"go-hospital-encounter/pkg/apperror"
)

// translateError turns a storage error into the workflow error taxonomy.
// Errors that already carry a kind pass through untouched.
func translateError(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		repository.IsConnectionError(err):
		return apperror.NewUnreachable(message, err)
	case repository.IsDuplicateKeyError(err, ""):
		return apperror.NewConflict("duplicate", message).WithCause(err)
	case repository.IsForeignKeyError(err, ""):
		return apperror.NewServerRejected("reference_not_found", message, nil).WithCause(err)
	}
	return apperror.NewInternal(message, err)
}
