package services

import "github.com/OmondiJoshua/GLOBAL-GTM/pkg/response"

// Service-level error taxonomy, mapped onto the response envelope:
// validation -> 400, not found -> 404, permission -> 403, integrity -> 409.
// None of these are fatal; callers decide whether to surface or retry.

func ErrValidation(msg string) *response.AppError {
	return response.NewBadRequest(msg)
}

func ErrNotFound(msg string) *response.AppError {
	return response.NewNotFound(msg)
}

func ErrPermission(msg string) *response.AppError {
	return response.NewForbidden(msg)
}

func ErrIntegrity(msg string) *response.AppError {
	return response.NewConflict(msg)
}
