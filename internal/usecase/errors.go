package usecase

import (
	"errors"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/logger"
)

// storeError maps repository errors onto the API error kinds
func storeError(err error, entity string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(entity + " not found")
	}
	logger.Log.Error("Store operation failed", "entity", entity, "error", err)
	return apperror.StoreUnavailable(err)
}
